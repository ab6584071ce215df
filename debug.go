package jigsaw

import (
	"time"

	"go.uber.org/zap"
)

// renderStats holds per-render timing and piece counts.
// Only populated when Config.Debug is true.
type renderStats struct {
	renderTime time.Duration
	pieces     int
	placed     int
	renders    int
}

// debugLog writes render stats at debug level.
func (b *Board) debugLog(stats renderStats) {
	if !b.cfg.Debug {
		return
	}
	b.log.Debug("render",
		zap.Duration("render_time", stats.renderTime),
		zap.Int("pieces", stats.pieces),
		zap.Int("placed", stats.placed),
		zap.Int("renders", stats.renders),
		zap.Bool("peeking", b.peeking),
		zap.Int("pending_tasks", b.sched.pending()))
}

// RenderCount returns how many times the surface has been redrawn.
func (b *Board) RenderCount() int {
	return b.renders
}
