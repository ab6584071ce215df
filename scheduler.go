package jigsaw

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// task is a one-shot deferred callback. Its clock is a linear tween from 0
// to 1 over the task's delay, advanced by the board's update time.
type task struct {
	tween    *gween.Tween
	fn       func()
	canceled bool
}

// Cancel stops the task from firing. Safe to call on a nil or finished task.
func (t *task) Cancel() {
	if t != nil {
		t.canceled = true
	}
}

// Pending reports whether the task will still fire.
func (t *task) Pending() bool {
	return t != nil && !t.canceled
}

// scheduler owns every deferred callback of a board. There is no global
// timer: the board calls advance from Update.
type scheduler struct {
	tasks []*task
}

// after schedules fn to run once delay of update time has elapsed.
func (s *scheduler) after(delay time.Duration, fn func()) *task {
	t := &task{
		tween: gween.New(0, 1, float32(delay.Seconds()), ease.Linear),
		fn:    fn,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// advance moves every task forward by dt seconds and fires the ones that
// finished, in scheduling order. Tasks scheduled by a firing callback start
// on the next advance.
func (s *scheduler) advance(dt float64) {
	if len(s.tasks) == 0 {
		return
	}
	due := append([]*task(nil), s.tasks...)
	for _, t := range due {
		if t.canceled {
			continue
		}
		if _, finished := t.tween.Update(float32(dt)); finished {
			t.canceled = true
			t.fn()
		}
	}
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.canceled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// cancelAll cancels and drops every outstanding task.
func (s *scheduler) cancelAll() {
	for _, t := range s.tasks {
		t.canceled = true
	}
	s.tasks = nil
}

// pending returns the number of outstanding tasks.
func (s *scheduler) pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}
