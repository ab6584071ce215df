// Package jigsaw is a photo-to-jigsaw board engine for [Ebitengine].
//
// A [Board] slices a source image into a grid of pieces, scatters them over
// a render surface and lets a single pointer drag them back into place.
// Released pieces snap onto their home cell when they land within a
// tolerance that grows with piece size; the board completes, exactly once,
// when every piece is placed.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	board, err := jigsaw.NewBoard(jigsaw.NewImageSurface(800, 600), jigsaw.Config{
//		ImageURL:   "photo.jpg",
//		Cols:       4,
//		Rows:       3,
//		OnComplete: func() { log.Println("solved") },
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	jigsaw.Run(board, jigsaw.RunConfig{Title: "Puzzle", ShowHUD: true, Controls: true})
//
// For full control, implement [ebiten.Game] yourself, call
// [Board.Update] and [Board.Draw] each frame, report the available width
// with [Board.NotifyResize] and either enable device polling with
// [Board.EnablePointerInput] or forward events through
// [Board.PointerDown], [Board.PointerMove] and [Board.PointerUp].
//
// # Threading
//
// A board is single-threaded. The image is fetched on a background
// goroutine, but the result is applied inside Update, as are the debounced
// resize and the peek revert. [Board.Destroy] cancels all of them.
//
// # Rendering
//
// The surface is repainted only when board state changes. Any [Surface]
// implementation can be used; [ImageSurface] paints into an offscreen
// ebiten.Image that Draw blits to the screen.
//
// [Ebitengine]: https://ebitengine.org
package jigsaw
