// Package controller runs the terminal demo: a ring that counts down on a
// tcell screen with a caption and a linear bar underneath.
package controller

import (
	"arc/config"
	"arc/device"
	tcelldev "arc/device/tcell"
	"arc/frame"
	"arc/lifecycle"
	"arc/stream"
	"arc/ui"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
)

type event any

type tick time.Time

type animationDone struct{}

type canceled struct{}

const surfaceID = "ring"

type controller struct {
	screen  tcell.Screen
	cfg     config.Config
	lc      *lifecycle.Lifecycle
	events  *stream.Stream[event]
	loop    *frame.Loop
	surface *tcelldev.Surface
	bar     *ui.ProgressBar

	frames   uint64
	fps      int
	prevTick time.Time
	quit     bool
}

// Run draws on screen until the user quits or ctx is canceled. Finishing the
// animation does not quit; space restarts it.
func Run(ctx context.Context, screen tcell.Screen, cfg config.Config) error {
	c := &controller{
		screen:   screen,
		cfg:      cfg,
		lc:       lifecycle.WithParent(ctx),
		events:   stream.NewStream[event]("controller"),
		prevTick: time.Now(),
	}
	defer c.lc.Stop()

	c.loop = frame.NewLoop(c.lc, time.Second/time.Duration(max(cfg.FPS, 1)))
	c.surface = newSurface(screen)
	c.layout()

	surfaces := device.NewRegistry()
	surfaces.Register(surfaceID, c.surface)
	defer surfaces.Remove(surfaceID)

	bar, err := ui.NewByID(surfaces, surfaceID, cfg.Value, ui.WithOptions(cfg.Progress), ui.WithScheduler(c.loop))
	if err != nil {
		return fmt.Errorf("create progress bar: %w", err)
	}
	defer bar.Destroy()
	c.bar = bar

	go c.pollEvents()
	c.lc.Go(func(ctx context.Context) { ticker(ctx, c.events) })
	c.lc.Go(func(ctx context.Context) {
		<-ctx.Done()
		c.events.Push(canceled{})
	})

	if err := bar.Render(cfg.Value); err != nil {
		return err
	}
	c.start()

	for !c.quit && !c.lc.ShouldStop() {
		c.handleEvent(c.events.Pull())
	}
	slog.Debug("controller: done", "events", c.events.Name(), "unhandled", c.events.Len())
	return nil
}

func newSurface(screen tcell.Screen) *tcelldev.Surface {
	return tcelldev.NewSurface(screen, 0, 0, 1, 1)
}

func (c *controller) start() {
	c.bar.Start()
	done := c.bar.Done()
	stopped := c.lc.Context().Done()
	go func() {
		select {
		case <-done:
			c.events.Push(animationDone{})
		case <-stopped:
		}
	}()
}

// layout fits the largest square of half-block pixels into the screen, leaving
// two lines for the caption and the bar.
func (c *controller) layout() {
	w, h := c.screen.Size()
	size := min(w, (h-2)*2)
	if size < 2 {
		size = 2
	}
	cols, lines := size, size/2
	c.surface.Resize((w-cols)/2, max((h-2-lines)/2, 0), cols, lines)
}

func (c *controller) status() {
	sweep := c.bar.Sweep()
	c.surface.Caption(fmt.Sprintf("%5.1f%%  %s  %d fps", sweep*100, c.bar.State(), c.fps))

	w, h := c.screen.Size()
	width := min(w, 40)
	x := (w - width) / 2
	for i, r := range ui.Bar(width, sweep) {
		c.screen.SetContent(x+i, h-1, r, nil, tcell.StyleDefault)
	}
	c.screen.Show()
}
