package controller

import (
	"arc/ui"
	"log/slog"

	"github.com/gdamore/tcell/v2"
)

func (c *controller) pollEvents() {
	for {
		ev := c.screen.PollEvent()
		if ev == nil {
			return
		}
		c.events.Push(ev)
	}
}

func (c *controller) handleEvent(ev event) {
	switch ev := ev.(type) {
	case tick:
		c.handleTick(ev)

	case animationDone:
		c.status()

	case *tcell.EventResize:
		c.screen.Sync()
		c.screen.Clear()
		c.layout()
		c.bar.Calculate()
		if err := c.bar.Render(c.bar.Progress()); err != nil {
			slog.Warn("render after resize", "err", err)
		}
		c.status()

	case *tcell.EventKey:
		c.handleKey(ev)
	}
}

func (c *controller) handleKey(key *tcell.EventKey) {
	switch key.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		c.quit = true
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch key.Rune() {
	case 'q':
		c.quit = true

	case ' ':
		if c.bar.State() == ui.Animating {
			c.bar.Stop()
			return
		}
		if err := c.bar.Render(c.cfg.Value); err != nil {
			slog.Warn("render before restart", "err", err)
		}
		c.start()
	}
}
