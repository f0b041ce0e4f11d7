package controller

import (
	"arc/config"
	"arc/ui"
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	opts := ui.DefaultOptions()
	opts.Timer = 0.2
	return config.Config{Progress: opts, Value: 100, Width: 1, Height: 1, FPS: 200}
}

func runController(t *testing.T, ctx context.Context, screen tcell.SimulationScreen) chan error {
	t.Helper()
	result := make(chan error, 1)
	go func() {
		result <- Run(ctx, screen, testConfig())
	}()
	return result
}

func TestQuit(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 22)

	result := runController(t, context.Background(), screen)
	time.Sleep(50 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("controller did not quit")
	}
}

func TestCancel(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 22)

	ctx, cancel := context.WithCancel(context.Background())
	result := runController(t, ctx, screen)
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("controller did not stop on cancel")
	}
}

func TestLayout(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	for _, tc := range []struct {
		width, height int
		cols, lines   int
	}{
		{40, 22, 40, 20},
		{80, 12, 20, 10},
		{3, 3, 2, 1},
	} {
		screen.SetSize(tc.width, tc.height)
		c := &controller{screen: screen}
		c.surface = newSurface(screen)
		c.layout()
		size := c.surface.Size()
		if size.Width != tc.cols || size.Height != tc.lines*2 {
			t.Error("screen", tc.width, tc.height, "expected", tc.cols, tc.lines*2, "got", size)
		}
	}
}
