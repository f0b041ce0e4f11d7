package main

import (
	"arc/config"
	"arc/controller"
	"arc/device/raster"
	tcelldev "arc/device/tcell"
	"arc/frame"
	"arc/ui"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
)

func main() {
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		stop()
		log.Fatalf("ring: %v", err)
	}
}

// run returns instead of exiting so the debug log is closed on every path.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("ring", pflag.ContinueOnError)
	configPath := flags.String("config", "", "config file (yaml, toml or json)")
	logPath := flags.String("log", "", "write debug log to this file")
	pngPath := flags.String("png", "", "render one frame at --value into this PNG file (- for stdout) and exit")
	framesDir := flags.String("frames", "", "render the whole countdown as PNG frames into this directory")
	every := flags.Int("every", 1, "with --frames, keep every n-th frame")
	flags.String("stroke", "", "stroke color")
	flags.Float64("line-width", 0, "line width in pixels")
	flags.String("cap", "", "line cap: butt, round or square")
	flags.String("gradient-start", "", "gradient color at the start of the arc")
	flags.String("gradient-end", "", "gradient color at the end of the arc")
	flags.Float64("timer", 0, "seconds for a 0 to 100 sweep")
	flags.Float64("value", 0, "progress in percent")
	flags.Int("width", 0, "bitmap width for --png and --frames")
	flags.Int("height", 0, "bitmap height for --png and --frames")
	flags.Int("fps", 0, "terminal frame rate")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		return err
	}

	if *logPath != "" {
		file, err := os.Create(*logPath)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer file.Close()
		logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
		prev := slog.Default()
		slog.SetDefault(logger)
		defer slog.SetDefault(prev)
		ui.SetLogger(logger)
		defer ui.SetLogger(nil)
	}

	switch {
	case *pngPath == "-":
		return renderPNG(cfg, stdout)
	case *pngPath != "":
		file, err := os.Create(*pngPath)
		if err != nil {
			return err
		}
		if err := renderPNG(cfg, file); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	case *framesDir != "":
		return renderFrames(cfg, *framesDir, *every)
	default:
		return runTerminal(ctx, cfg)
	}
}

func runTerminal(ctx context.Context, cfg config.Config) error {
	if termenv.ColorProfile() == termenv.Ascii {
		return errors.New("terminal has no color support; use --png or --frames")
	}
	screen, err := tcelldev.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Fini()
	return controller.Run(ctx, screen, cfg)
}

func renderPNG(cfg config.Config, w io.Writer) error {
	surface := raster.NewSurface(cfg.Width, cfg.Height)
	defer surface.Close()

	bar, err := ui.New(surface, cfg.Value, ui.WithOptions(cfg.Progress), ui.WithScheduler(frame.NewManual()))
	if err != nil {
		return err
	}
	defer bar.Destroy()
	if err := bar.Render(cfg.Value); err != nil {
		return err
	}
	return surface.EncodePNG(w)
}

func renderFrames(cfg config.Config, dir string, every int) error {
	if every < 1 {
		every = 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	surface := raster.NewSurface(cfg.Width, cfg.Height)
	defer surface.Close()

	scheduler := frame.NewManual()
	bar, err := ui.New(surface, cfg.Value, ui.WithOptions(cfg.Progress), ui.WithScheduler(scheduler))
	if err != nil {
		return err
	}
	defer bar.Destroy()
	if err := bar.Render(cfg.Value); err != nil {
		return err
	}

	bar.Start()
	saved := 0
	for n := 0; bar.State() == ui.Animating; n++ {
		scheduler.Frame()
		if n%every != 0 {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%05d.png", saved))
		if err := surface.SavePNG(path); err != nil {
			return err
		}
		saved++
	}
	log.Printf("ring: wrote %d frames to %s", saved, dir)
	return nil
}
