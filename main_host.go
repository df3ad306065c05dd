//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"sparkplot/app"
	"sparkplot/hal"
	"sparkplot/internal/plot"
)

func main() {
	var cfg hal.HeadlessConfig
	var host hal.HostConfig
	var appCfg app.Config
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.IntVar(&host.Width, "width", hal.DefaultWidth, "Framebuffer width in pixels.")
	flag.IntVar(&host.Height, "height", hal.DefaultHeight, "Framebuffer height in pixels.")
	flag.Float64Var(&appCfg.Scale, "scale", 30, "Plot scale in pixels per unit.")
	flag.StringVar(&appCfg.Equation, "equation", "", "Initial equation, e.g. \"y = x^2\" (overrides -preset).")
	flag.IntVar(&appCfg.Preset, "preset", 0, "Initial preset index.")
	flag.Float64Var(&appCfg.PointRadius, "point-radius", plot.DefaultPointRadius, "Hover and drag radius in pixels.")
	script := flag.String("script", "", "Read equations (or \"preset N\") line by line from a file; \"-\" is stdin.")
	flag.Parse()

	if appCfg.Scale <= 0 {
		fmt.Fprintf(os.Stderr, "invalid -scale %g: must be positive\n", appCfg.Scale)
		os.Exit(2)
	}
	if floor := plot.MinScale(float64(host.Width)); appCfg.Scale < floor {
		fmt.Fprintf(os.Stderr, "invalid -scale %g: a %dpx wide plot needs at least %g\n", appCfg.Scale, host.Width, floor)
		os.Exit(2)
	}
	if appCfg.PointRadius <= 0 {
		fmt.Fprintf(os.Stderr, "invalid -point-radius %g: must be positive\n", appCfg.PointRadius)
		os.Exit(2)
	}

	switch *script {
	case "":
	case "-":
		appCfg.Script = os.Stdin
	default:
		f, err := os.Open(*script)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		appCfg.Script = f
	}

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, host, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, host); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
