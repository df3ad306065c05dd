package app

import (
	"io"

	"sparkplot/hal"
	"sparkplot/internal/buildinfo"
	"sparkplot/sparkos/kernel"
	"sparkplot/sparkos/services/input"
	"sparkplot/sparkos/services/logger"
	"sparkplot/sparkos/tasks/grapher"
)

type system struct {
	k *kernel.Kernel
}

// Config selects the initial plot.
type Config struct {
	// Scale is pixels per unit; zero means the default.
	Scale float64
	// Equation is the initial equation. When empty, preset Preset is shown.
	Equation string
	Preset   int
	// PointRadius is the hover and drag radius in pixels; zero means the default.
	PointRadius float64
	// Script, when set, is read line by line as equations or "preset N".
	Script io.Reader
}

// New initializes and starts the OS with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	_ = newSystem(h, cfg)
	return func() error { return nil }
}

func newSystem(h hal.HAL, cfg Config) *system {
	installPanicHandler(h)
	if l := h.Logger(); l != nil {
		l.WriteLineString(buildinfo.Line())
	}

	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	plotEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(grapher.New(
		h.Display(),
		plotEP.Restrict(kernel.RightRecv),
		logEP.Restrict(kernel.RightSend),
		grapher.Config{
			Scale:       cfg.Scale,
			Equation:    cfg.Equation,
			Preset:      cfg.Preset,
			PointRadius: cfg.PointRadius,
		},
	))
	var inputOpts []input.Option
	if cfg.Script != nil {
		inputOpts = append(inputOpts, input.WithScript(cfg.Script))
	}
	k.AddTask(input.New(h.Input(), plotEP.Restrict(kernel.RightSend), inputOpts...))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return &system{k: k}
}
