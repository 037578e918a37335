package main

import (
	"errors"
	"fmt"

	"github.com/cwbudde/wavloop"
	"github.com/cwbudde/wavloop/internal/cli"
)

var errNoLoop = errors.New("the file has no loop point; run set-loop first")

type blendCmd struct {
	File   string `arg:"" type:"existingfile" help:"Wav file to edit."`
	Window string `env:"WAVLOOP_WINDOW" help:"Crossfade length as frames or a duration. Defaults to one period of 50 Hz, clamped to the loop."`
	Curve  string `env:"WAVLOOP_CURVE" enum:"${curves}" default:"${default_curve}" help:"Crossfade curve (${enum})."`
	Output string `short:"o" type:"path" help:"Output file. Defaults to overwriting the input."`
}

func (c *blendCmd) Run(g *globals) error {
	f, err := readFile(c.File, g)
	if err != nil {
		return err
	}

	curve, err := wavloop.ParseCurve(c.Curve)
	if err != nil {
		return err
	}

	p, ok, err := f.Loop()
	if err != nil {
		return err
	}

	if !ok {
		return errNoLoop
	}

	window := min(wavloop.DefaultBlendWindow(f.SampleRate()), wavloop.MaxBlendWindow(p))
	if c.Window != "" {
		window, err = parsePosition(c.Window, f)
		if err != nil {
			return err
		}
	}

	g.Log.Printf("blending loop %s over %d frames with %s", p, window, curve)

	err = f.Blend(window, curve)
	if err != nil {
		return err
	}

	out, err := writeFile(f, c.File, c.Output, g)
	if err != nil {
		return err
	}

	cli.PrintSuccess(g.Stdout, fmt.Sprintf("Blended %d frames (%s) into %s", window, curve, out))

	return nil
}
