package main

import (
	"errors"
	"fmt"

	"github.com/cwbudde/wavloop"
	"github.com/cwbudde/wavloop/internal/cli"
)

type setLoopCmd struct {
	File   string `arg:"" type:"existingfile" help:"Wav file to edit."`
	Start  string `required:"" help:"First frame of the loop, as a frame number or a duration."`
	End    string `required:"" help:"Last frame of the loop, inclusive, as a frame number or a duration."`
	Output string `short:"o" type:"path" help:"Output file. Defaults to overwriting the input."`
}

func (c *setLoopCmd) Run(g *globals) error {
	f, err := readFile(c.File, g)
	if err != nil {
		return err
	}

	start, err := parsePosition(c.Start, f)
	if err != nil {
		return err
	}

	end, err := parsePosition(c.End, f)
	if err != nil {
		return err
	}

	p := wavloop.LoopPoint{Start: start, End: end}

	err = f.SetLoop(p)
	if err != nil {
		return err
	}

	out, err := writeFile(f, c.File, c.Output, g)
	if err != nil {
		return err
	}

	cli.PrintSuccess(g.Stdout, fmt.Sprintf("Loop %s written to %s", p, out))

	return nil
}

type removeLoopCmd struct {
	File   string `arg:"" type:"existingfile" help:"Wav file to edit."`
	Output string `short:"o" type:"path" help:"Output file. Defaults to overwriting the input."`
}

func (c *removeLoopCmd) Run(g *globals) error {
	f, err := readFile(c.File, g)
	if err != nil {
		return err
	}

	// a damaged loop is still removed
	_, ok, err := f.Loop()
	if err != nil && !errors.Is(err, wavloop.ErrCorruptData) {
		return err
	}

	if err == nil && !ok {
		cli.PrintInfo(g.Stdout, "Loop", "none")
		return nil
	}

	err = f.RemoveLoop()
	if err != nil {
		return err
	}

	out, err := writeFile(f, c.File, c.Output, g)
	if err != nil {
		return err
	}

	cli.PrintSuccess(g.Stdout, "Loop removed from "+out)

	return nil
}
