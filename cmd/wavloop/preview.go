package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/wavloop/internal/cli"
	"github.com/cwbudde/wavloop/internal/config"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

type previewCmd struct {
	File   string `arg:"" type:"existingfile" help:"Looped wav file."`
	Output string `short:"o" required:"" type:"path" help:"Wav file to render to."`
	Loops  int    `env:"WAVLOOP_PREVIEW_LOOPS" default:"${default_loops}" help:"Number of loop repetitions after the first pass."`
}

func (c *previewCmd) Run(g *globals) error {
	if c.Loops < 0 {
		return fmt.Errorf("loops must not be negative, got %d", c.Loops)
	}

	f, err := readFile(c.File, g)
	if err != nil {
		return err
	}

	looper, err := f.Looper()
	if err != nil {
		return err
	}

	total := f.NumFrames()

	p, ok, err := f.Loop()
	if err != nil {
		return err
	}

	if ok {
		total = p.End + 1 + c.Loops*(p.Length()+1)
	}

	numChans := f.Samples().NumChannels()

	// go-audio writes 8-bit samples unsigned; render them as 16-bit instead
	bitDepth, shift := f.Samples().BitDepth(), 0
	if bitDepth == 8 {
		bitDepth, shift = 16, 8
	}

	out, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", c.Output, err)
	}
	defer out.Close()

	enc := wav.NewEncoder(out, f.SampleRate(), bitDepth, numChans, 1)

	buf := &audio.IntBuffer{
		Format: f.Format().AudioFormat(),
		Data:   make([]int, config.PreviewBufferFrames*numChans),
	}

	for written := 0; written < total; {
		buf.Data = buf.Data[:min(total-written, config.PreviewBufferFrames)*numChans]

		n, err := looper.PCMBuffer(buf)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return err
		}

		buf.Data = buf.Data[:n]
		buf.SourceBitDepth = bitDepth

		for i := range buf.Data {
			buf.Data[i] <<= shift
		}

		err = enc.Write(buf)
		if err != nil {
			return err
		}

		written += n / numChans
	}

	err = enc.Close()
	if err != nil {
		return err
	}

	g.Log.Printf("rendered %d frames", total)
	cli.PrintSuccess(g.Stdout, fmt.Sprintf("Preview with %d loop repetitions written to %s", c.Loops, c.Output))

	return nil
}
