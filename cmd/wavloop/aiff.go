package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/wavloop/internal/cli"
	"github.com/cwbudde/wavloop/internal/config"
	"github.com/go-audio/aiff"
)

type exportAIFFCmd struct {
	File   string `arg:"" type:"existingfile" help:"Wav file to convert."`
	Output string `short:"o" type:"path" help:"Output file. Defaults to the input path with an .aif extension."`
}

func (c *exportAIFFCmd) Run(g *globals) error {
	f, err := readFile(c.File, g)
	if err != nil {
		return err
	}

	outPath := c.Output
	if outPath == "" {
		outPath = c.File[:len(c.File)-len(filepath.Ext(c.File))] + config.AIFFExtension
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer out.Close()

	samples := f.Samples()
	encoder := aiff.NewEncoder(out, f.SampleRate(), samples.BitDepth(), samples.NumChannels())

	// aiff stores 8-bit samples signed, which matches the centred values
	err = encoder.Write(samples.IntBuffer(f.SampleRate()))
	if err != nil {
		return err
	}

	err = encoder.Close()
	if err != nil {
		return err
	}

	g.Log.Printf("converted %d frames", f.NumFrames())
	cli.PrintSuccess(g.Stdout, "Wav file converted to "+outPath)

	return nil
}
