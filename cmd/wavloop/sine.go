package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/wavloop"
	"github.com/cwbudde/wavloop/internal/cli"
	"github.com/cwbudde/wavloop/internal/config"
	"github.com/go-audio/audio"
)

var errLoopPair = errors.New("--loop-start and --loop-end must be set together")

type genSineCmd struct {
	Output    string  `short:"o" type:"path" default:"output.wav" help:"Filename to write to."`
	Frequency float64 `default:"${default_frequency}" help:"Frequency in hertz to generate."`
	Length    float64 `default:"${default_seconds}" help:"Length in seconds of the output file."`
	Rate      int     `default:"${default_rate}" help:"Sample rate in hertz."`
	Bits      int     `enum:"8,16,24,32" default:"${default_bits}" help:"Bits per sample (${enum})."`
	Channels  int     `default:"1" help:"Number of identical channels."`
	LoopStart string  `name:"loop-start" help:"Optional loop start, as a frame number or a duration."`
	LoopEnd   string  `name:"loop-end" help:"Optional loop end, as a frame number or a duration."`
}

func (c *genSineCmd) Run(g *globals) error {
	if (c.LoopStart == "") != (c.LoopEnd == "") {
		return errLoopPair
	}

	g.Log.Printf("generating a %f sec sine wav at %f hz", c.Length, c.Frequency)

	numFrames := int(math.Round(float64(c.Rate) * c.Length))

	f, err := wavloop.NewFile(c.Rate, c.Bits, c.Channels, numFrames)
	if err != nil {
		return err
	}

	amplitude := config.SineAmplitude * float64(audio.IntMaxSignedValue(c.Bits))
	buf := f.Samples()

	for i := range numFrames {
		v := int(math.Round(amplitude * math.Sin(float64(i)/float64(c.Rate)*c.Frequency*2*math.Pi)))

		for ch := range c.Channels {
			buf.SetSample(i, ch, v)
		}
	}

	if c.LoopStart != "" {
		start, err := parsePosition(c.LoopStart, f)
		if err != nil {
			return err
		}

		end, err := parsePosition(c.LoopEnd, f)
		if err != nil {
			return err
		}

		err = f.SetLoop(wavloop.LoopPoint{Start: start, End: end})
		if err != nil {
			return err
		}
	}

	out, err := writeFile(f, c.Output, "", g)
	if err != nil {
		return err
	}

	cli.PrintSuccess(g.Stdout, fmt.Sprintf("%d frames written to %s", numFrames, out))

	return nil
}
