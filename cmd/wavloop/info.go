package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/cwbudde/wavloop/internal/cli"
)

type infoCmd struct {
	File string `arg:"" type:"existingfile" help:"Wav file to inspect."`
}

func (c *infoCmd) Run(g *globals) error {
	f, err := readFile(c.File, g)
	if err != nil {
		return err
	}

	info, err := f.Info()
	if err != nil {
		return err
	}

	w := g.Stdout

	cli.PrintTitle(w, filepath.Base(c.File))

	cli.PrintSection(w, "Format")
	cli.PrintInfo(w, "Channels", strconv.Itoa(info.NumChannels))
	cli.PrintInfo(w, "Sample rate", fmt.Sprintf("%d Hz", info.SampleRate))
	cli.PrintInfo(w, "Sample bits", strconv.Itoa(info.BitDepth))
	cli.PrintInfo(w, "Frames", strconv.Itoa(info.NumFrames))
	cli.PrintInfo(w, "Duration", cli.FormatDuration(info.Duration))

	cli.PrintSection(w, "Loop")

	if info.Loop == nil {
		cli.PrintInfo(w, "Loop", "none")
	} else {
		cli.PrintInfo(w, "Start", fmt.Sprintf("%d (%s)", info.Loop.Start, cli.FormatDuration(info.LoopStart)))
		cli.PrintInfo(w, "End", fmt.Sprintf("%d (%s)", info.Loop.End, cli.FormatDuration(info.LoopEnd)))
		cli.PrintInfo(w, "Length", fmt.Sprintf("%d frames", info.Loop.Length()))
	}

	for i, pt := range info.CuePoints {
		value := fmt.Sprintf("id=%d offset=%d", pt.ID, pt.SampleOffset)
		if label, ok := info.CueLabels[pt.ID]; ok {
			value += fmt.Sprintf(" %q", label)
		}

		cli.PrintInfo(w, fmt.Sprintf("Cue point [%d]", i), value)
	}

	if fields := info.Tags.Fields(); len(fields) > 0 {
		cli.PrintSection(w, "Tags")

		for _, field := range fields {
			cli.PrintInfo(w, field.Name, field.Value)
		}
	}

	if info.Sampler != nil {
		cli.PrintSection(w, "Sampler")
		cli.PrintInfo(w, "MIDI unity note", strconv.Itoa(int(info.Sampler.MIDIUnityNote)))

		for i, l := range info.Sampler.Loops {
			cli.PrintInfo(w, fmt.Sprintf("Sampler loop [%d]", i),
				fmt.Sprintf("cue=%d type=%d %d..%d", l.CuePointID, l.Type, l.Start, l.End))
		}
	}

	cli.PrintSection(w, "Chunks")

	for _, chnk := range info.Chunks {
		id := chnk.ID
		if chnk.ListType != "" {
			id += "/" + chnk.ListType
		}

		cli.PrintInfo(w, id, fmt.Sprintf("%s (%s)", cli.FormatBytes(int64(chnk.Size)), chnk.Kind))
	}

	if info.TrailerBytes > 0 {
		cli.PrintInfo(w, "Trailing bytes", strconv.Itoa(info.TrailerBytes))
	}

	return nil
}
