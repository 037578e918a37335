package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cwbudde/wavloop"
	"github.com/cwbudde/wavloop/internal/config"
)

var errBadPosition = errors.New("position must be a frame number or a duration such as 1.5s")

func readFile(path string, g *globals) (*wavloop.File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := wavloop.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	g.Log.Printf("read %s: %d frames at %d Hz", path, f.NumFrames(), f.SampleRate())

	return f, nil
}

// writeFile encodes f to out, or back to in when out is empty.
func writeFile(f *wavloop.File, in, out string, g *globals) (string, error) {
	if out == "" {
		out = in
	}

	raw, err := f.Encode()
	if err != nil {
		return "", err
	}

	err = os.WriteFile(out, raw, config.OutputFileMode)
	if err != nil {
		return "", err
	}

	g.Log.Printf("wrote %d bytes to %s", len(raw), out)

	return out, nil
}

// parsePosition accepts a frame index or a Go duration.
func parsePosition(s string, f *wavloop.File) (int, error) {
	frame, err := strconv.Atoi(s)
	if err == nil {
		return frame, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadPosition, s)
	}

	return f.FrameAt(d), nil
}
