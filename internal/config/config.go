package config

import (
	"strconv"
)

// Blend settings
const (
	DefaultCurve = "smoothstep"
	Curves       = "smoothstep,linear,equal-power"
)

// Preview settings
const (
	DefaultPreviewLoops = 3
	PreviewBufferFrames = 4096 // Frames rendered per encoder write
)

// Test tone settings
const (
	DefaultSineFrequency = 440.0
	DefaultSineSeconds   = 5.0
	DefaultSineRate      = 48000
	DefaultSineBits      = 16
	SineAmplitude        = 0.8 // Fraction of full scale
)

// Output settings
const (
	OutputFileMode = 0o644
	AIFFExtension  = ".aif"
)

// Environment variables override flag defaults. They must match the env
// tags in cmd/wavloop.
const (
	EnvVerbose = "WAVLOOP_VERBOSE"
	EnvCurve   = "WAVLOOP_CURVE"
	EnvWindow  = "WAVLOOP_WINDOW"
	EnvLoops   = "WAVLOOP_PREVIEW_LOOPS"
)

// Vars returns the defaults above as interpolation variables for flag tags.
func Vars() map[string]string {
	return map[string]string{
		"default_curve":     DefaultCurve,
		"curves":            Curves,
		"default_loops":     strconv.Itoa(DefaultPreviewLoops),
		"default_frequency": strconv.FormatFloat(DefaultSineFrequency, 'f', -1, 64),
		"default_seconds":   strconv.FormatFloat(DefaultSineSeconds, 'f', -1, 64),
		"default_rate":      strconv.Itoa(DefaultSineRate),
		"default_bits":      strconv.Itoa(DefaultSineBits),
	}
}
