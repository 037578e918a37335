package wavloop

import (
	"fmt"
	"math"
	"strings"
)

// Curve selects the crossfade gain curve.
type Curve int

const (
	// CurveSmoothstep fades with 3t^2 - 2t^3; gains always sum to one.
	CurveSmoothstep Curve = iota
	// CurveLinear fades with t; gains always sum to one.
	CurveLinear
	// CurveEqualPower fades with sin/cos so the summed power stays constant.
	// The summed amplitude may exceed either input and is saturated.
	CurveEqualPower
)

var curveNames = map[Curve]string{
	CurveSmoothstep: "smoothstep",
	CurveLinear:     "linear",
	CurveEqualPower: "equal-power",
}

func (c Curve) String() string {
	if name, ok := curveNames[c]; ok {
		return name
	}

	return fmt.Sprintf("Curve(%d)", int(c))
}

// ParseCurve accepts the names returned by Curve.String.
func ParseCurve(s string) (Curve, error) {
	for c, name := range curveNames {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown blend curve %q", ErrValidation, s)
}

// gains returns the weights of the tail sample and the lead-in sample at
// progress t in (0, 1].
func (c Curve) gains(t float64) (tail, lead float64) {
	switch c {
	case CurveLinear:
		return 1 - t, t
	case CurveEqualPower:
		return math.Cos(t * math.Pi / 2), math.Sin(t * math.Pi / 2)
	default:
		g := t * t * (3 - 2*t)
		return 1 - g, g
	}
}

// MaxBlendWindow is the largest window ApplyBlend accepts for p: half the loop
// length, and no more than the frames available before the loop start.
func MaxBlendWindow(p LoopPoint) int {
	return max(0, min(p.Length()/2, p.Start))
}

// DefaultBlendWindow spans one period of MinAudibleFrequency.
func DefaultBlendWindow(sampleRate int) int {
	return sampleRate / MinAudibleFrequency
}

// ApplyBlend crossfades the last window frames of the loop, ending at p.End,
// towards the window frames that precede p.Start. After blending, the frame at
// p.End equals the frame at p.Start-1, so jumping from End back to Start
// sounds like the original continuous playback into Start. The loop start and
// everything outside the tail window are left untouched. Each channel is
// processed independently.
//
// Blending twice smooths the seam further; it does not restore the original.
func ApplyBlend(buf *SampleBuffer, p LoopPoint, window int, curve Curve) error {
	if buf == nil {
		return fmt.Errorf("%w: nil sample buffer", ErrValidation)
	}

	err := p.Validate(buf.NumFrames())
	if err != nil {
		return err
	}

	if window < 0 {
		return fmt.Errorf("%w: negative blend window %d", ErrValidation, window)
	}

	if half := p.Length() / 2; window > half {
		return fmt.Errorf("%w: blend window %d exceeds half the loop length (%d frames) for loop %s",
			ErrValidation, window, half, p)
	}

	if window > p.Start {
		return fmt.Errorf("%w: blend window %d exceeds the %d frames of lead-in before loop %s",
			ErrValidation, window, p.Start, p)
	}

	tailStart := p.End - window + 1
	leadStart := p.Start - window

	for i := range window {
		t := float64(i+1) / float64(window)
		gTail, gLead := curve.gains(t)

		for ch := range buf.NumChannels() {
			tail := float64(buf.Sample(tailStart+i, ch))
			lead := float64(buf.Sample(leadStart+i, ch))

			buf.SetSample(tailStart+i, ch, quantize(gTail*tail+gLead*lead, buf.BitDepth()))
		}
	}

	return nil
}
