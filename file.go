package wavloop

import (
	"fmt"
	"time"
)

// File is one WAV file loaded in memory: its chunk list, its format and a
// sample view over its data chunk. A File is not safe for concurrent use.
type File struct {
	container *Container
	format    *FmtChunk
	samples   *SampleBuffer
}

// Container exposes the chunk list. Changes are reflected by Encode.
func (f *File) Container() *Container {
	return f.container
}

// Format returns a copy of the fmt chunk.
func (f *File) Format() *FmtChunk {
	return f.format.Clone()
}

// Samples returns the sample view of the data chunk. Writes to it are encoded.
func (f *File) Samples() *SampleBuffer {
	return f.samples
}

// NumFrames returns the number of frames of audio.
func (f *File) NumFrames() int {
	return f.samples.NumFrames()
}

// SampleRate returns the frames per second.
func (f *File) SampleRate() int {
	return int(f.format.SampleRate)
}

// Duration returns the playing time of the data chunk.
func (f *File) Duration() time.Duration {
	return framesDuration(f.NumFrames(), f.SampleRate())
}

// FrameAt converts a time offset into the nearest frame index.
func (f *File) FrameAt(d time.Duration) int {
	return samplesNumFromDuration(d, f.SampleRate())
}

// TimeAt converts a frame index into a time offset.
func (f *File) TimeAt(frame int) time.Duration {
	return framesDuration(frame, f.SampleRate())
}

// Loop returns the active loop point, if any.
func (f *File) Loop() (LoopPoint, bool, error) {
	st, err := readLoopState(f.container)
	if err != nil {
		return LoopPoint{}, false, err
	}

	return st.loop(f.NumFrames())
}

// SetLoop validates p against the audio length and stores it.
func (f *File) SetLoop(p LoopPoint) error {
	return WriteLoop(f.container, p, f.NumFrames())
}

// RemoveLoop removes the active loop point.
func (f *File) RemoveLoop() error {
	return ClearLoop(f.container)
}

// Blend crossfades the seam of the active loop. See ApplyBlend.
func (f *File) Blend(window int, curve Curve) error {
	p, ok, err := f.Loop()
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("%w: no loop to blend", ErrValidation)
	}

	return ApplyBlend(f.samples, p, window, curve)
}
