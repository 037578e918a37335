package wavloop

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
)

// Looper reads frames from a sample buffer the way a sampler plays a looped
// sound: from the playhead up to the loop end, then over and over from the loop
// start. Without a loop it stops at the last frame.
type Looper struct {
	buf  *SampleBuffer
	loop *LoopPoint
	pos  int
}

// NewLooper returns a Looper positioned at frame 0. loop may be nil.
func NewLooper(buf *SampleBuffer, loop *LoopPoint) (*Looper, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil sample buffer", ErrValidation)
	}

	if loop != nil {
		err := loop.Validate(buf.NumFrames())
		if err != nil {
			return nil, err
		}

		p := *loop
		loop = &p
	}

	return &Looper{buf: buf, loop: loop}, nil
}

// Looper returns a Looper over the samples and active loop of the file.
func (f *File) Looper() (*Looper, error) {
	p, ok, err := f.Loop()
	if err != nil {
		return nil, err
	}

	if !ok {
		return NewLooper(f.samples, nil)
	}

	return NewLooper(f.samples, &p)
}

// Playhead returns the next frame to be read.
func (l *Looper) Playhead() int {
	return l.pos
}

// Seek moves the playhead. Without a loop the playhead may sit at the end of
// the buffer; with one it must be on a frame.
func (l *Looper) Seek(frame int) error {
	limit := l.buf.NumFrames()
	if l.loop != nil {
		limit--
	}

	if frame < 0 || frame > limit {
		return fmt.Errorf("%w: seek to frame %d of %d", ErrValidation, frame, l.buf.NumFrames())
	}

	l.pos = frame

	return nil
}

// PCMBuffer fills buf.Data with whole frames and returns the number of samples
// written. It returns io.EOF once an unlooped buffer has been played through.
func (l *Looper) PCMBuffer(buf *audio.IntBuffer) (int, error) {
	if buf == nil {
		return 0, fmt.Errorf("%w: nil buffer", ErrValidation)
	}

	n, err := l.read(len(buf.Data), func(i, v int) {
		buf.Data[i] = v
	})

	if buf.Format == nil {
		buf.Format = &audio.Format{NumChannels: l.buf.NumChannels()}
	}

	buf.SourceBitDepth = l.buf.BitDepth()

	return n, err
}

// Float32Buffer is PCMBuffer with samples normalized to [-1, 1).
func (l *Looper) Float32Buffer(buf *audio.Float32Buffer) (int, error) {
	if buf == nil {
		return 0, fmt.Errorf("%w: nil buffer", ErrValidation)
	}

	scale := float32(audio.IntMaxSignedValue(l.buf.BitDepth())) + 1

	n, err := l.read(len(buf.Data), func(i, v int) {
		buf.Data[i] = float32(v) / scale
	})

	if buf.Format == nil {
		buf.Format = &audio.Format{NumChannels: l.buf.NumChannels()}
	}

	buf.SourceBitDepth = l.buf.BitDepth()

	return n, err
}

func (l *Looper) read(size int, store func(i, v int)) (int, error) {
	numChans := l.buf.NumChannels()
	frames := size / numChans
	n := 0

	for range frames {
		if l.loop == nil && l.pos >= l.buf.NumFrames() {
			break
		}

		for ch := range numChans {
			store(n, l.buf.Sample(l.pos, ch))
			n++
		}

		l.pos = l.wrap(l.pos + 1)
	}

	if n == 0 && frames > 0 {
		return 0, io.EOF
	}

	return n, nil
}

// wrap maps a playhead past the loop end back into the loop.
func (l *Looper) wrap(pos int) int {
	if l.loop == nil || pos <= l.loop.End {
		return pos
	}

	span := l.loop.End - l.loop.Start + 1

	return l.loop.Start + (pos-l.loop.Start)%span
}
