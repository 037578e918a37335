package wavloop

import (
	"errors"
	"io"
	"testing"

	"github.com/go-audio/audio"
)

func TestLooperPlaysIntroThenRepeatsLoop(t *testing.T) {
	f := newRampFile(t, 1, 10)
	if err := f.SetLoop(LoopPoint{Start: 3, End: 5}); err != nil {
		t.Fatalf("set loop: %v", err)
	}

	l, err := f.Looper()
	if err != nil {
		t.Fatalf("looper: %v", err)
	}

	buf := &audio.IntBuffer{Data: make([]int, 12)}

	n, err := l.PCMBuffer(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if n != 12 {
		t.Fatalf("read %d samples, want 12", n)
	}

	want := []int{0, 1, 2, 3, 4, 5, 3, 4, 5, 3, 4, 5}
	for i, frame := range want {
		if buf.Data[i] != frame*10 {
			t.Fatalf("sample %d=%d, want frame %d", i, buf.Data[i], frame)
		}
	}

	if l.Playhead() != 3 {
		t.Fatalf("playhead=%d, want 3", l.Playhead())
	}

	if buf.SourceBitDepth != 16 || buf.Format.NumChannels != 1 {
		t.Fatalf("unexpected buffer format %+v", buf)
	}
}

func TestLooperWithoutLoopStops(t *testing.T) {
	f := newRampFile(t, 2, 4)

	l, err := f.Looper()
	if err != nil {
		t.Fatalf("looper: %v", err)
	}

	buf := &audio.Float32Buffer{Data: make([]float32, 6)}

	n, err := l.Float32Buffer(buf)
	if err != nil || n != 6 {
		t.Fatalf("first read n=%d err=%v", n, err)
	}

	n, err = l.Float32Buffer(buf)
	if err != nil || n != 2 {
		t.Fatalf("second read n=%d err=%v", n, err)
	}

	if buf.Data[0] != float32(30)/32768 || buf.Data[1] != float32(-15)/32768 {
		t.Fatalf("unexpected last frame %v %v", buf.Data[0], buf.Data[1])
	}

	if _, err := l.Float32Buffer(buf); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestLooperSeek(t *testing.T) {
	f := newRampFile(t, 1, 10)

	l, err := NewLooper(f.Samples(), &LoopPoint{Start: 2, End: 8})
	if err != nil {
		t.Fatalf("looper: %v", err)
	}

	if err := l.Seek(8); err != nil {
		t.Fatalf("seek: %v", err)
	}

	buf := &audio.IntBuffer{Data: make([]int, 2)}
	if _, err := l.PCMBuffer(buf); err != nil {
		t.Fatalf("read: %v", err)
	}

	if buf.Data[0] != 80 || buf.Data[1] != 20 {
		t.Fatalf("expected wrap from 8 to 2, got %v", buf.Data)
	}

	if err := l.Seek(11); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLooperSeekToEnd(t *testing.T) {
	f := newRampFile(t, 1, 10)

	unlooped, err := NewLooper(f.Samples(), nil)
	if err != nil {
		t.Fatalf("looper: %v", err)
	}

	if err := unlooped.Seek(10); err != nil {
		t.Fatalf("seek to the end without a loop: %v", err)
	}

	buf := &audio.IntBuffer{Data: make([]int, 4)}
	if _, err := unlooped.PCMBuffer(buf); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}

	if err := f.SetLoop(LoopPoint{Start: 3, End: 5}); err != nil {
		t.Fatalf("set loop: %v", err)
	}

	looped, err := f.Looper()
	if err != nil {
		t.Fatalf("looper: %v", err)
	}

	if err := looped.Seek(10); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	if err := looped.Seek(9); err != nil {
		t.Fatalf("seek to the last frame: %v", err)
	}

	// frame 9 lies past the loop end and wraps into the loop afterwards
	if _, err := looped.PCMBuffer(buf); err != nil {
		t.Fatalf("read: %v", err)
	}

	if buf.Data[0] != 90 {
		t.Fatalf("expected the last frame first, got %v", buf.Data)
	}
}

func TestNewLooperRejectsBadLoop(t *testing.T) {
	f := newRampFile(t, 1, 10)

	if _, err := NewLooper(f.Samples(), &LoopPoint{Start: 2, End: 10}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
