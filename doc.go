// Package wavloop edits the loop metadata of PCM WAV files and smooths the
// seam of a loop.
//
// A file is parsed into an ordered list of RIFF chunks. Only the fmt, data, cue
// and LIST/adtl chunks are interpreted; every other chunk, and any bytes after
// the RIFF region, is written back byte for byte.
//
// The loop is stored the way samplers expect it: a cue point at the loop start
// and an ltxt entry in the adtl list whose sample length is End - Start. Both
// loop ends are inclusive.
//
//	f, err := wavloop.Decode(raw)
//	if err != nil {
//		return err
//	}
//
//	err = f.SetLoop(wavloop.LoopPoint{Start: 400, End: 1200})
//	if err != nil {
//		return err
//	}
//
//	err = f.Blend(wavloop.DefaultBlendWindow(f.SampleRate()), wavloop.CurveSmoothstep)
//	if err != nil {
//		return err
//	}
//
//	out, err := f.Encode()
//
// The package does no I/O of its own; callers read and write the bytes.
package wavloop
