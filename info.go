package wavloop

import (
	"fmt"
	"time"
)

// ChunkSummary describes one chunk of the container for display.
type ChunkSummary struct {
	ID       string
	ListType string
	Size     int
	Kind     ChunkKind
}

// Info is a read-only summary of a file.
type Info struct {
	SampleRate   int
	BitDepth     int
	NumChannels  int
	NumFrames    int
	Duration     time.Duration
	Loop         *LoopPoint
	LoopStart    time.Duration
	LoopEnd      time.Duration
	CuePoints    []CuePoint
	CueLabels    map[uint32]string
	Tags         *Tags
	Sampler      *SamplerInfo
	Chunks       []ChunkSummary
	TrailerBytes int
}

// Info collects the format, loop and tag metadata of the file. Optional
// chunks that fail to decode are reported as errors; missing ones are left nil.
func (f *File) Info() (*Info, error) {
	if f == nil {
		return nil, errNilFile
	}

	info := &Info{
		SampleRate:   f.SampleRate(),
		BitDepth:     f.samples.BitDepth(),
		NumChannels:  f.samples.NumChannels(),
		NumFrames:    f.NumFrames(),
		Duration:     f.Duration(),
		TrailerBytes: len(f.container.Trailer),
	}

	st, err := readLoopState(f.container)
	if err != nil {
		return nil, err
	}

	info.CuePoints = st.points

	if st.list != nil {
		for _, entry := range st.list.Entries {
			label, ok := entry.Label()
			if !ok || entry.ID != CIDLabel {
				continue
			}

			if info.CueLabels == nil {
				info.CueLabels = make(map[uint32]string)
			}

			id, _ := entry.CueID()
			info.CueLabels[id] = label
		}
	}

	p, ok, err := st.loop(f.NumFrames())
	if err != nil {
		return nil, err
	}

	if ok {
		info.Loop = &p
		info.LoopStart = f.TimeAt(p.Start)
		info.LoopEnd = f.TimeAt(p.End)
	}

	if chnk := f.container.FindList(ListTypeInfo); chnk != nil {
		info.Tags, err = DecodeInfoList(chnk.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode the INFO list: %w", err)
		}
	}

	if chnk := f.container.Find(CIDSmpl); chnk != nil {
		info.Sampler, err = DecodeSamplerChunk(chnk.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode the smpl chunk: %w", err)
		}
	}

	info.Chunks = buildChunkInventory(f.container)

	return info, nil
}

func buildChunkInventory(c *Container) []ChunkSummary {
	out := make([]ChunkSummary, 0, len(c.Chunks))

	for _, chnk := range c.Chunks {
		summary := ChunkSummary{
			ID:   string(chnk.ID[:]),
			Size: len(chnk.Data),
			Kind: chnk.Kind(),
		}

		if chnk.ID == CIDList {
			lt := chnk.ListType()
			summary.ListType = string(lt[:])
		}

		out = append(out, summary)
	}

	return out
}
