package wavloop

import (
	"fmt"
	"math"
)

// LoopPoint is a loop region in frames. Both ends are inclusive: playback
// continues at Start after End has been played.
type LoopPoint struct {
	Start int
	End   int
}

// Length is the value stored in the ltxt sample length field.
func (p LoopPoint) Length() int {
	return p.End - p.Start
}

// Validate checks 0 <= Start < End < numFrames.
func (p LoopPoint) Validate(numFrames int) error {
	if p.Start < 0 || p.End < 0 {
		return fmt.Errorf("%w: negative loop bound %d..%d", ErrValidation, p.Start, p.End)
	}

	if p.Start >= p.End {
		return fmt.Errorf("%w: loop start %d is not before loop end %d", ErrValidation, p.Start, p.End)
	}

	if p.End >= numFrames {
		return fmt.Errorf("%w: loop end %d is outside the %d frames of audio", ErrValidation, p.End, numFrames)
	}

	if uint64(p.End) > math.MaxUint32 {
		return fmt.Errorf("%w: loop end %d does not fit a cue point", ErrValidation, p.End)
	}

	return nil
}

func (p LoopPoint) String() string {
	return fmt.Sprintf("%d..%d", p.Start, p.End)
}

// loopState is the decoded view of the two loop chunks.
type loopState struct {
	points []CuePoint
	list   *AssocList
	// cueIdx and textIdx locate the active loop, -1 when there is none.
	cueIdx  int
	textIdx int
}

func readLoopState(c *Container) (*loopState, error) {
	st := &loopState{cueIdx: -1, textIdx: -1}

	if chnk := c.Find(CIDCue); chnk != nil {
		points, err := DecodeCueChunk(chnk.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode the cue chunk: %w", err)
		}

		st.points = points
	}

	if chnk := c.FindList(ListTypeAdtl); chnk != nil {
		list, err := DecodeAssocList(chnk.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode the adtl list: %w", err)
		}

		st.list = list
	}

	// first cue point in file order with a labeled text wins
	for i, pt := range st.points {
		if j := st.list.labeledTextFor(pt.ID); j >= 0 {
			st.cueIdx = i
			st.textIdx = j

			break
		}
	}

	return st, nil
}

// loop returns the active loop checked against numFrames. A stored pair that
// is empty or reaches past the audio is reported as ErrCorruptData.
func (st *loopState) loop(numFrames int) (LoopPoint, bool, error) {
	if st.cueIdx < 0 {
		return LoopPoint{}, false, nil
	}

	pt := st.points[st.cueIdx]
	lt, _ := st.list.Entries[st.textIdx].LabeledText()

	end := uint64(pt.SampleOffset) + uint64(lt.SampleLength)
	if end > math.MaxUint32 {
		return LoopPoint{}, false, fmt.Errorf("%w: cue point %d: loop end %d does not fit a cue point",
			ErrCorruptData, pt.ID, end)
	}

	p := LoopPoint{Start: int(pt.SampleOffset), End: int(end)}

	err := p.Validate(numFrames)
	if err != nil {
		return LoopPoint{}, false, fmt.Errorf("%w: cue point %d: %v", ErrCorruptData, pt.ID, err)
	}

	return p, true, nil
}

// nextCueID returns an ID not used by any cue point or adtl entry.
func (st *loopState) nextCueID() uint32 {
	used := make(map[uint32]bool)

	var maxID uint32

	for _, pt := range st.points {
		used[pt.ID] = true
		maxID = max(maxID, pt.ID)
	}

	if st.list != nil {
		for _, entry := range st.list.Entries {
			if id, ok := entry.CueID(); ok {
				used[id] = true
				maxID = max(maxID, id)
			}
		}
	}

	if maxID < math.MaxUint32 {
		return maxID + 1
	}

	// the largest ID is taken, fall back to the lowest free one
	var id uint32
	for used[id] {
		id++
	}

	return id
}

// containerFrames returns the number of audio frames in c, or math.MaxInt
// when the fmt or data chunk is missing or unreadable.
func containerFrames(c *Container) int {
	f, err := FromContainer(c)
	if err != nil {
		return math.MaxInt
	}

	return f.NumFrames()
}

// ReadLoop returns the active loop: the first cue point, in file order, that
// has a matching ltxt entry in the adtl list. Cue points or ltxt entries
// without a partner are ignored. An active loop that is empty or ends outside
// the audio is an ErrCorruptData error; WriteLoop and ClearLoop still accept
// such a container, so the loop can be repaired or removed.
func ReadLoop(c *Container) (LoopPoint, bool, error) {
	st, err := readLoopState(c)
	if err != nil {
		return LoopPoint{}, false, err
	}

	return st.loop(containerFrames(c))
}

// WriteLoop stores p as the active loop. An existing loop keeps its cue ID;
// otherwise a fresh ID is allocated. Other cue points and adtl entries are
// kept. The container is untouched when an error is returned.
func WriteLoop(c *Container, p LoopPoint, numFrames int) error {
	err := p.Validate(numFrames)
	if err != nil {
		return err
	}

	st, err := readLoopState(c)
	if err != nil {
		return err
	}

	points := append([]CuePoint(nil), st.points...)

	list := &AssocList{}
	if st.list != nil {
		list.Entries = append(list.Entries, st.list.Entries...)
	}

	start, length := uint32(p.Start), uint32(p.Length())

	if st.cueIdx >= 0 {
		id := points[st.cueIdx].ID
		points[st.cueIdx] = newCuePoint(id, start)
		list.Entries[st.textIdx] = list.Entries[st.textIdx].withSampleLength(length)
	} else {
		id := st.nextCueID()
		points = append(points, newCuePoint(id, start))
		list.Entries = append(list.Entries, newLoopLengthEntry(id, length))
	}

	cueData := encodeCueChunk(points)
	listData := list.Bytes()

	c.Upsert(CIDCue, cueData)
	c.Upsert(CIDList, listData)

	return nil
}

// ClearLoop removes the active loop's cue point and every adtl entry that
// refers to it. A chunk left empty is removed. Without a loop it does nothing.
func ClearLoop(c *Container) error {
	st, err := readLoopState(c)
	if err != nil {
		return err
	}

	if st.cueIdx < 0 {
		return nil
	}

	id := st.points[st.cueIdx].ID

	points := append([]CuePoint(nil), st.points[:st.cueIdx]...)
	points = append(points, st.points[st.cueIdx+1:]...)

	st.list.removeCue(id)

	if len(points) == 0 {
		c.Remove(CIDCue)
	} else {
		c.Upsert(CIDCue, encodeCueChunk(points))
	}

	if len(st.list.Entries) == 0 {
		c.RemoveList(ListTypeAdtl)
	} else {
		c.Upsert(CIDList, st.list.Bytes())
	}

	return nil
}
