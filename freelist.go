// Free-slot list: a LIFO stack of recyclable record-file slot IDs.
// Stores only the id; the byte offset (id*RecordSize) is always
// recomputed where a caller needs it (see storage.go), so there is no
// redundant position field to keep in sync.
package docindex

import (
	"encoding/binary"
	"fmt"
	"io"
)

// freeList is an ordered LIFO sequence of slot IDs currently unused.
// Not safe for concurrent use; owned exclusively by the storage
// engine's single goroutine.
type freeList struct {
	ids []int32
}

func newFreeList() *freeList {
	return &freeList{}
}

// push adds id to the list. Negative IDs are rejected.
func (fl *freeList) push(id int32) error {
	if id < 0 {
		return fmt.Errorf("%w: negative slot id %d", ErrBadArgument, id)
	}
	fl.ids = append(fl.ids, id)
	return nil
}

// emptyID is the sentinel returned by pop when the list is empty.
const emptyID int32 = -1

// pop removes and returns the most recently pushed ID, or emptyID if
// the list is empty.
func (fl *freeList) pop() int32 {
	if len(fl.ids) == 0 {
		return emptyID
	}
	n := len(fl.ids) - 1
	id := fl.ids[n]
	fl.ids = fl.ids[:n]
	return id
}

func (fl *freeList) size() int {
	return len(fl.ids)
}

func (fl *freeList) isEmpty() bool {
	return len(fl.ids) == 0
}

// save writes the free list as a u32 count followed by count
// little-endian i32 IDs, in LIFO (push/pop) order.
func (fl *freeList) save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(fl.ids))); err != nil {
		return fmt.Errorf("freelist: write count: %w", err)
	}
	for _, id := range fl.ids {
		if err := binary.Write(w, binary.LittleEndian, id); err != nil {
			return fmt.Errorf("freelist: write id: %w", err)
		}
	}
	return nil
}

// loadFreeList reads a free list from r in the save() layout. A short
// read (EOF before count, or before all IDs) is treated as "no prior
// checkpoint" and returns an empty list rather than an error.
func loadFreeList(r io.Reader) (*freeList, error) {
	fl := newFreeList()

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		if err == io.EOF {
			return fl, nil
		}
		return fl, nil
	}

	fl.ids = make([]int32, 0, count)
	for i := uint32(0); i < count; i++ {
		var id int32
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return newFreeList(), nil
		}
		fl.ids = append(fl.ids, id)
	}
	return fl, nil
}
