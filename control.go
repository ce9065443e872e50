// CONTROL_FILE checkpoint: load-at-startup, save-at-shutdown
// persistence for the free list and index table.
//
// The checkpoint is built in full in memory, then written to a temp
// path and renamed over CONTROL_FILE with github.com/natefinch/atomic,
// so a crash mid-write never leaves a half-written control file on
// disk — truncating and rewriting in place would lose the whole
// checkpoint if the process died partway through.
package docindex

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// loadControl parses CONTROL_FILE at path, in load order (free list,
// then index table). If the file is absent or truncated, both
// structures come back empty rather than erroring the whole startup.
func loadControl(path string) (*freeList, *indexTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newFreeList(), newIndexTable(), nil
		}
		return nil, nil, fmt.Errorf("control: open: %w", err)
	}
	r := bytes.NewReader(data)

	fl, err := loadFreeList(r)
	if err != nil {
		return nil, nil, err
	}
	// The index table section needs its 8-byte header plus every byte
	// its capacity field announces; anything shorter is a truncated
	// checkpoint, so the free list read before it is discarded too.
	rest := data[len(data)-r.Len():]
	if len(rest) < 8 || uint64(len(rest)-8) < uint64(binary.LittleEndian.Uint32(rest[:4])) {
		return newFreeList(), newIndexTable(), nil
	}
	it, err := loadIndexTable(r)
	if err != nil {
		return nil, nil, err
	}
	return fl, it, nil
}

// saveControl writes fl then it, in save order, to path atomically:
// the full checkpoint is buffered in memory and then replaces path in
// a single rename, so a partial write is never observable.
func saveControl(path string, fl *freeList, it *indexTable) error {
	var buf bytes.Buffer
	if err := fl.save(&buf); err != nil {
		return fmt.Errorf("control: save free list: %w", err)
	}
	if err := it.save(&buf); err != nil {
		return fmt.Errorf("control: save index table: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("control: atomic write: %w", err)
	}
	return nil
}
