// Storage engine: owns the record file, the control-file checkpoint,
// the free list, the index table and the cache. This is the only
// component that ever mutates persisted state, and only the
// dispatcher's goroutine calls it; request workers receive values it
// has already resolved (see dispatcher.go).
package docindex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage is the fixed-record store plus its in-memory catalog.
// Not safe for concurrent use: all persistent-state mutation happens
// on the dispatcher's single goroutine.
type Storage struct {
	documentFolder string
	storagePath    string
	controlPath    string

	file  *os.File // dispatcher's own read/write handle
	lock  *fileLock
	free  *freeList
	index *indexTable
	cache *Cache

	closed bool
}

// StorageFileName and ControlFileName are the basenames resolved
// under the server's working directory (tmp/).
const (
	StorageFileName = "metadata.bin"
	ControlFileName = "metadata_control.bin"
)

// OpenStorage opens or creates the record file under dir, recovers
// any checkpoint from the control file, and wires up a cache of the
// given type and block capacity. dir is the server's own working
// directory (distinct from documentFolder, which holds the indexed
// documents themselves and is only ever joined with a record's Path
// for COUNT_WORD/LIST_WORD).
func OpenStorage(dir, documentFolder string, cacheType CacheType, cacheSize int) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: mkdir %s: %w", dir, err)
	}

	storagePath := filepath.Join(dir, StorageFileName)
	controlPath := filepath.Join(dir, ControlFileName)

	file, err := os.OpenFile(storagePath, os.O_CREATE|os.O_RDWR, 0o666)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", storagePath, err)
	}

	lock := &fileLock{}
	lock.setFile(file)
	if err := lock.TryLock(); err != nil {
		file.Close()
		return nil, err
	}

	free, index, err := loadControl(controlPath)
	if err != nil {
		lock.Unlock()
		file.Close()
		return nil, err
	}
	// Unlink the control file once loaded, so a crashed server's next
	// boot sees no control file and starts fresh if the prior
	// checkpoint never completed.
	_ = os.Remove(controlPath)

	s := &Storage{
		documentFolder: documentFolder,
		storagePath:    storagePath,
		controlPath:    controlPath,
		file:           file,
		lock:           lock,
		free:           free,
		index:          index,
	}
	s.cache = NewCache(cacheType, cacheSize, s, fmt.Sprintf("%s/%d", storagePath, os.Getpid()))
	return s, nil
}

// readBlock implements cacheSource: it reads up to blockSize records
// starting at slot id from the dispatcher's own handle, using an
// explicit offset rather than Seek+Read so concurrent readers never
// race over a shared file position.
func (s *Storage) readBlock(id int32) ([]Document, error) {
	buf := make([]byte, RecordSize*blockSize)
	n, err := s.file.ReadAt(buf, int64(id)*RecordSize)
	if n == 0 {
		// EOF (or any other read error) with no bytes read: a clean
		// miss, not a failure — there is simply nothing at this slot.
		_ = err
		return nil, nil
	}
	count := n / RecordSize
	docs := make([]Document, 0, count)
	for i := 0; i < count; i++ {
		doc, derr := decodeDocument(buf[i*RecordSize : (i+1)*RecordSize])
		if derr != nil {
			break
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Index pops a recycled slot if one exists, otherwise appends; writes
// the record; marks the slot valid. Returns the assigned slot ID.
func (s *Storage) Index(doc Document) (int32, error) {
	if s.closed {
		return 0, ErrClosed
	}

	var id int32
	if s.free.isEmpty() {
		size, err := s.file.Seek(0, io.SeekEnd)
		if err != nil {
			return 0, fmt.Errorf("storage: seek end: %w", err)
		}
		id = int32(size / RecordSize)
	} else {
		id = s.free.pop()
	}

	buf := make([]byte, RecordSize)
	if err := doc.encode(buf); err != nil {
		return 0, err
	}
	if _, err := s.file.WriteAt(buf, int64(id)*RecordSize); err != nil {
		return 0, fmt.Errorf("storage: write record: %w", err)
	}

	if err := s.index.add(id); err != nil {
		return 0, err
	}
	s.cache.Add(id, doc)

	return id, nil
}

// Remove clears the bit and pushes the slot onto the free list,
// tombstoning the record logically rather than touching the file.
func (s *Storage) Remove(id int32) (int32, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if !s.index.isValid(id) {
		return notFoundID, nil
	}

	s.index.remove(id)
	if err := s.free.push(id); err != nil {
		return 0, err
	}
	s.cache.Remove(id)

	return id, nil
}

// Consult is a validity check followed by a cache-through fetch. Only
// the dispatcher goroutine may call this directly, since it drives
// the shared cache; per-request workers receive an already-fetched
// Document value instead (see dispatcher.go).
func (s *Storage) Consult(id int32) (Document, bool) {
	if !s.index.isValid(id) {
		return Document{}, false
	}
	return s.cache.Get(id)
}

// ValidIDs returns every currently-live slot ID in ascending order.
func (s *Storage) ValidIDs() []int32 {
	return s.index.validIDs()
}

// DocumentFolder returns the folder documents' Path fields are joined
// against for COUNT_WORD/LIST_WORD.
func (s *Storage) DocumentFolder() string {
	return s.documentFolder
}

// StoragePath returns the path to the record file.
func (s *Storage) StoragePath() string {
	return s.storagePath
}

// Shutdown checkpoints the free list and index table to CONTROL_FILE
// (atomically — see control.go) and closes the record file. Order
// matters and must match loadControl: free list, then index table.
func (s *Storage) Shutdown() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := saveControl(s.controlPath, s.free, s.index)

	s.lock.Unlock()
	s.lock.setFile(nil)
	closeErr := s.file.Close()
	if err != nil {
		return err
	}
	return closeErr
}
