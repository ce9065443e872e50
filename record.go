// Document record format and the fixed-width field sizes shared by
// the wire protocol and the on-disk storage file.
package docindex

import (
	"bytes"
	"fmt"
)

// Field sizes, in bytes. Year has no terminator: it holds exactly 4
// digits and must never be treated as a NUL-terminated string.
const (
	TitleSize   = 200
	AuthorsSize = 200
	YearSize    = 4
	PathSize    = 64

	// RecordSize is the fixed width of one Document on disk. Every
	// slot i lives at byte offset i*RecordSize.
	RecordSize = TitleSize + AuthorsSize + YearSize + PathSize
)

// notFoundTitle is written into the title field of a CONSULT reply
// when the requested ID has no live record.
const notFoundTitle = "Document was not found"

// Document is the fixed-width metadata tuple. Title, Authors and Path
// are stored and transmitted as fixed-size, NUL-padded (NUL-terminated
// where a terminator fits) byte arrays and are truncated at the
// declared capacity on encode; Year is exactly YearSize space-padded
// bytes, and a longer Year is rejected.
type Document struct {
	Title   string
	Authors string
	Year    string
	Path    string
}

// Clone returns a detached copy of doc: every cache and storage read
// hands callers their own copy so mutation never leaks between the
// cache, the dispatcher and the reply path.
func (d Document) Clone() Document {
	return Document{Title: d.Title, Authors: d.Authors, Year: d.Year, Path: d.Path}
}

// notFoundDocument returns the sentinel record sent to a client when
// CONSULT targets an ID that isn't live.
func notFoundDocument() Document {
	return Document{Title: notFoundTitle}
}

func putFixed(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

func getFixed(src []byte) string {
	if i := bytes.IndexByte(src, 0); i >= 0 {
		return string(src[:i])
	}
	return string(src)
}

// encode writes the RecordSize-byte on-disk/wire representation of
// doc into buf, which must be at least RecordSize bytes.
func (d Document) encode(buf []byte) error {
	if len(buf) < RecordSize {
		return fmt.Errorf("%w: record buffer too small", ErrBadArgument)
	}
	if len(d.Year) > YearSize {
		return fmt.Errorf("%w: year exceeds %d bytes", ErrBadArgument, YearSize)
	}

	off := 0
	putFixed(buf[off:off+TitleSize], d.Title)
	off += TitleSize
	putFixed(buf[off:off+AuthorsSize], d.Authors)
	off += AuthorsSize
	// Year has no terminator: copy exactly YearSize bytes, space-pad
	// short values instead of NUL-padding so a 4-byte read back never
	// looks like an empty C string.
	copy(buf[off:off+YearSize], []byte(fmt.Sprintf("%-4s", d.Year))[:YearSize])
	off += YearSize
	putFixed(buf[off:off+PathSize], d.Path)

	return nil
}

// decodeDocument parses a RecordSize-byte buffer into a Document.
func decodeDocument(buf []byte) (Document, error) {
	if len(buf) < RecordSize {
		return Document{}, fmt.Errorf("%w: record buffer too small", ErrBadArgument)
	}

	off := 0
	title := getFixed(buf[off : off+TitleSize])
	off += TitleSize
	authors := getFixed(buf[off : off+AuthorsSize])
	off += AuthorsSize
	year := string(bytes.TrimRight(buf[off:off+YearSize], " \x00"))
	off += YearSize
	path := getFixed(buf[off : off+PathSize])

	return Document{Title: title, Authors: authors, Year: year, Path: path}, nil
}
