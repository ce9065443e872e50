// Wire format for Request/Reply: fixed-size structures exchanged
// over the named pipes. Byte order is little-endian throughout, an
// explicit, portable choice rather than host-native ordering.
package docindex

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Operation is the wire tag for a client request.
type Operation int32

const (
	OpIndex Operation = iota
	OpRemove
	OpConsult
	OpCountWord
	OpListWord
	OpShutdown
	OpKill
)

func (op Operation) String() string {
	switch op {
	case OpIndex:
		return "INDEX"
	case OpRemove:
		return "REMOVE"
	case OpConsult:
		return "CONSULT"
	case OpCountWord:
		return "COUNT_WORD"
	case OpListWord:
		return "LIST_WORD"
	case OpShutdown:
		return "SHUTDOWN"
	case OpKill:
		return "KILL"
	default:
		return "UNKNOWN"
	}
}

// auditLetter is the single-character audit-log op code.
func (op Operation) auditLetter() byte {
	switch op {
	case OpIndex:
		return 'A'
	case OpRemove:
		return 'D'
	case OpConsult:
		return 'C'
	case OpCountWord:
		return 'L'
	case OpListWord:
		return 'S'
	case OpKill:
		return 'K'
	case OpShutdown:
		return 'F'
	default:
		return 'X'
	}
}

// RequestSize is the exact on-wire size of a Request: a 4-byte PID, a
// 4-byte operation tag, and the four Document fields.
const RequestSize = 4 + 4 + RecordSize

// Request is the tagged union clients send over the wire. Fields are
// reused by operation: Title carries the key for REMOVE/CONSULT/
// COUNT_WORD or the keyword for LIST_WORD; Authors carries the keyword
// for COUNT_WORD and the worker count for LIST_WORD.
type Request struct {
	Client    int32
	Operation Operation
	Title     string
	Authors   string
	Year      string
	Path      string
}

// encode writes the RequestSize-byte wire representation of r.
func (r Request) encode(w io.Writer) error {
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(r.Client))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(r.Operation))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("request: write header: %w", err)
	}

	buf := make([]byte, RecordSize)
	doc := Document{Title: r.Title, Authors: r.Authors, Year: r.Year, Path: r.Path}
	if err := doc.encode(buf); err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("request: write body: %w", err)
	}
	return nil
}

// decodeRequest parses a RequestSize-byte buffer into a Request.
func decodeRequest(buf []byte) (Request, error) {
	if len(buf) < RequestSize {
		return Request{}, fmt.Errorf("%w: request buffer too small", ErrBadArgument)
	}

	client := int32(binary.LittleEndian.Uint32(buf[0:4]))
	op := Operation(int32(binary.LittleEndian.Uint32(buf[4:8])))

	doc, err := decodeDocument(buf[8:RequestSize])
	if err != nil {
		return Request{}, err
	}

	return Request{
		Client:    client,
		Operation: op,
		Title:     doc.Title,
		Authors:   doc.Authors,
		Year:      doc.Year,
		Path:      doc.Path,
	}, nil
}

// readRequest reads exactly one RequestSize-byte Request from r.
func readRequest(r io.Reader) (Request, error) {
	buf := make([]byte, RequestSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Request{}, err
	}
	return decodeRequest(buf)
}

// encodeInt32Reply returns the 4-byte little-endian wire form used by
// INDEX, REMOVE and COUNT_WORD replies.
func encodeInt32Reply(v int32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return buf
}

// encodeDocumentReply returns the RecordSize-byte wire form of a
// CONSULT reply.
func encodeDocumentReply(doc Document) ([]byte, error) {
	buf := make([]byte, RecordSize)
	if err := doc.encode(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// encodeListReply renders the matching IDs (in the order received) as
// a zero-terminated ASCII "[id, id, …]" string.
func encodeListReply(ids []int32) []byte {
	s := "["
	for i, id := range ids {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d", id)
	}
	s += "]"
	return append([]byte(s), 0)
}
