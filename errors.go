// Package docindex implements a persistent document-metadata index
// server. Clients index, remove, consult, count a keyword within, or
// list documents containing a keyword, over local named pipes. The
// package provides the server-side storage-and-serving engine: the
// fixed-record store, the bit-packed index table and free list, a
// pluggable read-through metadata cache, and the request dispatcher.
package docindex

import "errors"

// Sentinel errors of the docindex package.
var (
	// ErrNotFound names a slot ID that is not currently valid (never
	// assigned, or assigned and since removed). Storage reports that
	// case as notFoundID from Remove and a false result from Consult,
	// not as this error.
	ErrNotFound = errors.New("docindex: document not found")

	// ErrClosed is returned when operating on a closed storage engine.
	ErrClosed = errors.New("docindex: storage engine is closed")

	// ErrBadArgument is returned for a negative ID, a bad command-line
	// argument, a short request or record buffer, or a Year longer
	// than YearSize.
	ErrBadArgument = errors.New("docindex: bad argument")

	// ErrCorruptControl names an unparseable CONTROL_FILE. loadControl
	// does not return it: a short or malformed read is treated as "no
	// prior checkpoint".
	ErrCorruptControl = errors.New("docindex: corrupt control file")

	// ErrShuttingDown names a request that arrives after SHUTDOWN has
	// moved the dispatcher to STOPPING. The dispatcher logs and drops
	// such a request instead of returning this error.
	ErrShuttingDown = errors.New("docindex: server is shutting down")
)
