// Asynchronous audit log writer: a background goroutine drains a
// channel of Requests and appends one human-readable line per request
// to REQUESTS_LOG. Rotation and zstd compression are ambient log
// hygiene layered on top, not part of the wire contract.
package docindex

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RequestsLogName is the audit log's basename.
const RequestsLogName = "requests.log"

// auditWriter drains requests from a channel and appends formatted
// lines to REQUESTS_LOG, rotating and zstd-compressing the file once
// it grows past auditRotateSize.
type auditWriter struct {
	path     string
	requests <-chan Request
	done     chan struct{}
}

func newAuditWriter(dir string, requests <-chan Request) *auditWriter {
	return &auditWriter{
		path:     filepath.Join(dir, RequestsLogName),
		requests: requests,
		done:     make(chan struct{}),
	}
}

// run is the audit writer's main loop; spawn it in its own goroutine
// at startup (the Go analogue of the source's forked audit child). It
// returns once requests is closed and drained, mirroring the source
// reading until EOF on the log pipe.
func (a *auditWriter) run() {
	defer close(a.done)

	file, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return
	}
	defer file.Close()

	for req := range a.requests {
		line := formatAuditLine(req)
		if _, err := file.WriteString(line); err != nil {
			continue
		}

		if info, err := file.Stat(); err == nil && info.Size() > auditRotateSize {
			file.Close()
			a.rotate()
			file, err = os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
			if err != nil {
				return
			}
		}
	}
}

// rotate renames REQUESTS_LOG aside and compresses it in the
// background, so the caller (run's loop) is never blocked on disk
// I/O slower than the request-serving path.
func (a *auditWriter) rotate() {
	rotated := fmt.Sprintf("%s.%d", a.path, time.Now().UnixNano())
	if err := os.Rename(a.path, rotated); err != nil {
		return
	}
	go func() {
		_ = compressFile(rotated, rotated+".zst")
	}()
}

// wait blocks until the writer has drained its channel and exited.
func (a *auditWriter) wait() {
	<-a.done
}

// formatAuditLine renders one Request as:
// "[<pid>] requested <op-letter> | args: <args> | (<YYYY-MM-DD HH:MM:SS>)\n".
func formatAuditLine(req Request) string {
	return fmt.Sprintf("[%d] requested %c | args: %s | (%s)\n",
		req.Client, req.Operation.auditLetter(), auditArgs(req), time.Now().Format("2006-01-02 15:04:05"))
}

// auditArgs renders the operation-dependent argument string: INDEX
// logs all four fields, REMOVE/CONSULT log the key, COUNT_WORD logs
// the key and keyword, LIST_WORD logs the keyword and worker count,
// KILL/SHUTDOWN log nothing.
func auditArgs(req Request) string {
	switch req.Operation {
	case OpIndex:
		return fmt.Sprintf("%s %s %s %s", req.Title, req.Authors, req.Year, req.Path)
	case OpRemove, OpConsult:
		return req.Title
	case OpCountWord, OpListWord:
		return fmt.Sprintf("%s %s", req.Title, req.Authors)
	default:
		return ""
	}
}
