// Request dispatcher: the server's single-goroutine main loop plus
// the per-request worker goroutines it spawns to send replies.
//
// The dispatcher owns the storage engine exclusively. A request's
// persistent-state mutation (INDEX, REMOVE) and its read through the
// shared cache (CONSULT, the record lookups inside COUNT_WORD and
// LIST_WORD) always happen on the dispatcher's own goroutine, never on
// a worker — the storage engine, the free list, the index table and
// the cache are not safe for concurrent use, and moving any of that
// work onto a worker would require synchronizing it, defeating the
// point of a single owner. Workers instead do exactly the parts that
// can block or run slowly without touching shared state: opening a
// client's reply FIFO (which blocks until the client has it open for
// reading) and invoking the external grep subprocess for COUNT_WORD
// and LIST_WORD.
package docindex

import (
	"context"
	"log/slog"
	"sync"
)

// dispatcherState tracks whether the main loop is still accepting new
// requests.
type dispatcherState int32

const (
	stateRunning dispatcherState = iota
	stateStopping
)

// Dispatcher reads Requests off a channel fed by the server FIFO,
// mutates or consults the storage engine as each operation demands,
// and spawns a worker goroutine per request to deliver the reply.
type Dispatcher struct {
	storage *Storage
	dir     string
	log     *slog.Logger

	intake chan Request
	audit  chan<- Request

	wg    sync.WaitGroup // in-flight reply-sending workers
	state dispatcherState
}

// NewDispatcher wires a Dispatcher around storage. dir is the
// server's working directory, used to resolve client reply FIFOs.
// audit receives a copy of every request as it's dispatched, in
// arrival order; the caller is responsible for draining it (see
// audit.go).
func NewDispatcher(storage *Storage, dir string, audit chan<- Request, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		storage: storage,
		dir:     dir,
		log:     log,
		intake:  make(chan Request),
		audit:   audit,
		state:   stateRunning,
	}
}

// Intake returns the channel the transport's FIFO-reading loop should
// send decoded Requests to.
func (d *Dispatcher) Intake() chan<- Request {
	return d.intake
}

// Run is the dispatcher's main loop. It returns once a SHUTDOWN
// request has been processed and every in-flight reply worker has
// finished, at which point the caller should checkpoint and close the
// storage engine.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		var req Request
		select {
		case req = <-d.intake:
		case <-ctx.Done():
			d.wg.Wait()
			return
		}

		if d.audit != nil {
			d.audit <- req
		}

		if d.handle(req) {
			break
		}
	}
	d.wg.Wait()
}

// handle dispatches one request on the dispatcher's own goroutine and
// reports whether the main loop should stop after it.
func (d *Dispatcher) handle(req Request) (stop bool) {
	if d.state == stateStopping {
		// A request arrived after SHUTDOWN was already accepted; there
		// is no client left expecting a reply to anything but the
		// shutdown itself, so it is dropped rather than served.
		d.log.Warn("dropping request received after shutdown", "op", req.Operation, "client", req.Client)
		return false
	}

	switch req.Operation {
	case OpIndex:
		d.handleIndex(req)
	case OpRemove:
		d.handleRemove(req)
	case OpConsult:
		d.handleConsult(req)
	case OpCountWord:
		d.handleCountWord(req)
	case OpListWord:
		d.handleListWord(req)
	case OpKill:
		d.handleKill(req)
	case OpShutdown:
		d.state = stateStopping
		return true
	default:
		d.log.Warn("unknown operation", "op", int32(req.Operation), "client", req.Client)
	}
	return false
}

// spawnReply launches a worker goroutine that sends reply to the
// client's FIFO and then exits. The dispatcher's main loop never
// blocks waiting for it.
func (d *Dispatcher) spawnReply(client int32, reply []byte) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := sendReply(d.dir, client, reply); err != nil {
			d.log.Error("send reply failed", "client", client, "error", err)
		}
	}()
}

// handleIndex performs the INDEX mutation synchronously, then hands
// the assigned (or failed) ID off to a reply worker.
func (d *Dispatcher) handleIndex(req Request) {
	doc := Document{Title: req.Title, Authors: req.Authors, Year: req.Year, Path: req.Path}
	id, err := d.storage.Index(doc)
	if err != nil {
		d.log.Error("index failed", "client", req.Client, "error", err)
		d.spawnReply(req.Client, encodeInt32Reply(notFoundID))
		return
	}
	d.spawnReply(req.Client, encodeInt32Reply(id))
}

// handleRemove performs the REMOVE mutation synchronously, then
// replies with the removed ID, or notFoundID if it was never valid.
func (d *Dispatcher) handleRemove(req Request) {
	id := parseID(req.Title)
	removed, err := d.storage.Remove(id)
	if err != nil {
		d.log.Error("remove failed", "client", req.Client, "error", err)
		d.spawnReply(req.Client, encodeInt32Reply(notFoundID))
		return
	}
	d.spawnReply(req.Client, encodeInt32Reply(removed))
}

// handleConsult fetches the document through the shared cache on the
// dispatcher's own goroutine, then hands the already-resolved,
// detached Document value to a worker purely for reply delivery.
func (d *Dispatcher) handleConsult(req Request) {
	id := parseID(req.Title)
	doc, ok := d.storage.Consult(id)
	if !ok {
		doc = notFoundDocument()
	}
	reply, err := encodeDocumentReply(doc)
	if err != nil {
		d.log.Error("encode consult reply failed", "client", req.Client, "error", err)
		return
	}
	d.spawnReply(req.Client, reply)
}

// handleCountWord resolves the target record through the cache on the
// dispatcher's goroutine, then spawns a worker to join the path and
// invoke grep -c — the one part of this operation that can run slowly
// and doesn't touch shared state.
func (d *Dispatcher) handleCountWord(req Request) {
	id := parseID(req.Title)
	keyword := req.Authors
	doc, ok := d.storage.Consult(id)
	folder := d.storage.DocumentFolder()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		count := int32(-1)
		if ok {
			count = countKeyword(joinDocumentPath(folder, doc.Path), keyword)
		}
		if err := sendReply(d.dir, req.Client, encodeInt32Reply(count)); err != nil {
			d.log.Error("send reply failed", "client", req.Client, "error", err)
		}
	}()
}

// handleListWord resolves every valid ID's Document through the cache
// on the dispatcher's goroutine (the only place that may touch it),
// then fans the grep -q invocations for each resolved path out across
// a worker pool sized from the request, joins the results, and
// replies with the matching IDs.
func (d *Dispatcher) handleListWord(req Request) {
	keyword := req.Title
	workers := int(parseID(req.Authors))

	ids := d.storage.ValidIDs()
	type candidate struct {
		id   int32
		path string
	}
	candidates := make([]candidate, 0, len(ids))
	folder := d.storage.DocumentFolder()
	for _, id := range ids {
		doc, ok := d.storage.Consult(id)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{id: id, path: joinDocumentPath(folder, doc.Path)})
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(candidates) && len(candidates) > 0 {
		workers = len(candidates)
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		matches := make(chan int32, len(candidates))
		var fan sync.WaitGroup
		shards := shardCandidates(candidates, workers)
		for _, shard := range shards {
			fan.Add(1)
			go func(shard []candidate) {
				defer fan.Done()
				for _, c := range shard {
					if keywordExists(c.path, keyword) {
						matches <- c.id
					}
				}
			}(shard)
		}
		fan.Wait()
		close(matches)

		var found []int32
		for id := range matches {
			found = append(found, id)
		}

		if err := sendReply(d.dir, req.Client, encodeListReply(found)); err != nil {
			d.log.Error("send reply failed", "client", req.Client, "error", err)
		}
	}()
}

// shardCandidates splits items into at most n contiguous, order-
// preserving shards: shard i starts at i*(len(items)/n) and the last
// shard also takes the remainder.
func shardCandidates[T any](items []T, n int) [][]T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	if n > len(items) {
		n = len(items)
	}
	per := len(items) / n
	shards := make([][]T, n)
	for i := range shards {
		end := (i + 1) * per
		if i == n-1 {
			end = len(items)
		}
		shards[i] = items[i*per : end]
	}
	return shards
}

// handleKill is the completion back-channel a reply worker would have
// signalled through a forked process's exit status. Under goroutines
// there is nothing left to reap — spawnReply's own WaitGroup already
// accounts for worker completion — so this only logs the signal for
// anyone tailing server diagnostics.
func (d *Dispatcher) handleKill(req Request) {
	d.log.Debug("worker completion signal", "client", req.Client)
}

// parseID parses a decimal slot ID out of a request field, returning
// notFoundID on anything that isn't a valid non-negative integer.
func parseID(field string) int32 {
	var v int32
	var sawDigit bool
	for _, r := range field {
		if r < '0' || r > '9' {
			if sawDigit {
				break
			}
			return notFoundID
		}
		sawDigit = true
		v = v*10 + int32(r-'0')
	}
	if !sawDigit {
		return notFoundID
	}
	return v
}
