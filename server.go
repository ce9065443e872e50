// Server ties the storage engine, the dispatcher, the named-pipe
// transport and the audit writer into the single running process a
// dserver invocation starts.
package docindex

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// WorkDir is the basename of the server's own working directory,
// relative to the current directory, holding STORAGE_FILE,
// CONTROL_FILE, REQUESTS_LOG and the FIFOs.
const WorkDir = "tmp"

// Server is a fully wired dserver instance: one storage engine, one
// dispatcher goroutine, one audit writer goroutine, and the FIFO
// ingress loop feeding requests to the dispatcher.
type Server struct {
	cfg     Config
	dir     string
	storage *Storage
	log     *slog.Logger
}

// NewServer opens the storage engine under dir (WorkDir by default)
// for cfg.DocumentFolder, recovering any prior checkpoint.
func NewServer(cfg Config, dir string, log *slog.Logger) (*Server, error) {
	if dir == "" {
		dir = WorkDir
	}
	if log == nil {
		log = slog.Default()
	}
	storage, err := OpenStorage(dir, cfg.DocumentFolder, cfg.CacheType, cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, dir: dir, storage: storage, log: log}, nil
}

// Serve creates the server FIFO, writes the ready banner to stdout
// unless stdout is nil, and runs until a SHUTDOWN request is processed. It
// checkpoints and closes the storage engine before returning.
func (s *Server) Serve(stdout *os.File) error {
	serverPath := serverFIFOPath(s.dir)
	if err := createFIFO(serverPath, 0o666); err != nil {
		return err
	}
	defer os.Remove(serverPath)

	auditCh := make(chan Request, 64)
	aw := newAuditWriter(s.dir, auditCh)
	go aw.run()

	dispatcher := NewDispatcher(s.storage, s.dir, auditCh, s.log)

	readEnd, err := os.OpenFile(serverPath, os.O_RDWR, 0)
	if err != nil {
		close(auditCh)
		return fmt.Errorf("server: open server fifo: %w", err)
	}
	defer readEnd.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for {
			req, err := readRequest(readEnd)
			if err != nil {
				cancel()
				return
			}
			select {
			case dispatcher.Intake() <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	if stdout != nil {
		banner := StatusBanner{
			DocumentFolder: s.cfg.DocumentFolder,
			CacheType:      s.cfg.CacheType.String(),
			CacheSize:      s.cfg.CacheSize,
			ServerFIFO:     serverPath,
		}
		if line, err := banner.Encode(); err == nil {
			stdout.Write(line)
		}
	}

	dispatcher.Run(ctx)
	cancel()

	close(auditCh)
	aw.wait()

	return s.storage.Shutdown()
}
