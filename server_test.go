package docindex

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestServeHandlesIndexAndShutdown(t *testing.T) {
	dir := t.TempDir()
	docsDir := filepath.Join(dir, "docs")
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	cfg := Config{DocumentFolder: docsDir, CacheSize: 0, CacheType: CacheNone}
	srv, err := NewServer(cfg, dir, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(nil) }()

	// Serve creates the server fifo asynchronously relative to this
	// goroutine; poll briefly until it shows up.
	serverPath := serverFIFOPath(dir)
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(serverPath); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("server fifo never appeared")
		}
		time.Sleep(10 * time.Millisecond)
	}

	clientPath := clientFIFOPath(dir, 1)
	if err := createFIFO(clientPath, 0o600); err != nil {
		t.Fatalf("createFIFO: %v", err)
	}

	replyCh := make(chan []byte, 1)
	go func() {
		f, err := os.OpenFile(clientPath, os.O_RDONLY, 0)
		if err != nil {
			return
		}
		defer f.Close()
		buf := make([]byte, 4)
		n, _ := f.Read(buf)
		replyCh <- buf[:n]
	}()

	w, err := os.OpenFile(serverPath, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open server fifo: %v", err)
	}
	req := Request{Client: 1, Operation: OpIndex, Title: "t", Path: "t.txt"}
	if err := req.encode(w); err != nil {
		t.Fatalf("encode: %v", err)
	}
	w.Close()

	select {
	case reply := <-replyCh:
		id := int32(reply[0]) | int32(reply[1])<<8 | int32(reply[2])<<16 | int32(reply[3])<<24
		if id != 0 {
			t.Fatalf("INDEX reply id = %d, want 0", id)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for INDEX reply")
	}

	w, err = os.OpenFile(serverPath, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open server fifo: %v", err)
	}
	shutdown := Request{Client: 1, Operation: OpShutdown}
	if err := shutdown.encode(w); err != nil {
		t.Fatalf("encode: %v", err)
	}
	w.Close()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("Serve returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after SHUTDOWN")
	}
}
