// Named-pipe transport: the server's ingress FIFO and each in-flight
// client's private reply FIFO, built on golang.org/x/sys/unix.Mkfifo.
package docindex

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// ServerFIFOName and ClientFIFOPrefix are the basenames resolved
// under the server's tmp/ working directory.
const (
	ServerFIFOName   = "server_fifo"
	ClientFIFOPrefix = "client_fifo_"
)

// createFIFO creates a named pipe at path with the given mode. If a
// FIFO already exists there, that's treated as success (a restarted
// server reusing a pipe another process already made); any other
// stat result, or an Mkfifo failure, is an error — the CLI exits with
// code 2 on it, the same code it uses for its other startup and
// runtime failures.
func createFIFO(path string, mode uint32) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.Mode()&os.ModeNamedPipe == 0 {
			return fmt.Errorf("docindex: %s exists and is not a fifo", path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("docindex: stat %s: %w", path, err)
	}
	if err := unix.Mkfifo(path, mode); err != nil {
		return fmt.Errorf("docindex: mkfifo %s: %w", path, err)
	}
	return nil
}

// serverFIFOPath and clientFIFOPath resolve the FIFO paths for a
// given tmp/ working directory and client PID.
func serverFIFOPath(dir string) string {
	return filepath.Join(dir, ServerFIFOName)
}

func clientFIFOPath(dir string, pid int32) string {
	return filepath.Join(dir, fmt.Sprintf("%s%d", ClientFIFOPrefix, pid))
}

// sendReply opens the client's private FIFO WRONLY, writes the reply,
// and closes it. Opening blocks until the client has the read end
// open; a client that never reads leaves this blocked indefinitely —
// there is no cancellation or timeout on this path.
func sendReply(dir string, clientPID int32, reply []byte) error {
	path := clientFIFOPath(dir, clientPID)

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("docindex: open client fifo: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(reply); err != nil {
		return fmt.Errorf("docindex: write client fifo: %w", err)
	}
	return nil
}
