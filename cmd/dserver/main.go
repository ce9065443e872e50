// Command dserver runs the document-metadata index server.
//
// Usage: dserver [-g] document_folder cache_size [FIFO|RAND|LRU]
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/docindex/docindex"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := docindex.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	stdout := os.Stdout
	if cfg.Quiet {
		devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer devnull.Close()
		os.Stdout = devnull
		stdout = devnull
	}

	logger := slog.New(slog.NewTextHandler(stdout, nil))
	slog.SetDefault(logger)

	server, err := docindex.NewServer(cfg, "", logger)
	if err != nil {
		if errors.Is(err, docindex.ErrAlreadyLocked) {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := server.Serve(stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}
