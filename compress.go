// Compression for rotated audit log segments.
//
// REQUESTS_LOG is plain text and append-only; once it crosses
// auditRotateSize the audit writer renames it aside and
// zstd-compresses the renamed copy in the background, so a
// long-running server's audit trail doesn't grow without bound on
// disk. The live log then restarts empty at REQUESTS_LOG.
package docindex

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/xxh3"
)

// auditRotateSize is the REQUESTS_LOG size, in bytes, past which the
// audit writer rotates the file.
const auditRotateSize = 8 * 1024 * 1024

// compressFile reads src fully, writes a zstd-compressed copy to dst
// and an xxh3 checksum of the uncompressed bytes to dst+".xxh3", then
// removes src. Called off the request path so a slow disk never
// blocks a client's reply. A fresh encoder is used per rotation
// rather than a shared one: rotations are rare (every auditRotateSize
// bytes of plain-text audit log) so encoder construction cost never
// competes with the request-serving hot path.
func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("compressFile: open: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("compressFile: create: %w", err)
	}

	enc, err := zstd.NewWriter(out)
	if err != nil {
		out.Close()
		return fmt.Errorf("compressFile: zstd encoder: %w", err)
	}

	h := xxh3.New()
	tee := io.TeeReader(in, h)

	if _, err := io.Copy(enc, tee); err != nil {
		enc.Close()
		out.Close()
		return fmt.Errorf("compressFile: copy: %w", err)
	}
	if err := enc.Close(); err != nil {
		out.Close()
		return fmt.Errorf("compressFile: close encoder: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("compressFile: close output: %w", err)
	}

	sum := strconv.FormatUint(h.Sum64(), 16)
	if err := os.WriteFile(dst+".xxh3", []byte(sum), 0o644); err != nil {
		return fmt.Errorf("compressFile: write checksum: %w", err)
	}

	return os.Remove(src)
}
