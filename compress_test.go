package docindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestCompressFileProducesDecodableOutputAndChecksum(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "requests.log.123")
	dst := src + ".zst"
	content := []byte("[1] requested A | args: t a y p | (2026-01-01 00:00:00)\n")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := compressFile(src, dst); err != nil {
		t.Fatalf("compressFile: %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("expected src to be removed after compression")
	}

	compressed, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile dst: %v", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		t.Fatalf("zstd.NewReader: %v", err)
	}
	defer dec.Close()
	got, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("decompressed = %q, want %q", got, content)
	}

	if _, err := os.Stat(dst + ".xxh3"); err != nil {
		t.Fatalf("expected a checksum sidecar file: %v", err)
	}
}

func TestCompressFileMissingSourceErrors(t *testing.T) {
	dir := t.TempDir()
	err := compressFile(filepath.Join(dir, "nope"), filepath.Join(dir, "nope.zst"))
	if err == nil {
		t.Fatal("expected an error compressing a nonexistent source")
	}
}
