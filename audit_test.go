package docindex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAuditArgsPerOperation(t *testing.T) {
	cases := []struct {
		req  Request
		want string
	}{
		{Request{Operation: OpIndex, Title: "t", Authors: "a", Year: "y", Path: "p"}, "t a y p"},
		{Request{Operation: OpRemove, Title: "5"}, "5"},
		{Request{Operation: OpConsult, Title: "6"}, "6"},
		{Request{Operation: OpCountWord, Title: "5", Authors: "kw"}, "5 kw"},
		{Request{Operation: OpListWord, Title: "kw", Authors: "4"}, "kw 4"},
		{Request{Operation: OpKill}, ""},
		{Request{Operation: OpShutdown}, ""},
	}
	for _, c := range cases {
		if got := auditArgs(c.req); got != c.want {
			t.Errorf("auditArgs(%v) = %q, want %q", c.req.Operation, got, c.want)
		}
	}
}

func TestFormatAuditLineContainsClientAndLetter(t *testing.T) {
	line := formatAuditLine(Request{Client: 77, Operation: OpIndex, Title: "t"})
	if !strings.Contains(line, "[77] requested A") {
		t.Fatalf("formatAuditLine = %q, want it to contain client and op letter", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Fatal("expected a trailing newline")
	}
}

func TestAuditWriterDrainsRequestsToFile(t *testing.T) {
	dir := t.TempDir()
	requests := make(chan Request)
	w := newAuditWriter(dir, requests)
	go w.run()

	requests <- Request{Client: 1, Operation: OpIndex, Title: "a", Path: "a.txt"}
	requests <- Request{Client: 2, Operation: OpRemove, Title: "0"}
	close(requests)
	w.wait()

	data, err := os.ReadFile(filepath.Join(dir, RequestsLogName))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2: %q", len(lines), data)
	}
	if !strings.Contains(lines[0], "[1] requested A") {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "[2] requested D") {
		t.Fatalf("line 1 = %q", lines[1])
	}
}
