package docindex

import "testing"

func TestDocumentEncodeDecodeRoundTrip(t *testing.T) {
	doc := Document{Title: "T1", Authors: "A1", Year: "2020", Path: "t1.txt"}
	buf := make([]byte, RecordSize)
	if err := doc.encode(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeDocument(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != doc {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, doc)
	}
}

func TestDocumentEncodeRejectsShortBuffer(t *testing.T) {
	doc := Document{Title: "T1"}
	if err := doc.encode(make([]byte, RecordSize-1)); err == nil {
		t.Fatal("expected error for short buffer")
	}
}

func TestDocumentEncodeRejectsOversizedYear(t *testing.T) {
	doc := Document{Year: "20000"}
	if err := doc.encode(make([]byte, RecordSize)); err == nil {
		t.Fatal("expected error for oversized year")
	}
}

func TestDocumentYearNotTreatedAsCString(t *testing.T) {
	// "2020" fills YearSize exactly; decoding must not treat the
	// fourth byte as a terminator the way the NUL-padded fields are.
	doc := Document{Title: "T", Authors: "A", Year: "2020", Path: "p"}
	buf := make([]byte, RecordSize)
	if err := doc.encode(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeDocument(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Year != "2020" {
		t.Fatalf("year = %q, want 2020", got.Year)
	}
}

func TestNotFoundDocumentTitle(t *testing.T) {
	if notFoundDocument().Title != "Document was not found" {
		t.Fatalf("unexpected not-found title: %q", notFoundDocument().Title)
	}
}

func TestDocumentCloneIsDetached(t *testing.T) {
	doc := Document{Title: "T"}
	clone := doc.Clone()
	clone.Title = "mutated"
	if doc.Title == clone.Title {
		t.Fatal("mutating a clone affected the original")
	}
}
