package correct

import "testing"

func TestEditBufferZeroEdits(t *testing.T) {
	src := "line one\r\n\ttwo ünïcode\n"
	b := NewEditBuffer(src)
	if b.String() != src {
		t.Fatalf("zero edits changed content: %q", b.String())
	}
}

func TestEditBufferSweep(t *testing.T) {
	src := "teh cat and teh dgo"
	b := NewEditBuffer(src)
	for _, r := range []Replacement{{0, 3, "the"}, {12, 3, "the"}, {16, 3, "dog"}} {
		if err := b.Record(r.Offset, r.Length, r.Text); err != nil {
			t.Fatalf("record %v: %v", r, err)
		}
	}
	if got := b.String(); got != "the cat and the dog" {
		t.Fatalf("unexpected result: %q", got)
	}
	if b.Len() != 3 {
		t.Fatalf("unexpected edit count: %d", b.Len())
	}
}

func TestEditBufferLengthChanges(t *testing.T) {
	b := NewEditBuffer("a spulling b wrd c")
	if err := b.Record(2, 8, "spelling"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := b.Record(13, 3, "word"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if got := b.String(); got != "a spelling b word c" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestEditBufferRejectsDisorder(t *testing.T) {
	b := NewEditBuffer("abcdefghij")
	if err := b.Record(4, 3, "X"); err != nil {
		t.Fatalf("record: %v", err)
	}
	cases := []struct {
		off, n int
	}{
		{2, 1},  // before
		{4, 1},  // same start
		{6, 2},  // overlap
		{9, 5},  // past end
		{-1, 1}, // negative
	}
	for _, tc := range cases {
		if err := b.Record(tc.off, tc.n, "Y"); err == nil {
			t.Fatalf("expected rejection for %v", tc)
		}
	}
	b.Discard()
	if b.String() != "abcdefghij" {
		t.Fatalf("discard did not restore content")
	}
}
