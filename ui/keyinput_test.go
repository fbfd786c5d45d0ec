package ui

import "testing"

func TestSquareInputSequence(t *testing.T) {
	var si SquareInput
	if _, done := si.Feed('e'); done {
		t.Fatal("a file letter alone should not complete a square")
	}
	if p, ok := si.Pending(); !ok || p != 'e' {
		t.Fatalf("expected pending file e, got %q (ok=%v)", p, ok)
	}
	sq, done := si.Feed('2')
	if !done {
		t.Fatal("e then 2 should complete a square")
	}
	if sq.String() != "e2" {
		t.Fatalf("expected e2, got %s", sq)
	}
	if _, ok := si.Pending(); ok {
		t.Fatal("state should reset after completion")
	}
}

func TestSquareInputCorners(t *testing.T) {
	cases := []struct {
		first, second rune
		want          string
	}{
		{'a', '1', "a1"},
		{'h', '8', "h8"},
		{'a', '8', "a8"},
		{'h', '1', "h1"},
	}
	for _, c := range cases {
		var si SquareInput
		si.Feed(c.first)
		sq, done := si.Feed(c.second)
		if !done || sq.String() != c.want {
			t.Errorf("%c%c: got %s (done=%v), want %s", c.first, c.second, sq, done, c.want)
		}
	}
}

func TestSquareInputInvalidPartialResets(t *testing.T) {
	var si SquareInput
	si.Feed('e')
	if _, done := si.Feed('x'); done {
		t.Fatal("invalid rank should not complete a square")
	}
	if _, ok := si.Pending(); ok {
		t.Fatal("invalid rank should reset, not keep the pending file")
	}
	// The next valid pair still works from scratch.
	si.Feed('d')
	sq, done := si.Feed('4')
	if !done || sq.String() != "d4" {
		t.Fatalf("expected d4 after reset, got %s (done=%v)", sq, done)
	}
}

func TestSquareInputIgnoresStrayKeys(t *testing.T) {
	var si SquareInput
	for _, r := range "zq9 !" {
		if _, done := si.Feed(r); done {
			t.Fatalf("stray key %q should not complete a square", r)
		}
		if _, ok := si.Pending(); ok {
			t.Fatalf("stray key %q should not start a square", r)
		}
	}
}

func TestSquareInputFileLetterWhileAwaitingRank(t *testing.T) {
	// A second file letter is not a rank digit: the pending file is
	// dropped rather than replaced.
	var si SquareInput
	si.Feed('e')
	if _, done := si.Feed('d'); done {
		t.Fatal("file letter is not a valid rank")
	}
	if _, ok := si.Pending(); ok {
		t.Fatal("pending file should be dropped")
	}
}

func TestSquareInputReset(t *testing.T) {
	var si SquareInput
	si.Feed('e')
	si.Reset()
	if _, ok := si.Pending(); ok {
		t.Fatal("Reset should drop the pending file")
	}
}
