package brailletext

import (
	"errors"
	"io/ioutil"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/npillmayer/braille"
	"github.com/npillmayer/braille/internal/testtables"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/transform"
)

func TestEncoder(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	enc := NewEncoder(testtables.English(), 0)
	s, n, err := transform.String(enc, "The chest\nand")
	if err != nil {
		t.Fatal(err)
	}
	if s != "⠠⠮⠀⠡⠑⠌\n⠯" {
		t.Errorf("unexpected braille %q", s)
	}
	if n != len("The chest\nand") {
		t.Errorf("expected all of the input to be consumed, have %d", n)
	}
}

func TestDecoder(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	dec := NewDecoder(testtables.English(), 0)
	s, _, err := transform.String(dec, "⠠⠮⠀⠡⠑⠌\n⠯")
	if err != nil {
		t.Fatal(err)
	}
	if s != "The chest\nand" {
		t.Errorf("unexpected text %q", s)
	}
	if _, _, err = transform.String(dec, "abc"); !errors.Is(err, braille.ErrInvalidArgument) {
		t.Errorf("expected text input to be rejected, error is %v", err)
	}
}

func TestStreaming(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	text := "The chest and the bed"
	cells := "⠠⠮⠀⠡⠑⠌⠀⠯⠀⠮⠀⠃⠫"
	r := transform.NewReader(iotest.OneByteReader(strings.NewReader(text)), NewEncoder(testtables.English(), 0))
	b, err := ioutil.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != cells {
		t.Errorf("expected streamed braille %q, have %q", cells, string(b))
	}
	r = transform.NewReader(iotest.OneByteReader(strings.NewReader(cells)), NewDecoder(testtables.English(), 0))
	if b, err = ioutil.ReadAll(r); err != nil {
		t.Fatal(err)
	}
	if string(b) != text {
		t.Errorf("expected streamed text %q, have %q", text, string(b))
	}
}

func TestChunks(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	c := NewEncoder(testtables.English(), 0).chunks
	tests := []struct {
		src     string
		atEOF   bool
		n       int
		partial bool
		ok      bool
	}{
		{"the and", true, 7, false, true},
		{"the and", false, 4, false, true},
		{"the", false, 0, false, false},
		{"the\nand", false, 3, false, true},
		{strings.Repeat("a", maxChunk+10), false, maxChunk, true, true},
		{strings.Repeat("ab ", maxChunk), false, maxChunk - 2, false, true},
		{"a\xe2\xa0", false, 0, false, false},
		{"can't stop", false, 6, false, true},
		{"lime-tree  and", false, 11, false, true},
	}
	for i, test := range tests {
		n, partial, ok := c.cut([]byte(test.src), test.atEOF)
		if n != test.n || partial != test.partial || ok != test.ok {
			t.Errorf("test %d: expected cut (%d, %v, %v), have (%d, %v, %v)", i,
				test.n, test.partial, test.ok, n, partial, ok)
		}
	}
}

func TestWords(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	lengths := words([]byte("The chest, and"))
	expected := []int{3, 1, 5, 1, 1, 3}
	if len(lengths) != len(expected) {
		t.Fatalf("expected %d words, have %v", len(expected), lengths)
	}
	for i := range expected {
		if lengths[i] != expected[i] {
			t.Errorf("word #%d: expected length %d, have %d", i, expected[i], lengths[i])
		}
	}
	if l := runes([]byte("⠠⠮⠀")); len(l) != 3 || l[0] != 3 {
		t.Errorf("expected 3 cells of 3 bytes each, have %v", l)
	}
}

func TestShortDestination(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	enc := NewEncoder(testtables.English(), 0)
	dst := make([]byte, 4)
	nDst, nSrc, err := enc.Transform(dst, []byte("the and"), true)
	if err != transform.ErrShortDst || nDst != 0 || nSrc != 0 {
		t.Errorf("expected short destination without progress, have %d/%d, %v", nDst, nSrc, err)
	}
}
