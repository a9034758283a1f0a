package translator

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/braille"
	"github.com/npillmayer/braille/catalog"
	"github.com/npillmayer/braille/internal/testtables"
	"github.com/npillmayer/braille/table"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTranslate(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tr := New(testtables.English(), 0)
	res, err := tr.Translate("The then", 4, false)
	if err != nil {
		t.Fatal(err)
	}
	if dots := braille.CellsString(res.Cells); dots != "6-2346-0-1456-15-1345" {
		t.Errorf("unexpected translation %s", dots)
	}
	if !equalInts(res.TextToBraille, []int{0, 0, 0, 2, 3, 3, 4, 5}) {
		t.Errorf("unexpected text to braille mapping %v", res.TextToBraille)
	}
	if !equalInts(res.BrailleToText, []int{0, 0, 3, 4, 6, 7}) {
		t.Errorf("unexpected braille to text mapping %v", res.BrailleToText)
	}
	if res.Cursor != 3 {
		t.Errorf("expected cursor at 3, is %d", res.Cursor)
	}
}

func TestTranslateCursor(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	tr := New(testtables.English(), 0)
	tests := []struct {
		cursor   int
		compbrl  bool
		dots     string
		expected int
	}{
		{-1, false, "2346-0-12346", -1},
		{7, false, "2346-0-12346", 3},
		{100, false, "2346-0-12346", 3},
		{0, false, "2346-0-12346", 0},
		{5, true, "2346-0-1-1345-145", 3},
		{-1, true, "2346-0-12346", -1},
	}
	for _, test := range tests {
		res, err := tr.Translate("the and", test.cursor, test.compbrl)
		if err != nil {
			t.Fatal(err)
		}
		if dots := braille.CellsString(res.Cells); dots != test.dots {
			t.Errorf("cursor %d: expected %s, is %s", test.cursor, test.dots, dots)
		}
		if res.Cursor != test.expected {
			t.Errorf("cursor %d: expected cursor to move to %d, is %d", test.cursor, test.expected, res.Cursor)
		}
	}
}

func TestRetry(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tr := New(testtables.English(), 0)
	res, err := tr.Translate("é é", -1, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Cells) != 13 || len(res.BrailleToText) != 13 {
		t.Fatalf("expected 13 cells for two escaped characters, have %d", len(res.Cells))
	}
	if !equalInts(res.TextToBraille, []int{0, 6, 7}) {
		t.Errorf("unexpected text to braille mapping %v", res.TextToBraille)
	}
	text, err := tr.BackTranslate(braille.Cells("7-7-7"))
	if err != nil {
		t.Fatal(err)
	}
	if text != `\7/\7/\7/` {
		t.Errorf("expected three escaped cells, have %q", text)
	}
}

func TestRetryGivesUp(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	b := table.NewBuilder("explosive")
	testtables.Alphabet(b)
	b.Add(table.Always, "ab", []rune(strings.Repeat(string(braille.Cells("1")), 40)))
	tbl, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(tbl, 0).Translate("ab", -1, false); !errors.Is(err, braille.ErrOutputTooSmall) {
		t.Errorf("expected translation to exceed the output limit, error is %v", err)
	}
}

func TestBackTranslate(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	tr := New(testtables.English(), 0)
	cells := braille.Cells("6-2346-0-12346-0-16-15-34")
	for i := range cells {
		cells[i] &^= braille.CellFlag
	}
	text, err := tr.BackTranslate(cells)
	if err != nil {
		t.Fatal(err)
	}
	if text != "The and chest" {
		t.Errorf("expected 'The and chest', have %q", text)
	}
	if text, err = tr.BackTranslate(nil); err != nil || text != "" {
		t.Errorf("expected empty text for no cells, have %q, %v", text, err)
	}
}

func TestNoContractions(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	res, err := New(testtables.English(), braille.NoContractions).Translate("the", -1, false)
	if err != nil {
		t.Fatal(err)
	}
	if dots := braille.CellsString(res.Cells); dots != "2345-125-15" {
		t.Errorf("expected uncontracted braille, is %s", dots)
	}
}

func TestForLanguage(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	infos := []catalog.Info{
		{ID: "en-g2", Locale: language.AmericanEnglish, Grade: 2, FileName: "en"},
		{ID: "de-g1", Locale: language.German, Grade: 1, FileName: "de"},
	}
	c, err := catalog.New(infos, catalog.LoaderFunc(func(info catalog.Info) (*table.Table, error) {
		if info.FileName == "en" {
			return testtables.English(), nil
		}
		return testtables.Uncontracted(), nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	tr, err := ForLanguage(c, language.BritishEnglish, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Table() != testtables.English() {
		t.Errorf("expected English table for British English, have %s", tr.Table().Name())
	}
	if _, err := FromCatalog(c, "fr-g1", 0); !errors.Is(err, braille.ErrNoSuchTable) {
		t.Errorf("expected unknown table to be reported, error is %v", err)
	}
	if _, err := ForLanguage(c, language.Japanese, false, 0); !errors.Is(err, braille.ErrNoSuchTable) {
		t.Errorf("expected no table for Japanese, error is %v", err)
	}
}
