package translator

import (
	"errors"
	"fmt"

	"github.com/npillmayer/braille"
	"github.com/npillmayer/braille/catalog"
	"github.com/npillmayer/braille/table"
	"github.com/npillmayer/braille/translate"
	"golang.org/x/text/language"
)

// Translator translates with a fixed rule table. Translators are safe for
// concurrent use.
type Translator struct {
	tbl  *table.Table
	mode braille.Mode
}

// New creates a translator for a rule table. mode holds flags applied to
// every translation, e.g. braille.NoContractions.
func New(tbl *table.Table, mode braille.Mode) *Translator {
	return &Translator{tbl: tbl, mode: mode}
}

// FromCatalog creates a translator for table id of a catalog.
func FromCatalog(c *catalog.Catalog, id string, mode braille.Mode) (*Translator, error) {
	tbl, err := c.Table(id)
	if err != nil {
		return nil, err
	}
	return New(tbl, mode), nil
}

// ForLanguage creates a translator for the catalog table best matching lang.
func ForLanguage(c *catalog.Catalog, lang language.Tag, eightDot bool, mode braille.Mode) (*Translator, error) {
	info, _, err := c.Best(lang, eightDot)
	if err != nil {
		return nil, err
	}
	return FromCatalog(c, info.ID, mode)
}

// Table returns the rule table of tr.
func (tr *Translator) Table() *table.Table {
	return tr.tbl
}

// Result is the outcome of translating text to braille.
type Result struct {
	Cells         []rune // braille cells
	TextToBraille []int  // cell position for every character of the text
	BrailleToText []int  // character position for every cell
	Cursor        int    // cursor in cell positions, or -1
}

// Translate translates text to braille cells. If cursor is a position in
// text, it is moved to the corresponding cell. A cursor behind the end of
// text lands behind the last cell, a negative cursor is ignored. With
// compbrlAtCursor set, the word containing the cursor is spelled in computer
// braille.
func (tr *Translator) Translate(text string, cursor int, compbrlAtCursor bool) (Result, error) {
	in := []rune(text)
	res := Result{Cursor: translate.NoCursor}
	opt := translate.Options{
		Mode:            tr.mode | braille.DotsIO,
		Cursor:          translate.NoCursor,
		OutputPositions: make([]int, len(in)),
	}
	if compbrlAtCursor {
		opt.Mode |= braille.CompbrlAtCursor
	}
	if cursor >= 0 && cursor < len(in) {
		opt.Cursor = cursor
	}
	out, inPos, tres, err := redrive(len(in), true, func(out []rune, inPos []int) (translate.Result, error) {
		opt.InputPositions = inPos
		return translate.Translate(tr.tbl, in, out, opt)
	})
	if err != nil {
		return res, err
	}
	res.Cells, res.BrailleToText = out, inPos
	res.TextToBraille = opt.OutputPositions
	if cursor >= len(in) {
		res.Cursor = len(out)
	} else if cursor >= 0 {
		res.Cursor = tres.Cursor
	}
	return res, nil
}

// BackTranslate translates braille cells to text. Cells may be given with or
// without braille.CellFlag.
func (tr *Translator) BackTranslate(cells []rune) (string, error) {
	in := make([]rune, len(cells))
	for i, d := range cells {
		in[i] = d | braille.CellFlag
	}
	opt := translate.Options{Mode: tr.mode | braille.DotsIO, Cursor: translate.NoCursor}
	out, _, _, err := redrive(len(in), false, func(out []rune, _ []int) (translate.Result, error) {
		return translate.BackTranslate(tr.tbl, in, out, opt)
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// redrive runs a translation of n input symbols with output buffers of
// growing size, until all of the input is consumed and the output buffer
// still has room left. A full output buffer may have cut off output, so
// it is retried as well.
func redrive(n int, positions bool,
	run func(out []rune, inPos []int) (translate.Result, error)) ([]rune, []int, translate.Result, error) {
	//
	if n == 0 {
		return []rune{}, []int{}, translate.Result{Cursor: translate.NoCursor}, nil
	}
	var res translate.Result
	var err error
	for size, limit := maxInt(8, 2*n), 16*n; size <= limit; size *= 2 {
		out := make([]rune, size)
		var inPos []int
		if positions {
			inPos = make([]int, size)
		}
		res, err = run(out, inPos)
		if err != nil && !errors.Is(err, braille.ErrOutputTooSmall) {
			return nil, nil, res, err
		}
		if err == nil && res.Consumed == n && res.Produced < size {
			if positions {
				inPos = inPos[:res.Produced]
			}
			return out[:res.Produced], inPos, res, nil
		}
		tracer().Debugf("output of %d symbols too small for %d input symbols", size, n)
	}
	tracer().Errorf("giving up on %d input symbols, consumed %d", n, res.Consumed)
	return nil, nil, res, fmt.Errorf("output exceeds %d symbols: %w", 16*n, braille.ErrOutputTooSmall)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
