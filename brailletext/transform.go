package brailletext

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/braille"
	"github.com/npillmayer/braille/table"
	"github.com/npillmayer/braille/translator"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"
	"golang.org/x/text/transform"
)

// maxChunk is the maximum number of runes translated at once. It keeps the
// output of a chunk well below the buffer sizes of transform.Reader and
// transform.Writer.
const maxChunk = 128

// Encoder is a transformer from text to Unicode braille.
type Encoder struct {
	transform.NopResetter
	chunks chunker
}

// NewEncoder creates an Encoder for a rule table. mode holds additional
// translation flags, e.g. braille.NoContractions.
func NewEncoder(tbl *table.Table, mode braille.Mode) *Encoder {
	whole := translator.New(tbl, mode)
	partial := translator.New(tbl, mode|braille.PartialTrans)
	return &Encoder{chunks: chunker{
		split: words,
		boundary: func(word []byte) bool {
			r, _ := utf8.DecodeRune(word)
			return unicode.IsSpace(r)
		},
		convert: func(in []rune, isPartial bool) ([]rune, error) {
			tr := whole
			if isPartial {
				tr = partial
			}
			res, err := tr.Translate(string(in), -1, false)
			if err != nil {
				return nil, err
			}
			out := res.Cells
			for i, d := range out {
				out[i] = braille.UnicodeFromCell(d)
			}
			return out, nil
		},
	}}
}

// Transform implements transform.Transformer.
func (e *Encoder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	return e.chunks.transform(dst, src, atEOF)
}

// Decoder is a transformer from Unicode braille to text.
type Decoder struct {
	transform.NopResetter
	chunks chunker
}

// NewDecoder creates a Decoder for a rule table. mode holds additional
// translation flags, e.g. braille.NoUndefinedDots.
func NewDecoder(tbl *table.Table, mode braille.Mode) *Decoder {
	whole := translator.New(tbl, mode)
	partial := translator.New(tbl, mode|braille.PartialTrans)
	return &Decoder{chunks: chunker{
		split: runes,
		boundary: func(cell []byte) bool {
			r, _ := utf8.DecodeRune(cell)
			return r == braille.UnicodeBrailleBase
		},
		convert: func(in []rune, isPartial bool) ([]rune, error) {
			cells := make([]rune, len(in))
			for i, r := range in {
				d, ok := braille.CellFromUnicode(r)
				if !ok {
					return nil, fmt.Errorf("%q is not a braille pattern: %w", r, braille.ErrInvalidArgument)
				}
				cells[i] = d
			}
			tr := whole
			if isPartial {
				tr = partial
			}
			text, err := tr.BackTranslate(cells)
			if err != nil {
				return nil, err
			}
			return []rune(text), nil
		},
	}}
}

// Transform implements transform.Transformer.
func (d *Decoder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	return d.chunks.transform(dst, src, atEOF)
}

// --- Chunking --------------------------------------------------------------

// chunker cuts input into lines and lines into chunks of segments, and
// converts chunk by chunk. A chunk ends after the last segment within
// maxChunk runes which is a boundary.
type chunker struct {
	split    func(window []byte) []int
	boundary func(segment []byte) bool
	convert  func(in []rune, partial bool) ([]rune, error)
}

func isLineBreak(b byte) bool {
	return b == '\n' || b == '\r'
}

// words splits text into UAX #29 words, returning the length in bytes of
// each word. Whitespace runs form words of their own.
func words(window []byte) []int {
	seg := segment.NewSegmenter(uax29.NewWordBreaker(1))
	seg.Init(bytes.NewReader(window))
	var lengths []int
	total := 0
	for seg.Next() {
		lengths = append(lengths, len(seg.Bytes()))
		total += len(seg.Bytes())
	}
	if err := seg.Err(); err != nil || total != len(window) {
		tracer().Debugf("cannot split %d bytes into words, splitting runes", len(window))
		return runes(window)
	}
	return lengths
}

// runes splits a byte slice into runes, returning the length in bytes of
// each rune.
func runes(window []byte) []int {
	lengths := make([]int, 0, len(window))
	for n := 0; n < len(window); {
		_, size := utf8.DecodeRune(window[n:])
		lengths = append(lengths, size)
		n += size
	}
	return lengths
}

func (c chunker) transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if isLineBreak(src[nSrc]) {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = src[nSrc]
			nDst++
			nSrc++
			continue
		}
		n, partial, ok := c.cut(src[nSrc:], atEOF)
		if !ok {
			return nDst, nSrc, transform.ErrShortSrc
		}
		out, err := c.convert([]rune(string(src[nSrc:nSrc+n])), partial)
		if err != nil {
			return nDst, nSrc, err
		}
		size := 0
		for _, r := range out {
			size += utf8.RuneLen(r)
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		for _, r := range out {
			nDst += utf8.EncodeRune(dst[nDst:], r)
		}
		tracer().Debugf("chunk of %d bytes converted to %d bytes", n, size)
		nSrc += n
	}
	return nDst, nSrc, nil
}

// cut finds the length in bytes of the next chunk of src. A chunk ends at a
// line break, after the last boundary segment within maxChunk runes, or at
// the end of input. If there is no boundary within maxChunk runes, the chunk
// is partial. If more input is needed to find the end of the chunk, cut
// returns ok=false.
func (c chunker) cut(src []byte, atEOF bool) (n int, partial bool, ok bool) {
	window, complete := src, atEOF
	if i := bytes.IndexAny(src, "\r\n"); i >= 0 {
		window, complete = src[:i], true
	}
	if !complete {
		window = window[:fullRunes(window)]
	}
	if len(window) == 0 {
		return 0, false, false
	}
	pos, count, lastBoundary := 0, 0, 0
	for _, l := range c.split(window) {
		seg := window[pos : pos+l]
		k := utf8.RuneCount(seg)
		if count+k > maxChunk {
			if lastBoundary > 0 {
				return lastBoundary, false, true
			}
			return pos + prefixLen(seg, maxChunk-count), true, true
		}
		count += k
		pos += l
		if c.boundary(seg) {
			lastBoundary = pos
		}
	}
	if complete {
		return pos, false, true
	}
	return lastBoundary, false, lastBoundary > 0
}

// fullRunes returns the length of b without a trailing incomplete rune.
func fullRunes(b []byte) int {
	i := len(b) - 1
	for i > 0 && len(b)-i < utf8.UTFMax && !utf8.RuneStart(b[i]) {
		i--
	}
	if i >= 0 && !utf8.FullRune(b[i:]) {
		return i
	}
	return len(b)
}

// prefixLen returns the length in bytes of the first n runes of b.
func prefixLen(b []byte, n int) int {
	l := 0
	for ; n > 0 && l < len(b); n-- {
		_, size := utf8.DecodeRune(b[l:])
		l += size
	}
	return l
}
