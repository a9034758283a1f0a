package braille

// Mode is a set of flags modifying a translation.
type Mode uint32

// Translation modes.
//
// DotsIO: braille is exchanged as cells (runes with CellFlag set) instead
// of display characters.
//
// Pass1Only: run the primary pass only. This is a deprecated compatibility
// mode.
//
// PartialTrans: the input may end in the middle of a word, so rules must
// not rely on a word being complete. Used by incremental callers.
//
// NoUndefinedDots: cells without a translation are dropped instead of being
// escaped as `\dots/`.
//
// NoContractions: forward translation uses uncontracted braille.
//
// CompbrlAtCursor: forward translation shows the word containing the cursor
// in computer braille.
//
// UCBrl: forward translation outputs Unicode braille patterns.
const (
	NoContractions Mode = 1 << iota
	CompbrlAtCursor
	DotsIO
	UCBrl
	NoUndefinedDots
	PartialTrans
	Pass1Only
)

// Is returns true if all flags of f are set in m.
func (m Mode) Is(f Mode) bool {
	return m&f == f
}
