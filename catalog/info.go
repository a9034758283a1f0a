package catalog

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// ErrMalformedList is returned for table lists which cannot be parsed or
// contain inconsistent table entries.
var ErrMalformedList = errors.New("catalog: malformed table list")

// Info describes a braille table.
type Info struct {
	Locale   language.Tag // locale the table is typically used for
	EightDot bool         // computer braille table
	Grade    int          // contraction grade of a literary table, -1 for 8 dot tables
	ID       string       // stable identifier, used to request the table
	Variant  string       // tells similar tables apart, may be empty
	FileName string       // table source, passed to the loader
}

// Dots returns the number of dots per cell, 6 or 8.
func (info Info) Dots() int {
	if info.EightDot {
		return 8
	}
	return 6
}

func (info Info) String() string {
	s := fmt.Sprintf("%s[%s, %d dots", info.ID, info.Locale, info.Dots())
	if !info.EightDot {
		s += fmt.Sprintf(", grade %d", info.Grade)
	}
	if info.Variant != "" {
		s += ", " + info.Variant
	}
	return s + "]"
}

// --- Table lists -----------------------------------------------------------

type tableList struct {
	XMLName xml.Name     `xml:"table-list"`
	Tables  []tableEntry `xml:"table"`
}

type tableEntry struct {
	ID       string `xml:"id,attr"`
	Locale   string `xml:"locale,attr"`
	Dots     string `xml:"dots,attr"`
	Grade    string `xml:"grade,attr"`
	Variant  string `xml:"variant,attr"`
	FileName string `xml:"fileName,attr"`
}

// ParseList reads a table list. Entries are returned in list order.
//
// Every entry needs an id, a locale and a file name, plus dots or a grade. A
// grade without dots implies 6 dots, 6 dots without a grade imply grade 1.
// 8 dot tables must not have a grade.
func ParseList(r io.Reader) ([]Info, error) {
	var list tableList
	if err := xml.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrMalformedList)
	}
	infos := make([]Info, 0, len(list.Tables))
	for i, entry := range list.Tables {
		info, err := entry.info()
		if err != nil {
			return nil, fmt.Errorf("table #%d %q: %v: %w", i+1, entry.ID, err, ErrMalformedList)
		}
		tracer().Debugf("table %s", info)
		infos = append(infos, info)
	}
	return infos, nil
}

func (entry tableEntry) info() (Info, error) {
	info := Info{ID: entry.ID, Variant: entry.Variant, FileName: entry.FileName}
	if info.ID == "" {
		return info, errors.New("missing id")
	}
	if info.FileName == "" {
		return info, errors.New("missing file name")
	}
	var err error
	if info.Locale, err = parseLocale(entry.Locale); err != nil {
		return info, err
	}
	dots, grade := -1, -1
	if entry.Dots != "" {
		if dots, err = strconv.Atoi(entry.Dots); err != nil {
			return info, fmt.Errorf("dots: %v", err)
		}
	}
	if entry.Grade != "" {
		if grade, err = strconv.Atoi(entry.Grade); err != nil || grade < 0 {
			return info, fmt.Errorf("invalid grade %q", entry.Grade)
		}
	}
	if dots < 0 && grade < 0 {
		return info, errors.New("neither dots nor grade given")
	}
	if dots < 0 {
		dots = 6
	}
	switch dots {
	case 6:
		if grade < 0 {
			grade = 1
		}
	case 8:
		if grade >= 0 {
			return info, errors.New("grade given for 8 dot braille")
		}
		info.EightDot = true
	default:
		return info, fmt.Errorf("dots must be 6 or 8, is %d", dots)
	}
	info.Grade = grade
	return info, nil
}

// parseLocale accepts locales in POSIX notation (en_US) as well as language
// tags (en-US). A third component is kept if it is a valid tag variant.
func parseLocale(s string) (language.Tag, error) {
	if s == "" {
		return language.Und, errors.New("missing locale")
	}
	pieces := strings.SplitN(strings.ReplaceAll(s, "_", "-"), "-", 3)
	tag, err := language.Parse(strings.Join(pieces, "-"))
	if err != nil && len(pieces) == 3 {
		tag, err = language.Parse(strings.Join(pieces[:2], "-"))
	}
	if err != nil {
		return language.Und, fmt.Errorf("locale %q: %v", s, err)
	}
	return tag, nil
}
