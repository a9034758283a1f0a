package catalog

import (
	"fmt"
	"sync"
	"unicode"

	jj "github.com/cloudfoundry/jibber_jabber"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/braille"
	"github.com/npillmayer/braille/table"
	"golang.org/x/text/language"
)

// Loader loads the table described by an Info, usually from Info.FileName.
type Loader interface {
	Load(info Info) (*table.Table, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(info Info) (*table.Table, error)

// Load calls f(info).
func (f LoaderFunc) Load(info Info) (*table.Table, error) {
	return f(info)
}

// Catalog is a set of braille tables, indexed by id. Catalogs are safe for
// concurrent use.
type Catalog struct {
	mx     sync.Mutex
	index  *treemap.Map // id → *entry
	loader Loader
	match  [2]matcher // literary and computer braille
}

type entry struct {
	info Info
	once sync.Once
	tbl  *table.Table
	err  error
}

type matcher struct {
	m     language.Matcher
	infos []Info
}

// New creates a catalog for a list of tables. Ids must be unique. For tables
// of equal locale, the one listed first wins in language matching.
func New(infos []Info, loader Loader) (*Catalog, error) {
	c := &Catalog{
		index:  treemap.NewWithStringComparator(),
		loader: loader,
	}
	var tags [2][]language.Tag
	for _, info := range infos {
		if _, found := c.index.Get(info.ID); found {
			return nil, fmt.Errorf("duplicate table id %q: %w", info.ID, ErrMalformedList)
		}
		c.index.Put(info.ID, &entry{info: info})
		k := kind(info.EightDot)
		tags[k] = append(tags[k], info.Locale)
		c.match[k].infos = append(c.match[k].infos, info)
	}
	for k := range c.match {
		if len(tags[k]) > 0 {
			c.match[k].m = language.NewMatcher(tags[k])
		}
	}
	tracer().Infof("catalog with %d tables", c.index.Size())
	return c, nil
}

func kind(eightDot bool) int {
	if eightDot {
		return 1
	}
	return 0
}

// Tables returns the metadata of all tables, ordered by id.
func (c *Catalog) Tables() []Info {
	infos := make([]Info, 0, c.index.Size())
	it := c.index.Iterator()
	for it.Next() {
		infos = append(infos, it.Value().(*entry).info)
	}
	return infos
}

func (c *Catalog) entry(id string) (*entry, error) {
	c.mx.Lock()
	defer c.mx.Unlock()
	e, found := c.index.Get(id)
	if !found {
		return nil, fmt.Errorf("table %q: %w", id, braille.ErrNoSuchTable)
	}
	return e.(*entry), nil
}

// Info returns the metadata of table id.
func (c *Catalog) Info(id string) (Info, error) {
	e, err := c.entry(id)
	if err != nil {
		return Info{}, err
	}
	return e.info, nil
}

// Table returns table id, loading it on first use. A table which failed to
// load keeps failing with the same error.
func (c *Catalog) Table(id string) (*table.Table, error) {
	e, err := c.entry(id)
	if err != nil {
		return nil, err
	}
	e.once.Do(func() {
		if c.loader == nil {
			e.err = fmt.Errorf("table %q: no loader: %w", id, braille.ErrNoSuchTable)
			return
		}
		tracer().Infof("loading table %s from %q", id, e.info.FileName)
		if e.tbl, e.err = c.loader.Load(e.info); e.err != nil {
			tracer().Errorf("table %s: %v", id, e.err)
			e.err = fmt.Errorf("table %q: %v: %w", id, e.err, braille.ErrNoSuchTable)
		}
	})
	return e.tbl, e.err
}

// Best returns the table best matching a language, either a literary table or
// a computer braille table.
func (c *Catalog) Best(lang language.Tag, eightDot bool) (Info, language.Confidence, error) {
	m := c.match[kind(eightDot)]
	if m.m == nil {
		return Info{}, language.No, fmt.Errorf("no tables for %d dots: %w", Info{EightDot: eightDot}.Dots(),
			braille.ErrNoSuchTable)
	}
	_, i, confidence := m.m.Match(lang)
	if confidence == language.No {
		return Info{}, confidence, fmt.Errorf("no table for %s: %w", lang, braille.ErrNoSuchTable)
	}
	tracer().Debugf("best table for %s is %s (%s)", lang, m.infos[i].ID, confidence)
	return m.infos[i], confidence, nil
}

// Default returns the table best matching the language of the user
// environment.
func (c *Catalog) Default(eightDot bool) (Info, error) {
	info, _, err := c.Best(DefaultLanguage(), eightDot)
	return info, err
}

// DefaultLanguage detects the language of the user environment. If detection
// fails, it returns American English.
func DefaultLanguage() language.Tag {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		tracer().Errorf("%v", err)
		userLocale = "en-US"
		tracer().Infof("catalog sets default user locale %v", userLocale)
	} else {
		tracer().Infof("catalog detected user locale %v", userLocale)
	}
	return language.Make(userLocale)
}

// Check loads table id and checks that it defines every character of sample.
// It returns the characters which are missing, if any.
func (c *Catalog) Check(id string, sample string) ([]rune, error) {
	tbl, err := c.Table(id)
	if err != nil {
		return nil, err
	}
	coverage := tbl.Coverage()
	var missing []rune
	for _, r := range sample {
		if !unicode.Is(coverage, r) {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return missing, fmt.Errorf("table %q lacks %d of the sample characters", id, len(missing))
	}
	return nil, nil
}
