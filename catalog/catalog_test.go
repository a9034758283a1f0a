package catalog

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/braille"
	"github.com/npillmayer/braille/internal/testtables"
	"github.com/npillmayer/braille/table"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

const tableListXML = `<?xml version="1.0" encoding="utf-8"?>
<table-list>
  <table id="en-g2" locale="en_US" grade="2" fileName="en-fixture"/>
  <table id="en-g1" locale="en_US" dots="6" variant="uncontracted" fileName="uncontracted"/>
  <table id="de-g1" locale="de_DE" dots="6" fileName="uncontracted"/>
  <table id="en-comp8" locale="en" dots="8" fileName="uncontracted"/>
  <table id="broken" locale="fr" grade="1" fileName="missing"/>
</table-list>
`

var fixtures = LoaderFunc(func(info Info) (*table.Table, error) {
	switch info.FileName {
	case "en-fixture":
		return testtables.English(), nil
	case "uncontracted":
		return testtables.Uncontracted(), nil
	}
	return nil, fmt.Errorf("no table source %q", info.FileName)
})

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	infos, err := ParseList(strings.NewReader(tableListXML))
	if err != nil {
		t.Fatal(err)
	}
	c, err := New(infos, fixtures)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestParseList(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	infos, err := ParseList(strings.NewReader(tableListXML))
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 5 {
		t.Fatalf("expected 5 tables, have %d", len(infos))
	}
	tests := []struct {
		id       string
		locale   string
		dots     int
		grade    int
		variant  string
		fileName string
	}{
		{"en-g2", "en-US", 6, 2, "", "en-fixture"},
		{"en-g1", "en-US", 6, 1, "uncontracted", "uncontracted"},
		{"de-g1", "de-DE", 6, 1, "", "uncontracted"},
		{"en-comp8", "en", 8, -1, "", "uncontracted"},
		{"broken", "fr", 6, 1, "", "missing"},
	}
	for i, test := range tests {
		info := infos[i]
		if info.ID != test.id || info.Locale.String() != test.locale || info.Dots() != test.dots ||
			info.Grade != test.grade || info.Variant != test.variant || info.FileName != test.fileName {
			t.Errorf("table #%d: expected %s, have %s", i+1, test.id, info)
		}
	}
}

func TestParseMalformedList(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	lists := []string{
		`<table-list><table locale="en" grade="1" fileName="x"/></table-list>`,
		`<table-list><table id="a" grade="1" fileName="x"/></table-list>`,
		`<table-list><table id="a" locale="en" grade="1"/></table-list>`,
		`<table-list><table id="a" locale="en" fileName="x"/></table-list>`,
		`<table-list><table id="a" locale="en" dots="8" grade="0" fileName="x"/></table-list>`,
		`<table-list><table id="a" locale="en" dots="7" fileName="x"/></table-list>`,
		`<table-list><table id="a" locale="en" grade="two" fileName="x"/></table-list>`,
		`<table-list><table id="a" locale="!!" grade="1" fileName="x"/></table-list>`,
		`<table-list><table id="a"`,
	}
	for i, list := range lists {
		if _, err := ParseList(strings.NewReader(list)); !errors.Is(err, ErrMalformedList) {
			t.Errorf("list %d: expected list to be rejected, error is %v", i, err)
		}
	}
	infos := []Info{{ID: "a", Locale: language.English}, {ID: "a", Locale: language.German}}
	if _, err := New(infos, fixtures); !errors.Is(err, ErrMalformedList) {
		t.Errorf("expected duplicate ids to be rejected, error is %v", err)
	}
}

func TestTables(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	c := newCatalog(t)
	var ids []string
	for _, info := range c.Tables() {
		ids = append(ids, info.ID)
	}
	if s := strings.Join(ids, " "); s != "broken de-g1 en-comp8 en-g1 en-g2" {
		t.Errorf("expected tables ordered by id, have %s", s)
	}
	info, err := c.Info("en-comp8")
	if err != nil || !info.EightDot {
		t.Errorf("expected en-comp8 to be an 8 dot table, have %s, %v", info, err)
	}
	if _, err := c.Info("xx"); !errors.Is(err, braille.ErrNoSuchTable) {
		t.Errorf("expected unknown id to be reported, error is %v", err)
	}
}

func TestLoadTable(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	c := newCatalog(t)
	tbl, err := c.Table("en-g2")
	if err != nil {
		t.Fatal(err)
	}
	if tbl != testtables.English() {
		t.Errorf("expected fixture table for en-g2, have %s", tbl.Name())
	}
	again, _ := c.Table("en-g2")
	if again != tbl {
		t.Errorf("expected table to be loaded once")
	}
	if _, err := c.Table("xx"); !errors.Is(err, braille.ErrNoSuchTable) {
		t.Errorf("expected unknown id to be reported, error is %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := c.Table("broken"); !errors.Is(err, braille.ErrNoSuchTable) {
			t.Errorf("expected table without source to fail, error is %v", err)
		}
	}
	noLoader, _ := New([]Info{{ID: "a", Locale: language.English}}, nil)
	if _, err := noLoader.Table("a"); !errors.Is(err, braille.ErrNoSuchTable) {
		t.Errorf("expected catalog without loader to fail, error is %v", err)
	}
}

func TestBestTable(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	c := newCatalog(t)
	tests := []struct {
		lang     string
		eightDot bool
		id       string
	}{
		{"en-US", false, "en-g2"},
		{"en-GB", false, "en-g2"},
		{"de-AT", false, "de-g1"},
		{"fr-CA", false, "broken"},
		{"en-US", true, "en-comp8"},
	}
	for _, test := range tests {
		info, _, err := c.Best(language.MustParse(test.lang), test.eightDot)
		if err != nil {
			t.Errorf("%s: %v", test.lang, err)
			continue
		}
		if info.ID != test.id {
			t.Errorf("expected %s to match table %s, have %s", test.lang, test.id, info.ID)
		}
	}
	if _, _, err := c.Best(language.Japanese, false); !errors.Is(err, braille.ErrNoSuchTable) {
		t.Errorf("expected no table for Japanese, error is %v", err)
	}
	empty, _ := New(nil, fixtures)
	if _, _, err := empty.Best(language.English, true); !errors.Is(err, braille.ErrNoSuchTable) {
		t.Errorf("expected empty catalog to have no tables, error is %v", err)
	}
}

func TestDefaultTable(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		t.Setenv(env, "de_DE.UTF-8")
	}
	lang := DefaultLanguage()
	if base, _ := lang.Base(); base.String() != "de" {
		t.Errorf("expected German user environment, have %s", lang)
	}
	info, err := newCatalog(t).Default(false)
	if err != nil {
		t.Fatal(err)
	}
	if info.ID != "de-g1" {
		t.Errorf("expected default table de-g1, have %s", info.ID)
	}
}

func TestCheck(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	c := newCatalog(t)
	if missing, err := c.Check("en-g2", "The chest, 1.5!"); err != nil {
		t.Errorf("expected sample to be covered, missing %q", string(missing))
	}
	missing, err := c.Check("en-g1", "naïve café")
	if err == nil || string(missing) != "ïé" {
		t.Errorf("expected accented letters to be missing, have %q", string(missing))
	}
	if _, err := c.Check("broken", "a"); !errors.Is(err, braille.ErrNoSuchTable) {
		t.Errorf("expected broken table to fail the check, error is %v", err)
	}
}
