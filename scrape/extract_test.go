package scrape

import (
	"errors"
	"testing"

	"marketbrief/browser"
)

// fakeCell is a leaf element holding text and attributes
type fakeCell struct {
	text    string
	attrs   map[string]string
	textErr error
}

func (c *fakeCell) Text() (string, error) {
	if c.textErr != nil {
		return "", c.textErr
	}
	return c.text, nil
}

func (c *fakeCell) Attribute(name string) (string, error)         { return c.attrs[name], nil }
func (c *fakeCell) Find(selector string) (browser.Element, error) { return nil, nil }
func (c *fakeCell) Click() error                                  { return nil }

// fakeRow maps selectors to cells
type fakeRow struct {
	cells map[string]*fakeCell
}

func (r *fakeRow) Text() (string, error)                 { return "", nil }
func (r *fakeRow) Attribute(name string) (string, error) { return "", nil }
func (r *fakeRow) Click() error                          { return nil }
func (r *fakeRow) Find(selector string) (browser.Element, error) {
	if c, ok := r.cells[selector]; ok {
		return c, nil
	}
	return nil, nil
}

func row(cells map[string]*fakeCell) browser.Element { return &fakeRow{cells: cells} }

func TestExtractFieldFaultIsolation(t *testing.T) {
	rows := []browser.Element{
		row(map[string]*fakeCell{".a": {text: "one"}, ".b": {text: "x"}}),
		// Row 1: field .b blows up on extraction
		row(map[string]*fakeCell{".a": {text: "two"}, ".b": {textErr: errors.New("stale element")}}),
		row(map[string]*fakeCell{".a": {text: "three"}, ".b": {text: "z"}}),
	}

	e := &Extractor{Fields: map[string]FieldSelector{
		"a": {Selector: ".a"},
		"b": {Selector: ".b"},
	}}

	records := e.Extract(rows)
	if len(records) != 3 {
		t.Fatalf("one bad field must not drop rows: got %d records", len(records))
	}
	if records[1]["b"] != "N/A" {
		t.Errorf("expected sentinel for failed field, got %q", records[1]["b"])
	}
	if records[1]["a"] != "two" {
		t.Errorf("other fields of the row must survive, got %q", records[1]["a"])
	}
	if records[0]["b"] != "x" || records[2]["b"] != "z" {
		t.Errorf("neighboring rows must be untouched: %v", records)
	}
}

func TestExtractMissingElementUsesSentinel(t *testing.T) {
	rows := []browser.Element{
		row(map[string]*fakeCell{".a": {text: "one"}}), // no .time cell at all
	}

	e := &Extractor{Fields: map[string]FieldSelector{
		"a":    {Selector: ".a"},
		"time": {Selector: ".time", Sentinel: "Unknown"},
	}}

	records := e.Extract(rows)
	if records[0]["time"] != "Unknown" {
		t.Errorf("expected field-specific sentinel, got %q", records[0]["time"])
	}
}

func TestExtractAttributeOverText(t *testing.T) {
	rows := []browser.Element{
		row(map[string]*fakeCell{
			".time": {text: "in 2 days", attrs: map[string]string{"title": "Before Open"}},
		}),
	}

	e := &Extractor{Fields: map[string]FieldSelector{
		"time": {Selector: ".time", Attribute: "title"},
	}}

	records := e.Extract(rows)
	if records[0]["time"] != "Before Open" {
		t.Errorf("expected the title attribute, got %q", records[0]["time"])
	}
}

func TestExtractAllowListSkipsBeforeFieldWork(t *testing.T) {
	probed := 0
	countingCell := &fakeCell{text: "ignored"}

	rows := []browser.Element{
		row(map[string]*fakeCell{".name": {text: "TGTQ\nTarget Corp"}, ".eps": {text: "2.53"}}),
		&probeRow{name: "ZZZF\nNobody Inc", probe: func() { probed++ }, cell: countingCell},
		row(map[string]*fakeCell{".name": {text: "CRWDQ\nCrowdStrike"}, ".eps": {text: "0.86"}}),
	}

	e := &Extractor{
		Key: &KeyFilter{
			Name:  "ticker",
			Field: FieldSelector{Selector: ".name"},
			Clean: CleanTicker,
			Allow: map[string]struct{}{"TGT": {}, "CRWD": {}},
		},
		Fields: map[string]FieldSelector{"eps": {Selector: ".eps"}},
	}

	records := e.Extract(rows)
	if len(records) != 2 {
		t.Fatalf("expected 2 allow-listed records, got %d", len(records))
	}
	if records[0]["ticker"] != "TGT" || records[1]["ticker"] != "CRWD" {
		t.Errorf("unexpected tickers: %v", records)
	}
	if probed != 0 {
		t.Errorf("skipped row's field cells must never be probed, got %d lookups", probed)
	}
}

// probeRow counts non-key selector lookups
type probeRow struct {
	name  string
	probe func()
	cell  *fakeCell
}

func (r *probeRow) Text() (string, error)                 { return "", nil }
func (r *probeRow) Attribute(name string) (string, error) { return "", nil }
func (r *probeRow) Click() error                          { return nil }
func (r *probeRow) Find(selector string) (browser.Element, error) {
	if selector == ".name" {
		return &fakeCell{text: r.name}, nil
	}
	r.probe()
	return r.cell, nil
}

func TestExtractUnreadableKeySkipsRow(t *testing.T) {
	rows := []browser.Element{
		row(map[string]*fakeCell{".eps": {text: "2.53"}}), // no name cell
		row(map[string]*fakeCell{".name": {text: "TGTQ"}, ".eps": {text: "2.53"}}),
	}

	e := &Extractor{
		Key:    &KeyFilter{Name: "ticker", Field: FieldSelector{Selector: ".name"}, Clean: CleanTicker},
		Fields: map[string]FieldSelector{"eps": {Selector: ".eps"}},
	}

	records := e.Extract(rows)
	if len(records) != 1 {
		t.Fatalf("row without an identifier must be skipped, got %d records", len(records))
	}
}

func TestCleanTicker(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"TGTQ\nTarget Corporation", "TGT"},
		{"CRWDQ", "CRWD"},
		{"  MRVLQ  \nMarvell", "MRVL"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanTicker(tt.input); got != tt.expected {
			t.Errorf("CleanTicker(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
