// Package scrape turns rendered pages into structured records. Selectors are
// coupled to the target sites' markup and live in per-source files so they
// can be revised without touching the pipeline logic.
package scrape

import (
	"fmt"
	"log"
	"strings"

	"marketbrief/browser"
	"marketbrief/helpers"
)

// FieldSelector locates one named field inside a row
type FieldSelector struct {
	Selector  string
	Attribute string // when set, read this attribute instead of the visible text
	Sentinel  string // substituted when extraction fails; defaults to "N/A"
}

// RawRecord is one extracted row, field name to raw string value
type RawRecord map[string]string

// KeyFilter gates rows on their primary identifier before any other field is
// touched, so irrelevant rows cost a single lookup
type KeyFilter struct {
	Name  string
	Field FieldSelector
	Clean func(string) string // raw cell text to identifier
	Allow map[string]struct{} // nil keeps every row
}

// Extractor pulls a fixed set of named fields out of each rendered row
type Extractor struct {
	Fields map[string]FieldSelector
	Key    *KeyFilter
}

// Extract processes a snapshot of row handles. Fields fail independently: a
// missing element or an extraction error on one field substitutes that
// field's sentinel and logs, without dropping the row or the batch.
func (e *Extractor) Extract(rows []browser.Element) []RawRecord {
	records := make([]RawRecord, 0, len(rows))

	for i, row := range rows {
		record := RawRecord{}

		if e.Key != nil {
			raw, err := extractField(row, e.Key.Field)
			if err != nil {
				log.Printf("⚠️  Row %d: cannot read %s: %v", i, e.Key.Name, err)
				continue
			}
			key := raw
			if e.Key.Clean != nil {
				key = e.Key.Clean(raw)
			}
			if e.Key.Allow != nil {
				if _, ok := e.Key.Allow[key]; !ok {
					continue
				}
			}
			record[e.Key.Name] = key
		}

		for name, fs := range e.Fields {
			value, err := extractField(row, fs)
			if err != nil {
				sentinel := fs.Sentinel
				if sentinel == "" {
					sentinel = "N/A"
				}
				log.Printf("⚠️  Row %d: field %s: %v, using %q", i, name, err, sentinel)
				value = sentinel
			}
			record[name] = value
		}

		records = append(records, record)
	}

	return records
}

func extractField(row browser.Element, fs FieldSelector) (string, error) {
	el, err := row.Find(fs.Selector)
	if err != nil {
		return "", err
	}
	if el == nil {
		return "", fmt.Errorf("no element for %q", fs.Selector)
	}

	if fs.Attribute != "" {
		value, err := el.Attribute(fs.Attribute)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(value), nil
	}

	text, err := el.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// CleanTicker extracts a ticker from a calendar name cell: first line of the
// text, minus the trailing exchange-marker character the site appends.
func CleanTicker(s string) string {
	line := helpers.FirstLine(strings.TrimSpace(s))
	if line == "" {
		return ""
	}
	return line[:len(line)-1]
}
