// Package spa classifies request targets as client-side routes or static
// assets. It only depends on the standard library.
package spa

import (
	"net/url"
	"strings"
)

// DefaultIndex is the application shell served for client-side routes.
const DefaultIndex = "/index.html"

// DefaultPrefixes are the client-side routes of the job tracker front end.
var DefaultPrefixes = []string{"/dashboard", "/saved", "/digest", "/settings", "/proof", "/jt/"}

// Table maps route prefixes to the index document. The root path "/" is
// always a route and matches exactly; every other entry matches by prefix.
// A Table is immutable and safe for concurrent use.
type Table struct {
	index    string
	prefixes []string
}

func NewTable(index string, prefixes ...string) *Table {
	if index == "" {
		index = DefaultIndex
	}
	t := &Table{index: index}
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		t.prefixes = append(t.prefixes, p)
	}
	return t
}

func (t *Table) Index() string { return t.index }

// Prefixes returns a copy of the configured route prefixes in match order.
func (t *Table) Prefixes() []string {
	return append([]string(nil), t.prefixes...)
}

// Classify returns the path to serve for target, a raw request target with
// an optional query string. route reports whether target named a
// client-side route and was rewritten to the index document.
//
// Paths with invalid percent-encoding are classified undecoded.
func (t *Table) Classify(target string) (effective string, route bool) {
	p := decode(target)
	if t.isRoute(p) {
		return t.index, true
	}
	return p, false
}

// Resolve is Classify without the route flag.
func (t *Table) Resolve(target string) string {
	p, _ := t.Classify(target)
	return p
}

func (t *Table) isRoute(p string) bool {
	if p == "/" {
		return true
	}
	for _, prefix := range t.prefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func decode(target string) string {
	p, _, _ := strings.Cut(target, "?")
	p, _, _ = strings.Cut(p, "#")
	if dec, err := url.PathUnescape(p); err == nil {
		return dec
	}
	return p
}
