// Package keywords extracts location, material, and supplier-name filters
// from a free-text question.
package keywords

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

const fuzzyThreshold = 80

// Priority lists: the first matching entry wins, ties are broken by list
// order rather than longest match or question order.
var locationKeywords = []struct {
	token     string
	canonical string
}{
	{"india", "India"},
	{"china", "China"},
	{"usa", "USA"},
	{"bangladesh", "Bangladesh"},
	{"pakistan", "Pakistan"},
	{"italy", "Italy"},
}

var materialKeywords = []struct {
	token     string
	canonical string
}{
	{"cotton", "Cotton"},
	{"wool", "Wool"},
	{"polyester", "Polyester"},
	{"denim", "Denim"},
	{"linen", "Linen"},
	{"viscose", "Viscose"},
}

// Extract holds the filters resolved from a question. Empty fields mean the
// filter was not recognized.
type Extract struct {
	Location     string
	Material     string
	SupplierName string
}

// Extractor matches questions against the known keyword lists and supplier
// names. It is a pure function of its inputs and safe for concurrent use.
type Extractor struct {
	supplierNames []string
}

func NewExtractor(supplierNames []string) *Extractor {
	return &Extractor{supplierNames: supplierNames}
}

// Extract scans the lower-cased question for known locations, materials, and
// supplier names. Supplier matching tries exact substrings first and falls
// back to fuzzy-scoring each question token against each known name.
func (e *Extractor) Extract(question string) Extract {
	q := strings.ToLower(question)

	var out Extract
	for _, kw := range locationKeywords {
		if strings.Contains(q, kw.token) {
			out.Location = kw.canonical
			break
		}
	}

	for _, kw := range materialKeywords {
		if strings.Contains(q, kw.token) {
			out.Material = kw.canonical
			break
		}
	}

	out.SupplierName = e.matchSupplier(q)
	return out
}

func (e *Extractor) matchSupplier(q string) string {
	for _, name := range e.supplierNames {
		if strings.Contains(q, strings.ToLower(name)) {
			return name
		}
	}

	// Fuzzy fallback: the first token with any passing match wins, keeping
	// the original scan order rather than a global best across tokens.
	for _, word := range strings.Fields(q) {
		if match := e.fuzzyMatch(word); match != "" {
			return match
		}
	}
	return ""
}

func (e *Extractor) fuzzyMatch(word string) string {
	bestMatch := ""
	bestScore := 0
	for _, name := range e.supplierNames {
		score := fuzzy.Ratio(strings.ToLower(word), strings.ToLower(name))
		if score > bestScore && score > fuzzyThreshold {
			bestScore = score
			bestMatch = name
		}
	}
	return bestMatch
}
