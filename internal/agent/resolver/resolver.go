// Package resolver maps a free-text question to a parameterized SQL query
// and the category tag that the insight and chart branches key off.
package resolver

import (
	"strings"

	"github.com/jaredmarko/worldly-demo/internal/agent/keywords"
	"github.com/jaredmarko/worldly-demo/internal/models"
)

// Query is a resolved SQL template with its bound parameters. Filter values
// are always passed as placeholders, never interpolated into the SQL text.
type Query struct {
	SQL      string
	Args     []interface{}
	Category models.QueryCategory
}

type Resolver struct {
	extractor *keywords.Extractor
}

func New(extractor *keywords.Extractor) *Resolver {
	return &Resolver{extractor: extractor}
}

// Resolve derives the query and category for a question. The same question
// always yields the same result; rules are evaluated in declaration order
// and the first match wins.
func (r *Resolver) Resolve(question string) (Query, keywords.Extract) {
	q := strings.ToLower(question)
	kw := r.extractor.Extract(question)

	for _, rule := range rules {
		if rule.match(q, kw) {
			return rule.build(q, kw), kw
		}
	}

	// Unreachable: the last rule matches everything.
	return Query{SQL: fallbackSQL, Category: models.CategoryFallback}, kw
}

// like wraps a filter value for LIKE binding.
func like(value string) string {
	return "%" + value + "%"
}
