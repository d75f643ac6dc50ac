// Package view maps console paths to dashboard views and keeps the active
// view's data loading and polling in sync with navigation.
package view

import (
	"net/url"
	"strings"
)

// ID names a mutually exclusive view within a dashboard.
type ID string

// Dashboard is the fallback view of every role area.
const Dashboard ID = "dashboard"

// Rule maps any of its path suffixes to a view.
type Rule struct {
	Suffixes []string
	View     ID
}

// Router resolves paths against an ordered rule list.
type Router struct {
	rules    []Rule
	fallback ID
}

// NewRouter builds a Router. Rules are tried in the order given and the
// first suffix match wins. Unmatched paths resolve to Dashboard.
func NewRouter(rules ...Rule) *Router {
	return &Router{rules: rules, fallback: Dashboard}
}

// Resolve returns the view for path. The query string is ignored.
func (r *Router) Resolve(path string) ID {
	p := stripQuery(path)
	p = strings.TrimRight(p, "/")
	for _, rule := range r.rules {
		for _, suffix := range rule.Suffixes {
			if strings.HasSuffix(p, suffix) {
				return rule.View
			}
		}
	}
	return r.fallback
}

// Views lists every view the router can produce, fallback first.
func (r *Router) Views() []ID {
	out := []ID{r.fallback}
	for _, rule := range r.rules {
		out = append(out, rule.View)
	}
	return out
}

// Query returns the parsed query string of path.
func Query(path string) url.Values {
	i := strings.IndexByte(path, '?')
	if i < 0 {
		return url.Values{}
	}
	q, err := url.ParseQuery(path[i+1:])
	if err != nil {
		return url.Values{}
	}
	return q
}

func stripQuery(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i]
	}
	return path
}
