package polyglot

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RouteTable maps route path patterns to the namespaces their views need.
// Patterns may contain ":param" segments that match any single path segment.
// The table is static configuration; it is never mutated at request time.
type RouteTable struct {
	entries []routeEntry
}

type routeEntry struct {
	pattern    string
	namespaces []Namespace
}

// DefaultRouteTable is the hand-authored mapping for the application's
// routes.
func DefaultRouteTable() *RouteTable {
	t := &RouteTable{}
	t.Add("/", NamespaceCommon, NamespaceDashboard)
	t.Add("/dashboard", NamespaceCommon, NamespaceDashboard)
	t.Add("/billing", NamespaceCommon, NamespaceBilling)
	t.Add("/responses/:formId", NamespaceCommon, NamespaceDashboard)
	t.Add("/editor/:formId", NamespaceCommon, NamespaceEditor, NamespaceWorkflow)
	t.Add("/workflows", NamespaceCommon, NamespaceWorkflow)
	t.Add("/workflows/:triggerId", NamespaceCommon, NamespaceWorkflow)
	t.Add("/help", NamespaceCommon, NamespaceHelp)
	t.Add("/settings", NamespaceCommon, NamespaceDashboard, NamespaceBilling)
	return t
}

// Add appends a pattern to the table. Order matters for pattern matching.
func (t *RouteTable) Add(pattern string, namespaces ...Namespace) {
	t.entries = append(t.entries, routeEntry{pattern: pattern, namespaces: namespaces})
}

// NamespacesForRoute resolves the namespaces a route needs. An exact pattern
// match wins; otherwise patterns are tried in order with segment-wise
// matching. Unknown routes fall back to the common namespace.
func (t *RouteTable) NamespacesForRoute(path string) []Namespace {
	for _, e := range t.entries {
		if e.pattern == path {
			return append([]Namespace(nil), e.namespaces...)
		}
	}

	for _, e := range t.entries {
		if matchPattern(e.pattern, path) {
			return append([]Namespace(nil), e.namespaces...)
		}
	}

	return []Namespace{NamespaceCommon}
}

// matchPattern matches a path against a pattern segment by segment. A
// pattern segment starting with ':' matches any single segment. Both sides
// must have the same segment count; there is no wildcard-depth matching.
func matchPattern(pattern, path string) bool {
	ps := splitSegments(pattern)
	ss := splitSegments(path)
	if len(ps) != len(ss) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			continue
		}
		if ps[i] != ss[i] {
			return false
		}
	}
	return true
}

func splitSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// AllNamespaces returns the union of every namespace appearing in the table,
// in order of first appearance. Used for exhaustive warmup.
func (t *RouteTable) AllNamespaces() []Namespace {
	seen := make(map[Namespace]bool)
	var all []Namespace
	for _, e := range t.entries {
		for _, ns := range e.namespaces {
			if !seen[ns] {
				seen[ns] = true
				all = append(all, ns)
			}
		}
	}
	return all
}

// PreloadRoute warms the loader cache with the namespaces the route needs.
func (t *RouteTable) PreloadRoute(ctx context.Context, loader *Loader, path string, lang Language) error {
	return loader.Preload(ctx, lang, t.NamespacesForRoute(path)...)
}

// PreloadCritical warms the namespaces every route depends on. Called at
// boot, before any route is known.
func (t *RouteTable) PreloadCritical(ctx context.Context, loader *Loader, lang Language) error {
	return loader.Preload(ctx, lang, NamespaceCommon)
}

type routeFile struct {
	Routes []struct {
		Path       string   `yaml:"path"`
		Namespaces []string `yaml:"namespaces"`
	} `yaml:"routes"`
}

// ParseRouteTable reads a YAML route table:
//
//	routes:
//	  - path: /billing
//	    namespaces: [common, billing]
func ParseRouteTable(data []byte) (*RouteTable, error) {
	var rf routeFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse route table: %w", err)
	}

	t := &RouteTable{}
	for _, r := range rf.Routes {
		if r.Path == "" {
			return nil, fmt.Errorf("route table entry with empty path")
		}
		namespaces := make([]Namespace, 0, len(r.Namespaces))
		for _, ns := range r.Namespaces {
			if !ValidNamespace(ns) {
				return nil, fmt.Errorf("route %q references unknown namespace %q", r.Path, ns)
			}
			namespaces = append(namespaces, Namespace(ns))
		}
		t.Add(r.Path, namespaces...)
	}
	return t, nil
}

// LoadRouteTable reads a YAML route table file from disk.
func LoadRouteTable(path string) (*RouteTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRouteTable(data)
}
