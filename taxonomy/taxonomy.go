// Package taxonomy implements the stereotype taxonomy file of spec §6: "a
// side file listing the closed set of labels (§4.6, §4.7); used for
// validation." A Table holds the closed label set and flags any stereotype
// the engine produced that isn't in it.
//
// Grounded on primitives/table.go's New/Load pair (built-in defaults plus an
// overriding side-file reader, same "# comment, one entry per line" format).
package taxonomy

import (
	"bufio"
	"io"
	"strings"

	"github.com/oxhq/stereocode/core"
)

// builtins is the closed label set this engine's own rule set can ever
// produce (stereotype/method.go's rules 1-12 plus "unclassified", and
// stereotype/class.go's class-level rules plus "unclassified").
var builtins = []string{
	// method stereotypes (spec §4.6)
	"constructor", "destructor", "get", "predicate", "property",
	"void-accessor", "set", "command", "non-void-command", "factory",
	"wrapper", "controller", "collaborator", "incidental", "stateless",
	"empty", "unclassified",
	// class stereotypes (spec §4.7)
	"entity", "minimal-entity", "data-provider", "commander", "boundary",
	"pure-controller", "large-class", "lazy-class", "degenerate", "data-class", "small-class",
}

// Table answers whether a label belongs to the closed taxonomy.
type Table struct {
	labels map[string]struct{}
}

// New returns a Table seeded with this engine's own built-in label set.
func New() *Table {
	return &Table{labels: toSet(builtins)}
}

// Load builds a Table from an external taxonomy file: one label per line,
// blank lines and "#"-prefixed comments ignored. Unlike primitives.Load this
// file carries no per-language sections — the taxonomy is the same closed
// set across C++, C#, and Java (spec §4.6/§4.7 apply uniformly).
func Load(r io.Reader) (*Table, error) {
	t := &Table{labels: make(map[string]struct{})}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t.labels[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Has reports whether label belongs to the closed taxonomy.
func (t *Table) Has(label string) bool {
	_, ok := t.labels[label]
	return ok
}

// Validate checks every class and method stereotype label the driver
// produced against the closed set, returning one message per label found
// outside it (deduplicated). A non-empty result is a warning, not a fatal
// error (spec §7 names no error code for this); the caller decides whether
// to surface it.
func Validate(t *Table, classes []*core.Class) []string {
	seen := make(map[string]struct{})
	var unknown []string
	check := func(label string) {
		if t.Has(label) {
			return
		}
		if _, already := seen[label]; already {
			return
		}
		seen[label] = struct{}{}
		unknown = append(unknown, label)
	}
	for _, class := range classes {
		for _, s := range class.Stereotypes {
			check(s)
		}
		for _, m := range class.Methods {
			for _, s := range m.Stereotypes {
				check(s)
			}
		}
	}
	return unknown
}

func toSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}
