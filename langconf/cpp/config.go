// Package cpp implements langconf.Config for C++ (spec §3, §4.4, §4.6).
//
// Grounded on providers/golang/config.go: a zero-field Config struct with
// small per-construct predicate methods.
package cpp

import "github.com/oxhq/stereocode/core"

// Config is the C++ language behavior.
type Config struct{}

// New returns a C++ Config.
func New() *Config { return &Config{} }

func (c *Config) Language() core.Language { return core.LangCPP }

func (c *Config) DefaultParentVisibility(structureKind core.StructureKind) core.Visibility {
	if structureKind == core.StructureStruct {
		return core.VisibilityPublic
	}
	return core.VisibilityPrivate
}

func (c *Config) BooleanTypeNames() []string { return []string{"bool"} }

func (c *Config) VoidPointerIsNonVoid() bool { return true }

func (c *Config) VoidReturnTypeNames() []string { return []string{"void"} }

// ignoredCalls is the fixed C++ ignore set (spec §4.4): these never count
// toward any call counter regardless of how they'd otherwise classify.
var ignoredCalls = map[string]struct{}{
	"std::move":     {},
	"move":          {},
	"std::forward":  {},
	"forward":       {},
	"sizeof":        {},
	"typeid":        {},
	"static_cast":   {},
	"dynamic_cast":  {},
	"const_cast":    {},
	"reinterpret_cast": {},
	"std::cout":     {},
	"std::cerr":     {},
	"assert":        {},
}

func (c *Config) IsIgnoredCall(calleeName string) bool {
	_, ok := ignoredCalls[calleeName]
	return ok
}

// IsConstructorCallSyntax recognises "new T(...)" heap construction and,
// absent a `new` keyword, bare "T(...)"/"T{...}" value construction where T
// is a type known to be in scope (spec §4.4 rule 1, §9) — C++ has no
// universal lexical marker for value construction, so scope-type matching
// is the only syntactic signal available without cross-unit resolution.
func (c *Config) IsConstructorCallSyntax(calleeBareName string, hasNewKeyword bool, knownTypeNames map[string]struct{}) bool {
	if calleeBareName == "" {
		return false
	}
	if hasNewKeyword {
		return true
	}
	_, known := knownTypeNames[calleeBareName]
	return known
}

func (c *Config) SupportsConstMethods() bool { return true }
