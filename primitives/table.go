// Package primitives implements C1, the primitive type table: a per-language
// set of base identifiers considered primitive (spec §4.1).
//
// Grounded on providers/catalog/catalog.go's package-level registry shape
// (a mutex-guarded map, lowercase-normalised keys, Register/lookup pairs).
package primitives

import (
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/oxhq/stereocode/core"
)

// Table answers IsPrimitive(typeString, language). It is read-only after
// construction and safe to share across goroutines (spec §5).
type Table struct {
	mu   sync.RWMutex
	byLang map[core.Language]map[string]struct{}
}

// builtins are the default primitive sets used when no external primitive
// file is supplied (spec §4.1, §6 "primitivesPath").
var builtins = map[core.Language][]string{
	core.LangCPP: {
		"void", "bool", "char", "char8_t", "char16_t", "char32_t", "wchar_t",
		"short", "int", "long", "float", "double", "signed", "unsigned",
		"size_t", "ssize_t", "int8_t", "int16_t", "int32_t", "int64_t",
		"uint8_t", "uint16_t", "uint32_t", "uint64_t", "auto",
	},
	core.LangCSharp: {
		"void", "bool", "byte", "sbyte", "char", "decimal", "double", "float",
		"int", "uint", "long", "ulong", "short", "ushort", "object", "string",
		"var", "dynamic", "Boolean", "Int32", "Int64", "Double", "Single",
		"String", "Object", "Void",
	},
	core.LangJava: {
		"void", "boolean", "byte", "char", "short", "int", "long", "float",
		"double", "Boolean", "Byte", "Character", "Short", "Integer", "Long",
		"Float", "Double", "String", "Object", "var",
	},
}

// New builds a Table from the built-in sets.
func New() *Table {
	t := &Table{byLang: make(map[core.Language]map[string]struct{})}
	for lang, names := range builtins {
		t.byLang[lang] = toSet(names)
	}
	return t
}

// Load builds a Table from an external primitive-type file made of
// per-language sections, one identifier per line, where blank lines and
// "#"-prefixed comments are ignored. A "<language>:<identifier>" line is not
// split: it is read as one identifier of the active section.
//
// Format:
//
//	# C++
//	void
//	bool
//	# C#
//	void
//	bool
//
// A line starting with "#" whose remainder (trimmed) matches a known
// language name switches the active language section; every other
// non-blank, non-comment line adds an identifier to the active section.
func Load(r io.Reader) (*Table, error) {
	t := &Table{byLang: make(map[core.Language]map[string]struct{})}
	scanner := bufio.NewScanner(r)

	var active core.Language
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			header := strings.TrimSpace(strings.TrimPrefix(line, "#"))
			if lang, ok := parseLanguageHeader(header); ok {
				active = lang
			}
			continue
		}
		if active == "" {
			continue
		}
		if t.byLang[active] == nil {
			t.byLang[active] = make(map[string]struct{})
		}
		t.byLang[active][line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseLanguageHeader(header string) (core.Language, bool) {
	switch strings.ToLower(header) {
	case "c++", "cpp":
		return core.LangCPP, true
	case "c#", "csharp", "cs":
		return core.LangCSharp, true
	case "java":
		return core.LangJava, true
	default:
		return "", false
	}
}

// IsPrimitive reports whether the given (already-normalised) base identifier
// is primitive for language. An unknown language always reports false; the
// caller is expected to have validated the language earlier (spec §7,
// "Primitive table missing a language" is fatal at startup, not per-lookup).
func (t *Table) IsPrimitive(baseIdentifier string, language core.Language) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	set, ok := t.byLang[language]
	if !ok {
		return false
	}
	_, found := set[baseIdentifier]
	return found
}

// HasLanguage reports whether the table has any entries for language.
func (t *Table) HasLanguage(language core.Language) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.byLang[language]
	return ok
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
