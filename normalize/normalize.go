// Package normalize implements C3, the name/type normaliser (spec §4.3).
//
// Grounded on providers/golang/config.go's small, pure strings-based helper
// style (classifyGoAppend, extractCommentContent): short functions, a
// switch/TrimPrefix chain, no external parsing dependency.
package normalize

import (
	"strings"

	"github.com/oxhq/stereocode/core"
)

// Trim strips surrounding whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// RTrim strips trailing whitespace only.
func RTrim(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}

// RemoveNamespace drops everything up to and including the last
// namespace/package separator ("::" for C++, "." for C#/Java), preserving
// any trailing generic argument list.
func RemoveNamespace(s string, language core.Language) string {
	sep := "."
	if language == core.LangCPP {
		sep = "::"
	}

	generics := ""
	base := s
	if idx := strings.IndexByte(s, '<'); idx >= 0 {
		base = s[:idx]
		generics = s[idx:]
	}

	if idx := strings.LastIndex(base, sep); idx >= 0 {
		base = base[idx+len(sep):]
	}
	return base + generics
}

// RemoveBetweenCommas strips generic-argument contents while preserving the
// "<...>" brackets themselves, e.g. "Map<string, int>" -> "Map<>".
func RemoveBetweenCommas(s string) string {
	start := strings.IndexByte(s, '<')
	if start < 0 {
		return s
	}
	end := strings.LastIndexByte(s, '>')
	if end < 0 || end < start {
		return s
	}
	return s[:start] + "<>" + s[end+1:]
}

// StripArraySuffix truncates a C++ declarator at its first "[", e.g.
// "int[10]" -> "int". A no-op for C#/Java, whose array suffixes ("[]")
// live on the type itself and are stripped by the per-language base-name
// extraction instead.
func StripArraySuffix(s string, language core.Language) string {
	if language != core.LangCPP {
		return s
	}
	if idx := strings.IndexByte(s, '['); idx >= 0 {
		return s[:idx]
	}
	return s
}

// ResolvePrev substitutes the last concrete type when typeSrcML is the
// AST's "ref=prev" marker, supporting comma-separated declarators that
// share a single type (e.g. "int a, b, c;" — only the first declarator
// carries the real <type>, the rest refer back to it).
func ResolvePrev(typeSrcML string, previous string) string {
	if typeSrcML == "prev" {
		return previous
	}
	return typeSrcML
}

// BareName reduces a type string to its bare base identifier: trim, strip
// namespace qualifiers, strip generic arguments entirely (not just their
// contents), strip array suffixes, and strip trailing pointer/reference
// sigils and language keywords that don't affect identity.
func BareName(raw string, language core.Language) string {
	s := Trim(raw)
	s = StripArraySuffix(s, language)
	s = stripSigils(s, language)
	s = RemoveNamespace(s, language)
	if idx := strings.IndexByte(s, '<'); idx >= 0 {
		s = s[:idx]
	}
	return Trim(s)
}

func stripSigils(s string, language core.Language) string {
	switch language {
	case core.LangCPP:
		s = strings.TrimRight(s, "*& \t")
		s = strings.TrimPrefix(s, "const ")
		s = strings.TrimSuffix(s, " const")
	case core.LangCSharp:
		s = strings.TrimSuffix(s, "?")
		s = strings.TrimSuffix(s, "[]")
	case core.LangJava:
		s = strings.TrimSuffix(s, "[]")
	}
	return strings.TrimSpace(s)
}
