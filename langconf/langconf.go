// Package langconf defines the per-language behavior contract (spec §4.4,
// §4.6, §4.7 all vary slightly by language) and is implemented by the three
// sibling packages cpp, csharp, and java.
//
// Grounded on providers/base/provider.go's LanguageConfig interface — a
// small set of methods a zero-field Config struct implements per language,
// the same shape as providers/golang/config.go, providers/python/config.go,
// providers/php/config.go.
package langconf

import "github.com/oxhq/stereocode/core"

// Config is the per-language behavior contract.
type Config interface {
	Language() core.Language

	// DefaultParentVisibility is the implicit inheritance visibility when
	// none is written in source, which depends on structureKind for C++
	// (private for class, public for struct) and is always public for
	// C#/Java (spec §3).
	DefaultParentVisibility(structureKind core.StructureKind) core.Visibility

	// BooleanTypeNames lists the spellings this language's "boolean return
	// type" test accepts (spec §4.6 rule 3: bool/boolean, also Boolean for
	// C#).
	BooleanTypeNames() []string

	// VoidPointerIsNonVoid reports whether "void*" counts as non-void for
	// the property/command tests (true for C++/C#, spec §4.6 rules 4/7).
	VoidPointerIsNonVoid() bool

	// VoidReturnTypeNames lists the spellings this language's "void return
	// type" test accepts, including the boxed C# `Void` (spec §4.6 rule 7).
	VoidReturnTypeNames() []string

	// IsIgnoredCall reports whether a call to calleeName is in this
	// language's fixed ignore set (spec §4.4 "Ignored calls" —
	// std::move/sizeof/typeid/logging etc.) and so must never be counted
	// toward any call counter.
	IsIgnoredCall(calleeName string) bool

	// IsConstructorCallSyntax reports whether a call site is syntactically a
	// constructor invocation for this language (spec §4.4 rule 1, §9):
	// "new T(...)" for C#/Java, "T(...)"/"T{...}" for C++. hasNewKeyword
	// reports whether the call expression was preceded by a `new` token;
	// knownTypeNames is the set of non-primitive bare type names in scope
	// for the enclosing method (its class's bareName plus the declared
	// types of its attributes/locals/parameters/return type) — without
	// cross-unit type resolution (a Non-goal) this set is the only basis
	// for recognising C++'s implicit "T(...)" construction syntax, which
	// carries no `new` keyword.
	IsConstructorCallSyntax(calleeBareName string, hasNewKeyword bool, knownTypeNames map[string]struct{}) bool

	// SupportsConstMethods reports whether the language has a const-method
	// qualifier (C++ only).
	SupportsConstMethods() bool
}
