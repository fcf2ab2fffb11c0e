// Package csharp implements langconf.Config for C# (spec §3, §4.4, §4.6).
package csharp

import "github.com/oxhq/stereocode/core"

// Config is the C# language behavior.
type Config struct{}

// New returns a C# Config.
func New() *Config { return &Config{} }

func (c *Config) Language() core.Language { return core.LangCSharp }

// DefaultParentVisibility: C# always resolves inheritance as public — there
// is no private-by-default class inheritance distinction (spec §3).
func (c *Config) DefaultParentVisibility(core.StructureKind) core.Visibility {
	return core.VisibilityPublic
}

func (c *Config) BooleanTypeNames() []string { return []string{"bool", "Boolean"} }

func (c *Config) VoidPointerIsNonVoid() bool { return true }

func (c *Config) VoidReturnTypeNames() []string { return []string{"void", "Void"} }

var ignoredCalls = map[string]struct{}{
	"Console.WriteLine": {},
	"Console.Write":     {},
	"Debug.Assert":      {},
	"GC.Collect":        {},
	"typeof":            {},
	"nameof":            {},
}

func (c *Config) IsIgnoredCall(calleeName string) bool {
	_, ok := ignoredCalls[calleeName]
	return ok
}

// IsConstructorCallSyntax: C# always marks construction with `new`, so
// scope-type matching is never needed here (unlike C++).
func (c *Config) IsConstructorCallSyntax(calleeBareName string, hasNewKeyword bool, _ map[string]struct{}) bool {
	return hasNewKeyword && calleeBareName != ""
}

func (c *Config) SupportsConstMethods() bool { return false }
