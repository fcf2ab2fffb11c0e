// Package java implements langconf.Config for Java (spec §3, §4.4, §4.6).
package java

import "github.com/oxhq/stereocode/core"

// Config is the Java language behavior.
type Config struct{}

// New returns a Java Config.
func New() *Config { return &Config{} }

func (c *Config) Language() core.Language { return core.LangJava }

func (c *Config) DefaultParentVisibility(core.StructureKind) core.Visibility {
	return core.VisibilityPublic
}

func (c *Config) BooleanTypeNames() []string { return []string{"boolean", "Boolean"} }

// VoidPointerIsNonVoid: Java has no pointer types, so the "void*" carve-out
// in §4.6 rules 4/7 never applies.
func (c *Config) VoidPointerIsNonVoid() bool { return false }

func (c *Config) VoidReturnTypeNames() []string { return []string{"void"} }

var ignoredCalls = map[string]struct{}{
	"System.out.println": {},
	"System.out.print":   {},
	"System.err.println": {},
	"Objects.requireNonNull": {},
	"assert": {},
}

func (c *Config) IsIgnoredCall(calleeName string) bool {
	_, ok := ignoredCalls[calleeName]
	return ok
}

func (c *Config) IsConstructorCallSyntax(calleeBareName string, hasNewKeyword bool, _ map[string]struct{}) bool {
	return hasNewKeyword && calleeBareName != ""
}

func (c *Config) SupportsConstMethods() bool { return false }
