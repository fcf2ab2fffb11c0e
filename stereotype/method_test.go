package stereotype

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxhq/stereocode/core"
)

func cppHints() LanguageHints {
	return LanguageHints{
		Language:              core.LangCPP,
		BooleanTypeNames:      []string{"bool"},
		VoidReturnNames:       []string{"void"},
		VoidPointerIsNonVoid:  true,
		NonVoidCommandAllowed: true,
	}
}

func javaHints() LanguageHints {
	return LanguageHints{
		Language:              core.LangJava,
		BooleanTypeNames:      []string{"boolean", "Boolean"},
		VoidReturnNames:       []string{"void"},
		VoidPointerIsNonVoid:  false,
		NonVoidCommandAllowed: false,
	}
}

func TestClassifyMethodConstructorDestructor(t *testing.T) {
	ctor := &core.Method{IsConstructorDestructor: true}
	assert.Equal(t, []string{"constructor"}, ClassifyMethod(ctor, cppHints()))

	dtor := &core.Method{IsConstructorDestructor: true, IsDestructor: true}
	assert.Equal(t, []string{"destructor"}, ClassifyMethod(dtor, cppHints()))
}

func TestClassifyMethodGet(t *testing.T) {
	m := &core.Method{ReturnTypeParsed: "int", AttributeReturned: true}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "get")
}

func TestClassifyMethodGetExcludedByVoidReturn(t *testing.T) {
	m := &core.Method{ReturnTypeParsed: "void", AttributeReturned: true}
	got := ClassifyMethod(m, cppHints())
	assert.NotContains(t, got, "get")
}

func TestClassifyMethodPredicate(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:     "bool",
		AttributeNotReturned: true,
		AttributesUsed:       true,
	}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "predicate")
}

func TestClassifyMethodProperty(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:     "Widget",
		AttributeNotReturned: true,
		FunctionCalls:        []string{"compute"},
	}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "property")
}

func TestClassifyMethodPropertySkippedForStrictFactory(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:     "Widget",
		AttributeNotReturned: true,
		FunctionCalls:        []string{"compute"},
		IsStrictFactory:      true,
	}
	got := ClassifyMethod(m, cppHints())
	assert.NotContains(t, got, "property")
	assert.Contains(t, got, "factory")
}

func TestClassifyMethodVoidAccessor(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:            "void",
		ParameterRefChangedNonConst: true,
		AttributesUsed:              true,
	}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "void-accessor")
}

func TestClassifyMethodSet(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:       "void",
		NumAttributesModified:  1,
	}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "set")
}

func TestClassifyMethodSetExcludedByExtraCalls(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:      "void",
		NumAttributesModified: 1,
		FunctionCalls:         []string{"a", "b"},
	}
	got := ClassifyMethod(m, cppHints())
	assert.NotContains(t, got, "set")
}

func TestClassifyMethodCommandTwoOrMoreAttributesAlwaysQualifies(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:      "void",
		NumAttributesModified: 2,
		IsConstMethod:         true,
	}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "command")
}

func TestClassifyMethodCommandConstMethodCarveOut(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:      "void",
		NumAttributesModified: 1,
		FunctionCalls:         []string{"a", "b"},
		IsConstMethod:         true,
	}
	got := ClassifyMethod(m, cppHints())
	assert.NotContains(t, got, "command")
}

func TestClassifyMethodCommandOneAttributeTwoCalls(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:      "void",
		NumAttributesModified: 1,
		FunctionCalls:         []string{"a", "b"},
	}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "command")
}

func TestClassifyMethodNonVoidCommand(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:      "int",
		NumAttributesModified: 0,
		FunctionCalls:         []string{"a"},
	}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "non-void-command")
}

func TestClassifyMethodNonVoidCommandDisallowedInJava(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:      "int",
		NumAttributesModified: 0,
		FunctionCalls:         []string{"a"},
	}
	got := ClassifyMethod(m, javaHints())
	assert.NotContains(t, got, "non-void-command")
}

func TestClassifyMethodFactory(t *testing.T) {
	m := &core.Method{ReturnTypeParsed: "Widget", IsStrictFactory: true}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "factory")
}

func TestClassifyMethodWrapper(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:         "void",
		NumExternalFunctionCalls: 1,
	}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "wrapper")
}

func TestClassifyMethodController(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:       "void",
		NumExternalMethodCalls: 1,
	}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "controller")
}

func TestClassifyMethodCollaborator(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:              "void",
		NumAttributesModified:         1,
		NonPrimitiveParameterExternal: true,
	}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "collaborator")
}

func TestClassifyMethodCollaboratorVoidPointerReturn(t *testing.T) {
	m := &core.Method{ReturnTypeRaw: "void*", ReturnTypeParsed: "void"}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "collaborator")
}

func TestClassifyMethodNonVoidPointerReturnIsNotCollaborator(t *testing.T) {
	m := &core.Method{ReturnTypeRaw: "int*", ReturnTypeParsed: "int"}
	got := ClassifyMethod(m, cppHints())
	assert.NotContains(t, got, "collaborator")
}

func TestClassifyMethodIncidental(t *testing.T) {
	m := &core.Method{ReturnTypeParsed: "void"}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "incidental")
}

func TestClassifyMethodStateless(t *testing.T) {
	m := &core.Method{
		ReturnTypeParsed:         "void",
		NumExternalFunctionCalls: 1,
	}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "stateless")
}

func TestClassifyMethodEmptyCoOccursWithSignatureRules(t *testing.T) {
	m := &core.Method{ReturnTypeParsed: "int", AttributeReturned: true, IsEmpty: true}
	got := ClassifyMethod(m, cppHints())
	assert.Contains(t, got, "get")
	assert.Contains(t, got, "empty")
}

func TestClassifyMethodUnclassifiedFallback(t *testing.T) {
	// AttributesUsed suppresses incidental/stateless; a void return with no
	// modified attribute, no reference-parameter assignment, and no calls of
	// any kind leaves every other rule unsatisfied too.
	m := &core.Method{
		ReturnTypeParsed: "void",
		AttributesUsed:   true,
	}
	got := ClassifyMethod(m, cppHints())
	assert.Equal(t, []string{"unclassified"}, got)
}
