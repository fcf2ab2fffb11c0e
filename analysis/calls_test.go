package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxhq/stereocode/core"
	"github.com/oxhq/stereocode/langconf/cpp"
	"github.com/oxhq/stereocode/langconf/csharp"
	"github.com/oxhq/stereocode/langconf/java"
)

func TestParseCallExpression(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		language     core.Language
		wantReceiver string
		wantCallee   string
		wantNew      bool
	}{
		{"bare call", "helper()", core.LangCPP, "", "helper", false},
		{"member call dot", "obj.Method(a, b)", core.LangCPP, "obj", "Method", false},
		{"member call arrow", "this->Helper()", core.LangCPP, "this", "Helper", false},
		{"new construction", "new Foo(x)", core.LangCSharp, "", "Foo", true},
		{"namespaced free function", "std::move(x)", core.LangCPP, "", "move", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := ParseCallExpression(tt.raw, tt.language)
			assert.Equal(t, tt.wantReceiver, site.ReceiverName)
			assert.Equal(t, tt.wantCallee, site.CalleeBare)
			assert.Equal(t, tt.wantNew, site.HasNew)
		})
	}
}

func TestClassifyCallIgnored(t *testing.T) {
	cfg := cpp.New()
	site := ParseCallExpression("std::move(x)", core.LangCPP)
	got := ClassifyCall(site, cfg, "Widget", nil, nil, nil, nil, nil)
	assert.Equal(t, CallIgnored, got)
}

func TestClassifyCallConstructorCSharp(t *testing.T) {
	cfg := csharp.New()
	site := ParseCallExpression("new Helper()", core.LangCSharp)
	got := ClassifyCall(site, cfg, "Widget", nil, nil, nil, nil, nil)
	assert.Equal(t, CallConstructor, got)
}

func TestClassifyCallConstructorCppByScope(t *testing.T) {
	cfg := cpp.New()
	site := ParseCallExpression("Point(x, y)", core.LangCPP)
	known := map[string]struct{}{"Point": {}}
	got := ClassifyCall(site, cfg, "Widget", nil, nil, nil, nil, known)
	assert.Equal(t, CallConstructor, got)
}

func TestClassifyCallIntraClassFunction(t *testing.T) {
	cfg := java.New()
	site := ParseCallExpression("compute()", core.LangJava)
	methods := map[string]struct{}{"compute": {}}
	got := ClassifyCall(site, cfg, "Widget", methods, nil, nil, nil, nil)
	assert.Equal(t, CallIntraClassFunction, got)
}

func TestClassifyCallIntraClassFunctionViaThis(t *testing.T) {
	cfg := java.New()
	site := ParseCallExpression("this.compute()", core.LangJava)
	methods := map[string]struct{}{"compute": {}}
	got := ClassifyCall(site, cfg, "Widget", methods, nil, nil, nil, nil)
	assert.Equal(t, CallIntraClassFunction, got)
}

func TestClassifyCallOnAttribute(t *testing.T) {
	cfg := java.New()
	site := ParseCallExpression("logger.info()", core.LangJava)
	attrs := map[string]struct{}{"logger": {}}
	got := ClassifyCall(site, cfg, "Widget", nil, attrs, nil, nil, nil)
	assert.Equal(t, CallOnAttribute, got)
}

func TestClassifyCallExternalMethod(t *testing.T) {
	cfg := java.New()
	site := ParseCallExpression("helper.process()", core.LangJava)
	externals := map[string]struct{}{"helper": {}}
	got := ClassifyCall(site, cfg, "Widget", nil, nil, nil, externals, nil)
	assert.Equal(t, CallExternalMethod, got)
}

func TestClassifyCallExternalFunctionFallback(t *testing.T) {
	cfg := java.New()
	site := ParseCallExpression("doSomething()", core.LangJava)
	got := ClassifyCall(site, cfg, "Widget", nil, nil, nil, nil, nil)
	assert.Equal(t, CallExternalFunction, got)
}

func TestContainsWholeWordRejectsSubstringMatchInCallText(t *testing.T) {
	assert.True(t, containsWholeWord("return count;", "count"))
	assert.False(t, containsWholeWord("return recount;", "count"))
	assert.False(t, containsWholeWord("return countess;", "count"))
	assert.False(t, containsWholeWord("anything", ""))
}
