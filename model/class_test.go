package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/stereocode/analysis"
	"github.com/oxhq/stereocode/archive"
	"github.com/oxhq/stereocode/core"
	"github.com/oxhq/stereocode/langconf/cpp"
	"github.com/oxhq/stereocode/langconf/csharp"
	"github.com/oxhq/stereocode/model"
	"github.com/oxhq/stereocode/primitives"
)

const widgetClassUnit = `<?xml version="1.0" encoding="UTF-8"?>
<unit language="C++">
  <class>
    <name>Widget</name>
    <block>
      <private>
        <decl_stmt><decl><type>int</type><name>count</name></decl></decl_stmt>
      </private>
      <public>
        <function>
          <type>int</type>
          <name>getCount</name>
          <parameter_list/>
          <block>
            <return><expr><name>count</name></expr></return>
          </block>
        </function>
        <function>
          <type>void</type>
          <name>setCount</name>
          <parameter_list>
            <parameter><decl><type>int</type><name>c</name></decl></parameter>
          </parameter_list>
          <block>
            <expr_stmt><expr><name>count</name><operator>=</operator><name>c</name></expr></expr_stmt>
          </block>
        </function>
        <function>
          <type>void</type>
          <name>empty</name>
          <parameter_list/>
          <block>
          </block>
        </function>
      </public>
    </block>
  </class>
</unit>
`

func buildWidgetClass(t *testing.T) *core.Class {
	t.Helper()
	arc, err := archive.Load(strings.NewReader(widgetClassUnit))
	require.NoError(t, err)
	unit := arc.Units()[0]

	classNodes, err := arc.Query(unit, ".//class")
	require.NoError(t, err)
	require.Len(t, classNodes, 1)

	cfg := cpp.New()
	an := analysis.New(arc, primitives.New(), cfg)
	b := model.New(arc, cfg, an)

	class, err := b.Build(unit, classNodes[0])
	require.NoError(t, err)
	return class
}

func TestBuildPopulatesNamesAndAttributes(t *testing.T) {
	class := buildWidgetClass(t)

	assert.Equal(t, "Widget", class.Names.Raw)
	assert.Equal(t, "Widget", class.Names.Bare)
	require.Contains(t, class.Attributes, "count")
	assert.Equal(t, "int", class.Attributes["count"].Type)
	assert.Contains(t, class.Attributes, core.ThisAttributeName)
}

func TestBuildCollectsAllMethodsViaTwoPassIndex(t *testing.T) {
	class := buildWidgetClass(t)

	require.Len(t, class.Methods, 3)
	names := make([]string, len(class.Methods))
	for i, m := range class.Methods {
		names[i] = m.Name
	}
	assert.ElementsMatch(t, []string{"getCount", "setCount", "empty"}, names)
	assert.Equal(t, 0, class.ConstructorDestructorCount)
}

func TestBuildSetsMethodXPathFromClassBareName(t *testing.T) {
	class := buildWidgetClass(t)

	for _, m := range class.Methods {
		assert.Equal(t, "Widget::"+m.Name, m.XPath)
	}
}

func TestMergeIntoCombinesAttributesAndMethods(t *testing.T) {
	target := core.NewClass(&core.Unit{Index: 0, Language: core.LangCSharp}, core.LangCSharp)
	target.Names = core.Names{Raw: "Partial", Trimmed: "Partial", GenericsStripped: "Partial", Bare: "Partial"}
	target.Attributes["fromTarget"] = &core.Variable{Name: "fromTarget", Type: "int"}
	target.Methods = append(target.Methods, &core.Method{Name: "first"})
	target.XPathsByUnit[0] = []string{"Partial"}

	partial := core.NewClass(&core.Unit{Index: 1, Language: core.LangCSharp}, core.LangCSharp)
	partial.Attributes["fromPartial"] = &core.Variable{Name: "fromPartial", Type: "string"}
	partial.Methods = append(partial.Methods, &core.Method{Name: "second"})
	partial.ConstructorDestructorCount = 1
	partial.XPathsByUnit[1] = []string{"Partial"}

	numOfCurrent := model.MergeInto(target, partial)

	assert.Equal(t, 1, numOfCurrent)
	require.Len(t, target.Methods, 2)
	assert.Equal(t, "second", target.Methods[numOfCurrent:][0].Name)
	assert.Contains(t, target.Attributes, "fromTarget")
	assert.Contains(t, target.Attributes, "fromPartial")
	assert.Equal(t, 1, target.ConstructorDestructorCount)
	assert.Equal(t, []string{"Partial"}, target.XPathsByUnit[1])
}

const widgetPropertyUnit = `<?xml version="1.0" encoding="UTF-8"?>
<unit language="C#">
  <class>
    <name>Widget</name>
    <block>
      <decl_stmt><decl><type>int</type><name>count</name></decl></decl_stmt>
      <property>
        <type>int</type>
        <name>Count</name>
        <block>
          <function>
            <parameter_list/>
            <block>
              <return><expr><name>count</name></expr></return>
            </block>
          </function>
        </block>
      </property>
    </block>
  </class>
</unit>
`

func TestBuildExpandsPropertyAccessorWithPropertysDeclaredType(t *testing.T) {
	arc, err := archive.Load(strings.NewReader(widgetPropertyUnit))
	require.NoError(t, err)
	unit := arc.Units()[0]

	classNodes, err := arc.Query(unit, ".//class")
	require.NoError(t, err)
	require.Len(t, classNodes, 1)

	cfg := csharp.New()
	an := analysis.New(arc, primitives.New(), cfg)
	b := model.New(arc, cfg, an)

	class, err := b.Build(unit, classNodes[0])
	require.NoError(t, err)

	var accessor *core.Method
	for _, m := range class.Methods {
		if m.XPath == "Widget::Count" {
			accessor = m
		}
	}
	require.NotNil(t, accessor, "expected a synthetic accessor method for the Count property")
	assert.Equal(t, "Count", accessor.Name)
	assert.Equal(t, "int", accessor.ReturnTypeRaw)
	assert.Equal(t, "int", accessor.ReturnTypeParsed)
	assert.True(t, accessor.AttributeReturned)
}

func TestMergeIntoDoesNotOverwriteExistingAttributeOrThis(t *testing.T) {
	target := core.NewClass(&core.Unit{Index: 0, Language: core.LangCSharp}, core.LangCSharp)
	target.Attributes["shared"] = &core.Variable{Name: "shared", Type: "int"}

	partial := core.NewClass(&core.Unit{Index: 1, Language: core.LangCSharp}, core.LangCSharp)
	partial.Attributes["shared"] = &core.Variable{Name: "shared", Type: "string"}

	model.MergeInto(target, partial)

	assert.Equal(t, "int", target.Attributes["shared"].Type)
}
