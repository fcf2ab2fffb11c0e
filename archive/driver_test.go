package archive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/stereocode/core"
	"github.com/oxhq/stereocode/primitives"
	"github.com/oxhq/stereocode/stereotype"
)

const driverFixture = `<?xml version="1.0" encoding="UTF-8"?>
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
      </public>
    </block>
  </class>
</unit>
`

func TestDriverRunClassifiesMethodsAndClass(t *testing.T) {
	arc, err := Load(strings.NewReader(driverFixture))
	require.NoError(t, err)

	driver := NewDriver(arc, primitives.New(), stereotype.ClassOptions{})
	classes, err := driver.Run()
	require.NoError(t, err)
	require.Len(t, classes, 1)

	class := classes[0]
	assert.Equal(t, "Widget", class.Names.Bare)
	require.Len(t, class.Methods, 2)

	byName := make(map[string][]string)
	for _, m := range class.Methods {
		byName[m.Name] = m.Stereotypes
	}
	assert.Contains(t, byName["getCount"], "get")
	assert.Contains(t, byName["setCount"], "set")
	assert.Contains(t, class.Stereotypes, "data-class")
}

func TestDriverAnnotateWritesStereotypeAttributes(t *testing.T) {
	arc, err := Load(strings.NewReader(driverFixture))
	require.NoError(t, err)

	driver := NewDriver(arc, primitives.New(), stereotype.ClassOptions{})
	classes, err := driver.Run()
	require.NoError(t, err)

	require.NoError(t, driver.Annotate(classes))

	out, err := arc.Serialize()
	require.NoError(t, err)
	assert.Contains(t, out, `stereotype="data-class small-class"`)
	assert.Contains(t, out, `stereotype="get"`)
	assert.Contains(t, out, `stereotype="set"`)
}

func TestDriverAnnotateMethodsOnlySkipsClassAttribute(t *testing.T) {
	arc, err := Load(strings.NewReader(driverFixture))
	require.NoError(t, err)

	driver := NewDriver(arc, primitives.New(), stereotype.ClassOptions{})
	driver.MethodsOnly = true
	classes, err := driver.Run()
	require.NoError(t, err)
	require.NoError(t, driver.Annotate(classes))

	out, err := arc.Serialize()
	require.NoError(t, err)
	assert.NotContains(t, out, `stereotype="data-class small-class"`)
	assert.Contains(t, out, `stereotype="get"`)
}

func TestDriverAnnotateClassesOnlySkipsMethodAttributes(t *testing.T) {
	arc, err := Load(strings.NewReader(driverFixture))
	require.NoError(t, err)

	driver := NewDriver(arc, primitives.New(), stereotype.ClassOptions{})
	driver.ClassesOnly = true
	classes, err := driver.Run()
	require.NoError(t, err)
	require.NoError(t, driver.Annotate(classes))

	out, err := arc.Serialize()
	require.NoError(t, err)
	assert.Contains(t, out, `stereotype="data-class small-class"`)
	assert.NotContains(t, out, `stereotype="get"`)
	assert.NotContains(t, out, `stereotype="set"`)
}

func TestDriverRunErrorsWhenPrimitivesMissingLanguage(t *testing.T) {
	arc, err := Load(strings.NewReader(driverFixture))
	require.NoError(t, err)

	empty, err := primitives.Load(strings.NewReader(""))
	require.NoError(t, err)

	driver := NewDriver(arc, empty, stereotype.ClassOptions{})
	_, err = driver.Run()
	assert.Error(t, err)

	var engineErr *core.EngineError
	assert.ErrorAs(t, err, &engineErr)
}
