package archive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/stereocode/core"
)

const sampleArchive = `<?xml version="1.0" encoding="UTF-8"?>
<archive>
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
            <block><return><expr>count</expr></return></block>
          </function>
        </public>
      </block>
    </class>
  </unit>
  <unit language="Fortran">
    <class><name>Legacy</name></class>
  </unit>
</archive>
`

func TestLoadParsesUnitsAndSkipsUnknownLanguage(t *testing.T) {
	arc, err := Load(strings.NewReader(sampleArchive))
	require.NoError(t, err)

	assert.Len(t, arc.Units(), 1)
	assert.Equal(t, core.LangCPP, arc.Units()[0].Language)
	assert.Len(t, arc.Warnings(), 1)
}

func TestLoadMalformedXMLIsFatal(t *testing.T) {
	_, err := Load(strings.NewReader("<unit><class></unit>"))
	assert.Error(t, err)
}

func TestLoadEmptyDocumentIsFatal(t *testing.T) {
	_, err := Load(strings.NewReader(""))
	assert.Error(t, err)
}

func TestLoadNoUnitsIsFatal(t *testing.T) {
	_, err := Load(strings.NewReader(`<archive><foo/></archive>`))
	assert.Error(t, err)
}

func TestQueryChildAxis(t *testing.T) {
	arc, err := Load(strings.NewReader(sampleArchive))
	require.NoError(t, err)

	unit := arc.Units()[0]
	names, err := arc.Query(unit, ".//class/name")
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "Widget", names[0].Text())
}

func TestQueryDescendantAxis(t *testing.T) {
	arc, err := Load(strings.NewReader(sampleArchive))
	require.NoError(t, err)

	unit := arc.Units()[0]
	funcs, err := arc.Query(unit, ".//function")
	require.NoError(t, err)
	require.Len(t, funcs, 1)
	assert.Equal(t, "function", funcs[0].Tag())
}

func TestQueryFromScopesToSubtree(t *testing.T) {
	arc, err := Load(strings.NewReader(sampleArchive))
	require.NoError(t, err)

	unit := arc.Units()[0]
	classes, err := arc.Query(unit, ".//class")
	require.NoError(t, err)
	require.Len(t, classes, 1)

	names, err := arc.QueryFrom(classes[0], "./name")
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "Widget", names[0].Text())
}

func TestSetAttributeAndSerializeRoundTrip(t *testing.T) {
	arc, err := Load(strings.NewReader(sampleArchive))
	require.NoError(t, err)

	unit := arc.Units()[0]
	classes, err := arc.Query(unit, ".//class")
	require.NoError(t, err)
	require.Len(t, classes, 1)

	require.NoError(t, arc.SetAttribute(classes[0], "stereotype", "data-class"))

	out, err := arc.Serialize()
	require.NoError(t, err)
	assert.Contains(t, out, `stereotype="data-class"`)
	assert.Contains(t, out, "<name>Widget</name>")
}

func TestEvalPathPredicateEquals(t *testing.T) {
	arc, err := Load(strings.NewReader(sampleArchive))
	require.NoError(t, err)

	unit := arc.Units()[0]
	got, err := arc.Query(unit, ".//name[.='Widget']")
	require.NoError(t, err)
	require.Len(t, got, 1)
}
