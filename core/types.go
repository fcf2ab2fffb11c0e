// Package core holds the stereotype engine's data model (spec §3).
package core

// Language identifies the source language of a compilation unit.
type Language string

const (
	LangCPP    Language = "C++"
	LangCSharp Language = "C#"
	LangJava   Language = "Java"
)

// StructureKind is the syntactic class/struct/interface distinction.
type StructureKind string

const (
	StructureClass     StructureKind = "class"
	StructureStruct    StructureKind = "struct"
	StructureInterface StructureKind = "interface"
)

// Visibility is an inheritance or member visibility.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
)

// ThisAttributeName is the reserved sentinel attribute every class carries
// so a bare `this` reference can be treated as an attribute access by the
// accessor-side stereotype rules (spec §4.4, §4.6).
const ThisAttributeName = "this"

// Variable is a name/type pair with non-primitive flags (spec §3).
type Variable struct {
	Name                   string
	Type                   string
	IsNonPrimitive         bool
	IsExternalNonPrimitive bool
}

// Names is the 4-tuple a class carries for its name (spec §3). All four
// fields are empty for an anonymous class.
type Names struct {
	Raw              string
	Trimmed          string
	GenericsStripped string
	Bare             string
}

// IsAnonymous reports whether the class has no name at all.
func (n Names) IsAnonymous() bool {
	return n.Raw == "" && n.Trimmed == "" && n.GenericsStripped == "" && n.Bare == ""
}

// Unit is a compilation unit within the archive (spec §3).
type Unit struct {
	Index    int
	Language Language
}

// Class is the per-class model built by the class model builder (spec §3).
type Class struct {
	Unit     *Unit
	Language Language

	// Node is the live archive handle for this class's element, used by the
	// driver to locate where to write the "stereotype" attribute back. It is
	// not part of the classification data itself.
	Node Node

	Names         Names
	StructureKind StructureKind

	// Parents maps parent class name to inheritance visibility.
	Parents map[string]Visibility

	// Attributes always contains the synthetic "this" entry.
	Attributes map[string]*Variable

	// NonPrivateAndInheritedAttributes is used for inherited-access analysis.
	NonPrivateAndInheritedAttributes map[string]*Variable

	Methods []*Method

	// XPathsByUnit records, keyed by unit ordinal, the raw class name of
	// each declaration folded into this class (a class can recur across
	// partial declarations). Annotations are written through Node, not
	// through these entries.
	XPathsByUnit map[int][]string

	Stereotypes []string

	// ConstructorDestructorCount excludes ctor/dtor methods from class
	// stereotype denominators (spec §3, §4.7).
	ConstructorDestructorCount int
}

// NewClass returns a Class with its invariant "this" attribute populated.
func NewClass(unit *Unit, language Language) *Class {
	c := &Class{
		Unit:                             unit,
		Language:                         language,
		Parents:                          make(map[string]Visibility),
		Attributes:                       make(map[string]*Variable),
		NonPrivateAndInheritedAttributes: make(map[string]*Variable),
		XPathsByUnit:                     make(map[int][]string),
	}
	c.Attributes[ThisAttributeName] = &Variable{Name: ThisAttributeName}
	return c
}

// Method is the per-method model built by the method analyser (spec §3).
type Method struct {
	// Node is the live archive handle for this method's element, used by the
	// driver to locate where to write the "stereotype" attribute back.
	Node Node

	// XPath is a human-readable locator (class bare name + method name). It
	// is not used for re-querying the archive and is not written to the CSV
	// report.
	XPath string

	Name             string
	ReturnTypeRaw    string
	ReturnTypeParsed string

	ParametersList string
	Parameters     []Variable
	Locals         []Variable

	IsConstMethod bool

	IsConstructorDestructor bool
	IsDestructor            bool
	IsEmpty                 bool

	AttributesUsed       bool
	AttributeReturned    bool
	AttributeNotReturned bool

	NumAttributesModified int

	FunctionCalls    []string
	MethodCalls      []string
	ConstructorCalls []string

	NumExternalFunctionCalls int
	NumExternalMethodCalls   int

	IsFactory       bool
	IsStrictFactory bool

	NonPrimitiveAttributeExternal bool
	NonPrimitiveLocalExternal     bool
	NonPrimitiveParameterExternal bool
	NonPrimitiveReturnExternal    bool

	ParameterRefChangedNonConst         bool
	NonPrimitiveLocalOrParameterChanged bool

	// ExternalNonPrimitiveLocalOrParamAssigned is true when at least one
	// local or parameter of external non-primitive type is an assignment
	// target (spec §4.6 rule 9's controller test).
	ExternalNonPrimitiveLocalOrParamAssigned bool

	Stereotypes []string
}

// NumIntraClassCalls is the count of calls against the method's own class
// (intra-class function calls), used throughout §4.6/§4.7.
func (m *Method) NumIntraClassCalls() int {
	return len(m.FunctionCalls)
}

// NumCallsOnAttributes is the count of calls dispatched through a data
// member ("calls on data members" in the glossary).
func (m *Method) NumCallsOnAttributes() int {
	return len(m.MethodCalls)
}
