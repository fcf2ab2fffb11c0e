package core

// Archive is the XPath-capable external collaborator the engine is built
// against (spec §6). The engine never parses or serialises XML itself — it
// iterates units, runs XPath queries scoped to a unit, and writes back
// stereotype annotations by locating an element via XPath and setting an
// attribute on it. One reference implementation lives in package archive
// (archive/xmlarchive.go); it exists only because the spec requires the
// engine be exercised end to end and the retrieved example pack ships no
// XPath library to depend on instead (see DESIGN.md).
type Archive interface {
	// Units returns the compilation units in document order.
	Units() []*Unit

	// Query runs an XPath expression scoped to unit, returning zero or more
	// node handles in document order. A query error is reported through err;
	// per spec §7 the caller treats any error as "no results" and proceeds.
	Query(unit *Unit, xpath string) ([]Node, error)

	// QueryFrom runs an XPath expression scoped to a node's subtree, used
	// when the method analyser queries within a single method element.
	QueryFrom(node Node, xpath string) ([]Node, error)

	// SetAttribute sets the "stereotype" attribute (or another named
	// attribute) on the element located by node.
	SetAttribute(node Node, name, value string) error

	// Serialize returns the annotated archive as text, preserving
	// byte-for-byte structure outside the attributes the engine adds
	// (spec §8's round-trip/byte-preservation property).
	Serialize() (string, error)
}

// Node is a handle to a single located XML element. Concrete Archive
// implementations define what lives behind it; the engine only ever passes
// a Node back into the same Archive it came from.
type Node interface {
	// Text returns the node's full text content, including descendants
	// (e.g. an entire call or return expression as source text).
	Text() string

	// Attr returns a named XML attribute on this element, if present.
	Attr(name string) (string, bool)

	// Tag returns the element's local name (e.g. "function", "constructor",
	// "destructor", "class", "struct"), used where the catalog's XPath
	// expressions alone can't distinguish a node kind the rules need (spec
	// §4.5's class_type query, §4.6 rule 1's constructor/destructor test).
	Tag() string
}
