// Package archive provides the archive driver (C9) and one concrete
// core.Archive implementation, XMLArchive, built on encoding/xml plus a
// hand-rolled restricted XPath subset (child/descendant/following-sibling
// axes, union, and a handful of predicate forms) — see DESIGN.md for why
// this is the one component in the repo built on the standard library
// rather than a third-party dependency: no XML/XPath library appears
// anywhere in the retrieved example pack, and the real XPath engine is
// specified as an external collaborator (spec §1, §6) the engine is built
// against only at the interface, not a production requirement of this
// reference implementation.
package archive

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/oxhq/stereocode/core"
)

type content struct {
	text string
	elem *xmlNode
}

type xmlNode struct {
	tag      string
	attrs    []xml.Attr
	children []content
	parent   *xmlNode
}

func (n *xmlNode) attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *xmlNode) setAttr(name, value string) {
	for i, a := range n.attrs {
		if a.Name.Local == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

func (n *xmlNode) text() string {
	var sb strings.Builder
	var walk func(*xmlNode)
	walk = func(cur *xmlNode) {
		for _, c := range cur.children {
			if c.elem != nil {
				walk(c.elem)
			} else {
				sb.WriteString(c.text)
			}
		}
	}
	walk(n)
	return sb.String()
}

func (n *xmlNode) elementChildren() []*xmlNode {
	var out []*xmlNode
	for _, c := range n.children {
		if c.elem != nil {
			out = append(out, c.elem)
		}
	}
	return out
}

// nodeHandle is the core.Node this archive hands back to callers.
type nodeHandle struct{ n *xmlNode }

func (h nodeHandle) Text() string { return h.n.text() }
func (h nodeHandle) Attr(name string) (string, bool) { return h.n.attr(name) }
func (h nodeHandle) Tag() string { return h.n.tag }

func wrap(nodes []*xmlNode) []core.Node {
	out := make([]core.Node, len(nodes))
	for i, n := range nodes {
		out[i] = nodeHandle{n}
	}
	return out
}

func unwrap(n core.Node) *xmlNode {
	h, ok := n.(nodeHandle)
	if !ok {
		return nil
	}
	return h.n
}

// XMLArchive is the reference core.Archive implementation.
type XMLArchive struct {
	docRoot    *xmlNode
	nodeByUnit map[int]*xmlNode
	units      []*core.Unit
	warnings   []*core.EngineError
}

// Load parses r into an XMLArchive. A malformed document (unparsable XML, no
// <unit> elements, a <unit> with no language attribute) is fatal (spec §7);
// a <unit> whose language attribute
// isn't recognised is kept for round-trip serialisation but omitted from
// Units(), with a warning recorded in Warnings().
func Load(r io.Reader) (*XMLArchive, error) {
	dec := xml.NewDecoder(r)
	var root *xmlNode
	var stack []*xmlNode

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.NewMalformedArchiveError(err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &xmlNode{tag: t.Name.Local, attrs: append([]xml.Attr{}, t.Attr...)}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				n.parent = parent
				parent.children = append(parent.children, content{elem: n})
			}
			stack = append(stack, n)
			if root == nil {
				root = n
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, core.NewMalformedArchiveError("unbalanced closing tag")
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				cur := stack[len(stack)-1]
				cur.children = append(cur.children, content{text: string(t)})
			}
		}
	}
	if root == nil {
		return nil, core.NewMalformedArchiveError("empty document")
	}
	return buildArchive(root)
}

func buildArchive(root *xmlNode) (*XMLArchive, error) {
	var unitNodes []*xmlNode
	if root.tag == "unit" {
		unitNodes = []*xmlNode{root}
	} else {
		for _, c := range root.elementChildren() {
			if c.tag == "unit" {
				unitNodes = append(unitNodes, c)
			}
		}
	}
	if len(unitNodes) == 0 {
		return nil, core.NewMalformedArchiveError("no <unit> elements found")
	}

	a := &XMLArchive{docRoot: root, nodeByUnit: make(map[int]*xmlNode)}
	for i, un := range unitNodes {
		a.nodeByUnit[i] = un
		raw, hasLang := un.attr("language")
		if !hasLang {
			return nil, core.NewMalformedArchiveError("unit " + strconv.Itoa(i) + " has no language attribute")
		}
		lang, ok := mapLanguage(raw)
		if !ok {
			a.warnings = append(a.warnings, core.NewUnknownLanguageError(i, raw))
			continue
		}
		a.units = append(a.units, &core.Unit{Index: i, Language: lang})
	}
	return a, nil
}

func mapLanguage(raw string) (core.Language, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "c++", "cpp":
		return core.LangCPP, true
	case "c#", "csharp", "cs":
		return core.LangCSharp, true
	case "java":
		return core.LangJava, true
	default:
		return "", false
	}
}

// Warnings returns the non-fatal per-unit problems accumulated during Load
// (spec §7's "skip the unit, keep going" path).
func (a *XMLArchive) Warnings() []*core.EngineError { return a.warnings }

func (a *XMLArchive) Units() []*core.Unit { return a.units }

func (a *XMLArchive) Query(unit *core.Unit, xpath string) ([]core.Node, error) {
	un, ok := a.nodeByUnit[unit.Index]
	if !ok {
		return nil, core.NewMalformedArchiveError("unknown unit index")
	}
	return wrap(evalPath([]*xmlNode{un}, xpath)), nil
}

func (a *XMLArchive) QueryFrom(node core.Node, xpath string) ([]core.Node, error) {
	n := unwrap(node)
	if n == nil {
		return nil, core.NewMalformedArchiveError("node not from this archive")
	}
	return wrap(evalPath([]*xmlNode{n}, xpath)), nil
}

func (a *XMLArchive) SetAttribute(node core.Node, name, value string) error {
	n := unwrap(node)
	if n == nil {
		return core.NewMalformedArchiveError("node not from this archive")
	}
	n.setAttr(name, value)
	return nil
}

func (a *XMLArchive) Serialize() (string, error) {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	serializeNode(a.docRoot, &sb)
	return sb.String(), nil
}

func serializeNode(n *xmlNode, sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(n.tag)
	for _, a := range n.attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name.Local)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(a.Value))
		sb.WriteByte('"')
	}
	if len(n.children) == 0 {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	for _, c := range n.children {
		if c.elem != nil {
			serializeNode(c.elem, sb)
		} else {
			sb.WriteString(escapeText(c.text))
		}
	}
	sb.WriteString("</")
	sb.WriteString(n.tag)
	sb.WriteByte('>')
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// --- restricted XPath subset ---

type step struct {
	axis      string // "child", "descendant", "following-sibling"
	name      string
	predicate string
}

func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		default:
			if s[i] == sep && depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func parseAlternative(s string) []step {
	parts := splitTopLevel(strings.TrimSpace(s), '/')
	var steps []step
	descendant := false
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "." || p == "" {
			if p == "" {
				descendant = true
			}
			continue
		}
		axis := "child"
		name := p
		if strings.HasPrefix(p, "following-sibling::") {
			axis = "following-sibling"
			name = strings.TrimPrefix(p, "following-sibling::")
		} else if descendant {
			axis = "descendant"
		}
		descendant = false

		predicate := ""
		if idx := strings.IndexByte(name, '['); idx >= 0 && strings.HasSuffix(name, "]") {
			predicate = name[idx+1 : len(name)-1]
			name = name[:idx]
		}
		steps = append(steps, step{axis: axis, name: name, predicate: predicate})
	}
	return steps
}

func evalPath(ctx []*xmlNode, path string) []*xmlNode {
	var all []*xmlNode
	for _, alt := range splitTopLevel(path, '|') {
		all = append(all, evalSteps(ctx, parseAlternative(alt))...)
	}
	return dedup(all)
}

func evalSteps(ctx []*xmlNode, steps []step) []*xmlNode {
	current := ctx
	for _, st := range steps {
		var next []*xmlNode
		for _, node := range current {
			switch st.axis {
			case "child":
				for _, child := range node.elementChildren() {
					if child.tag == st.name {
						next = append(next, child)
					}
				}
			case "descendant":
				next = append(next, descendantsByName(node, st.name)...)
			case "following-sibling":
				next = append(next, followingSiblingsByName(node, st.name)...)
			}
		}
		if st.predicate != "" {
			next = filterPredicate(next, st.predicate)
		}
		current = next
	}
	return current
}

func descendantsByName(n *xmlNode, name string) []*xmlNode {
	var out []*xmlNode
	var walk func(*xmlNode)
	walk = func(cur *xmlNode) {
		for _, c := range cur.elementChildren() {
			if c.tag == name {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func followingSiblingsByName(n *xmlNode, name string) []*xmlNode {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.elementChildren()
	idx := -1
	for i, s := range siblings {
		if s == n {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	var out []*xmlNode
	for _, s := range siblings[idx+1:] {
		if s.tag == name {
			out = append(out, s)
		}
	}
	return out
}

func filterPredicate(nodes []*xmlNode, pred string) []*xmlNode {
	pred = strings.TrimSpace(pred)
	if n, err := strconv.Atoi(pred); err == nil {
		idx := n - 1
		if idx >= 0 && idx < len(nodes) {
			return []*xmlNode{nodes[idx]}
		}
		return nil
	}
	var out []*xmlNode
	for _, node := range nodes {
		if evalPredicateForNode(node, pred) {
			out = append(out, node)
		}
	}
	return out
}

func evalPredicateForNode(node *xmlNode, pred string) bool {
	if strings.HasPrefix(pred, "not(") && strings.HasSuffix(pred, ")") {
		return !evalPredicateForNode(node, pred[4:len(pred)-1])
	}
	if eqIdx := findTopLevelEquals(pred); eqIdx >= 0 {
		lhsPath := strings.TrimSpace(pred[:eqIdx])
		rhs := strings.Trim(strings.TrimSpace(pred[eqIdx+1:]), `'"`)
		if lhsPath == "." {
			return strings.TrimSpace(node.text()) == rhs
		}
		results := evalSteps([]*xmlNode{node}, parseAlternative(lhsPath))
		for _, r := range results {
			if strings.TrimSpace(r.text()) == rhs {
				return true
			}
		}
		return false
	}
	results := evalSteps([]*xmlNode{node}, parseAlternative(pred))
	return len(results) > 0
}

func findTopLevelEquals(s string) int {
	depth := 0
	inQuote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote != 0 {
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			inQuote = c
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case '=':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func dedup(nodes []*xmlNode) []*xmlNode {
	seen := make(map[*xmlNode]struct{}, len(nodes))
	out := make([]*xmlNode, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
