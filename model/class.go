// Package model implements C6, the class model builder: one core.Class per
// class-shaped element in the archive, assembled from the XPath catalog plus
// the method analyser (spec §4.5).
//
// Grounded on providers/base/provider.go's New (a provider holding its own
// config) and providers/golang/config.go's expandVarDeclaration/expandVarSpec
// pattern — one AST node yielding several logical entries — reused here for
// C#'s property-accessor-as-synthetic-method expansion.
package model

import (
	"strings"

	"github.com/oxhq/stereocode/analysis"
	"github.com/oxhq/stereocode/core"
	"github.com/oxhq/stereocode/langconf"
	"github.com/oxhq/stereocode/normalize"
	"github.com/oxhq/stereocode/queries"
)

// Builder assembles core.Class values from archive elements.
type Builder struct {
	Archive  core.Archive
	Config   langconf.Config
	Analyser *analysis.Analyser
}

// New returns a Builder bound to one archive/language/analyser triple.
func New(archive core.Archive, cfg langconf.Config, analyser *analysis.Analyser) *Builder {
	return &Builder{Archive: archive, Config: cfg, Analyser: analyser}
}

// Build constructs a core.Class from classNode, an element the driver located
// within unit via one of the archive's class/struct/interface queries.
// unit.Index is recorded so a later partial-class merge (spec §4.5/§9) knows
// which unit this declaration's XPaths belong to.
func (b *Builder) Build(unit *core.Unit, classNode core.Node) (*core.Class, error) {
	lang := b.Config.Language()
	class := core.NewClass(unit, lang)
	class.Node = classNode
	class.StructureKind = structureKindFromTag(classNode.Tag())

	class.Names = b.buildNames(classNode)
	if raw := class.Names.Raw; raw != "" {
		class.XPathsByUnit[unit.Index] = append(class.XPathsByUnit[unit.Index], raw)
	}

	b.collectParents(class, classNode)
	b.collectAttributes(class, classNode)

	methodNodes, _ := b.queryFrom(classNode, queries.KindMethod)

	// First pass: the full method-name index, so the second pass's call
	// classification can recognise intra-class calls regardless of
	// declaration order (spec §4.5's two-pass note).
	methodNames := make(map[string]struct{}, len(methodNodes))
	for _, mn := range methodNodes {
		if name := b.firstChildText(mn, "./name"); name != "" {
			methodNames[name] = struct{}{}
		}
	}

	for _, mn := range methodNodes {
		method, err := b.Analyser.Analyze(class, mn, methodNames)
		if err != nil {
			continue
		}
		method.Node = mn
		method.XPath = class.Names.Bare + "::" + method.Name
		class.Methods = append(class.Methods, method)
		if method.IsConstructorDestructor {
			class.ConstructorDestructorCount++
		}
	}

	if lang == core.LangCSharp {
		b.expandProperties(class, classNode, methodNames)
	}

	return class, nil
}

// MergeInto folds a partial declaration's attributes, methods, and XPath
// locators into an already-built class (spec §4.5/§9: C# partial classes
// scatter one logical class across several type declarations, which may
// span several units). numOfCurrent bookmarks target.Methods' length
// immediately before the merge, so a caller that needs to know which methods
// came from which partial piece can slice target.Methods[numOfCurrent:]
// afterward.
func MergeInto(target *core.Class, partial *core.Class) (numOfCurrent int) {
	numOfCurrent = len(target.Methods)

	for name, v := range partial.Attributes {
		if name == core.ThisAttributeName {
			continue
		}
		if _, exists := target.Attributes[name]; !exists {
			target.Attributes[name] = v
		}
	}
	for name, v := range partial.NonPrivateAndInheritedAttributes {
		if _, exists := target.NonPrivateAndInheritedAttributes[name]; !exists {
			target.NonPrivateAndInheritedAttributes[name] = v
		}
	}
	for name, vis := range partial.Parents {
		if _, exists := target.Parents[name]; !exists {
			target.Parents[name] = vis
		}
	}
	target.Methods = append(target.Methods, partial.Methods...)
	target.ConstructorDestructorCount += partial.ConstructorDestructorCount
	for unitIdx, paths := range partial.XPathsByUnit {
		target.XPathsByUnit[unitIdx] = append(target.XPathsByUnit[unitIdx], paths...)
	}
	return numOfCurrent
}

func (b *Builder) buildNames(classNode core.Node) core.Names {
	raw := b.firstChildText(classNode, "./name")
	if raw == "" {
		return core.Names{}
	}
	lang := b.Config.Language()
	trimmed := normalize.Trim(raw)
	genericsStripped := normalize.RemoveBetweenCommas(trimmed)
	bare := normalize.BareName(trimmed, lang)
	return core.Names{
		Raw:              raw,
		Trimmed:          trimmed,
		GenericsStripped: genericsStripped,
		Bare:             bare,
	}
}

func (b *Builder) collectParents(class *core.Class, classNode core.Node) {
	parents, err := b.queryFrom(classNode, queries.KindParentName)
	if err != nil {
		return
	}
	def := b.Config.DefaultParentVisibility(class.StructureKind)
	for _, p := range parents {
		name := normalize.BareName(p.Text(), class.Language)
		if name == "" {
			continue
		}
		vis := def
		if specifier, ok := p.Attr("specifier"); ok {
			if parsed, ok := parseVisibility(specifier); ok {
				vis = parsed
			}
		}
		class.Parents[name] = vis
	}
}

func (b *Builder) collectAttributes(class *core.Class, classNode core.Node) {
	names, _ := b.queryFrom(classNode, queries.KindAttributeName)
	types, _ := b.queryFrom(classNode, queries.KindAttributeType)

	prevType := ""
	for i, n := range names {
		name := normalize.Trim(n.Text())
		if name == "" {
			continue
		}
		typeSrcML := ""
		if i < len(types) {
			typeSrcML = types[i].Text()
			if ref, ok := types[i].Attr("ref"); ok && ref == "prev" {
				typeSrcML = "prev"
			}
		}
		typ := normalize.ResolvePrev(normalize.Trim(typeSrcML), prevType)
		if typ != "" {
			prevType = typ
		}
		bare := normalize.BareName(typ, class.Language)
		nonPrimitive := bare != "" && !b.Analyser.Primitives.IsPrimitive(bare, class.Language)
		class.Attributes[name] = &core.Variable{
			Name:                   name,
			Type:                   typ,
			IsNonPrimitive:         nonPrimitive,
			IsExternalNonPrimitive: nonPrimitive && bare != class.Names.Bare,
		}
	}

	nonPrivNames, _ := b.queryFrom(classNode, queries.KindNonPrivateAttributeName)
	nonPrivTypes, _ := b.queryFrom(classNode, queries.KindNonPrivateAttributeType)
	prevType = ""
	for i, n := range nonPrivNames {
		name := normalize.Trim(n.Text())
		if name == "" {
			continue
		}
		typeSrcML := ""
		if i < len(nonPrivTypes) {
			typeSrcML = nonPrivTypes[i].Text()
			if ref, ok := nonPrivTypes[i].Attr("ref"); ok && ref == "prev" {
				typeSrcML = "prev"
			}
		}
		typ := normalize.ResolvePrev(normalize.Trim(typeSrcML), prevType)
		if typ != "" {
			prevType = typ
		}
		class.NonPrivateAndInheritedAttributes[name] = &core.Variable{Name: name, Type: typ}
	}
}

// expandProperties turns each C# property into one or two synthetic methods
// (its get/set accessor bodies), run back through the same Analyser so
// stereotype rules see properties exactly as they'd see a hand-written
// accessor method (spec §4.5).
func (b *Builder) expandProperties(class *core.Class, classNode core.Node, methodNames map[string]struct{}) {
	props, err := b.queryFrom(classNode, queries.KindProperty)
	if err != nil {
		return
	}
	for _, prop := range props {
		propName := b.firstChildText(prop, "./name")
		if propName == "" {
			continue
		}
		propTypeNodes, _ := b.queryFrom(prop, queries.KindPropertyType)
		propTypeRaw := ""
		if len(propTypeNodes) > 0 {
			propTypeRaw = normalize.Trim(propTypeNodes[0].Text())
		}
		propTypeParsed := normalize.BareName(propTypeRaw, class.Language)

		accessors, _ := b.queryFrom(prop, queries.KindPropertyMethod)
		for _, acc := range accessors {
			method, err := b.Analyser.Analyze(class, acc, methodNames)
			if err != nil {
				continue
			}
			if method.Name == "" {
				method.Name = propName
			}
			// The accessor's own <function> element carries no <type> child
			// (spec §4.5): the property's declared type lives on the
			// enclosing <property> element instead.
			method.ReturnTypeRaw = propTypeRaw
			method.ReturnTypeParsed = propTypeParsed
			method.Node = acc
			method.XPath = class.Names.Bare + "::" + propName
			class.Methods = append(class.Methods, method)
		}
	}
}

func (b *Builder) queryFrom(node core.Node, kind queries.Kind) ([]core.Node, error) {
	xpath, ok := queries.XPath(b.Config.Language(), kind)
	if !ok {
		return nil, nil
	}
	return b.Archive.QueryFrom(node, xpath)
}

func (b *Builder) firstChildText(node core.Node, xpath string) string {
	nodes, err := b.Archive.QueryFrom(node, xpath)
	if err != nil || len(nodes) == 0 {
		return ""
	}
	return normalize.Trim(nodes[0].Text())
}

func structureKindFromTag(tag string) core.StructureKind {
	switch tag {
	case "struct":
		return core.StructureStruct
	case "interface":
		return core.StructureInterface
	default:
		return core.StructureClass
	}
}

func parseVisibility(specifier string) (core.Visibility, bool) {
	switch strings.ToLower(strings.TrimSpace(specifier)) {
	case "public":
		return core.VisibilityPublic, true
	case "protected":
		return core.VisibilityProtected, true
	case "private":
		return core.VisibilityPrivate, true
	default:
		return "", false
	}
}
