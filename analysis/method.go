package analysis

import (
	"strings"

	"github.com/oxhq/stereocode/core"
	"github.com/oxhq/stereocode/langconf"
	"github.com/oxhq/stereocode/normalize"
	"github.com/oxhq/stereocode/primitives"
	"github.com/oxhq/stereocode/queries"
)

// Analyser is C5: it turns one method element into a fully populated
// core.Method (spec §4.4), running the catalog's per-method XPath queries
// against the element and the call-classification decision function of
// calls.go against every call site it finds.
//
// Grounded on providers/base/provider.go's checkNode (one node handed to a
// battery of small classification helpers), generalised here from one
// predicate per node kind to one analysis step per Method field.
type Analyser struct {
	Archive    core.Archive
	Primitives *primitives.Table
	Config     langconf.Config

	// KnownClassNames is the archive-wide set of bare class names the driver
	// collects in a prescan of all units before any class is built (spec
	// §4.5's two-pass note). Without cross-unit type resolution (a spec Non-goal)
	// this set is the only basis for distinguishing a type genuinely
	// external to the analysed codebase from one merely declared in a
	// different unit.
	KnownClassNames map[string]struct{}
}

// New returns an Analyser bound to one archive/primitive-table/language
// triple, reused across every method of every class in that language.
func New(archive core.Archive, table *primitives.Table, cfg langconf.Config) *Analyser {
	return &Analyser{
		Archive:         archive,
		Primitives:      table,
		Config:          cfg,
		KnownClassNames: make(map[string]struct{}),
	}
}

// Analyze populates every field of a core.Method from methodNode. methodNames
// is the enclosing class's full method-name index, built by the class model
// builder before Analyze is called on any one method (spec §4.5).
func (a *Analyser) Analyze(class *core.Class, methodNode core.Node, methodNames map[string]struct{}) (*core.Method, error) {
	lang := class.Language
	m := &core.Method{}

	tag := methodNode.Tag()
	m.IsConstructorDestructor = tag == "constructor" || tag == "destructor"
	m.IsDestructor = tag == "destructor"

	if names, err := a.queryFrom(methodNode, queries.KindMethodName); err == nil && len(names) > 0 {
		m.Name = normalize.Trim(names[0].Text())
	}

	if lists, err := a.queryFrom(methodNode, queries.KindParameterList); err == nil && len(lists) > 0 {
		m.ParametersList = normalize.Trim(lists[0].Text())
	}

	m.Parameters = a.collectVariables(methodNode, queries.KindParameter, lang)
	m.Locals = a.collectVariables(methodNode, queries.KindLocal, lang)

	if !m.IsConstructorDestructor {
		m.ReturnTypeRaw = a.methodReturnTypeRaw(methodNode)
		m.ReturnTypeParsed = normalize.BareName(m.ReturnTypeRaw, lang)
	}

	if lang == core.LangCPP && a.Config.SupportsConstMethods() {
		mods, _ := a.queryFrom(methodNode, queries.KindConstModifier)
		m.IsConstMethod = len(mods) > 0
	}

	classAttrNames := make(map[string]struct{}, len(class.Attributes))
	for name := range class.Attributes {
		classAttrNames[name] = struct{}{}
	}

	localAndParamTypes := make(map[string]string, len(m.Parameters)+len(m.Locals))
	externalNonPrimitiveLocalsAndParams := make(map[string]struct{})
	for _, v := range m.Parameters {
		localAndParamTypes[v.Name] = v.Type
		if v.IsExternalNonPrimitive {
			externalNonPrimitiveLocalsAndParams[v.Name] = struct{}{}
		}
	}
	for _, v := range m.Locals {
		localAndParamTypes[v.Name] = v.Type
		if v.IsExternalNonPrimitive {
			externalNonPrimitiveLocalsAndParams[v.Name] = struct{}{}
		}
	}

	knownTypes := a.knownTypeNames(class, m)
	a.classifyCalls(class, m, methodNode, methodNames, classAttrNames, localAndParamTypes, externalNonPrimitiveLocalsAndParams, knownTypes)

	a.analyzeAttributeUsage(class, m, methodNode)
	a.analyzeAssignmentsAndFactory(class, m, methodNode, lang, knownTypes)
	a.analyzeEmptiness(m, methodNode)
	a.analyzeNonPrimitiveFlags(class, m, methodNode, lang)

	return m, nil
}

func (a *Analyser) queryFrom(node core.Node, kind queries.Kind) ([]core.Node, error) {
	xpath, ok := queries.XPath(a.Config.Language(), kind)
	if !ok {
		return nil, nil
	}
	return a.Archive.QueryFrom(node, xpath)
}

func (a *Analyser) collectVariables(methodNode core.Node, kind queries.Kind, lang core.Language) []core.Variable {
	decls, err := a.queryFrom(methodNode, kind)
	if err != nil {
		return nil
	}
	vars := make([]core.Variable, 0, len(decls))
	for _, decl := range decls {
		name, typ := a.declNameAndType(decl)
		if name == "" {
			continue
		}
		bare := normalize.BareName(typ, lang)
		nonPrimitive := bare != "" && !a.Primitives.IsPrimitive(bare, lang)
		vars = append(vars, core.Variable{
			Name:                   name,
			Type:                   typ,
			IsNonPrimitive:         nonPrimitive,
			IsExternalNonPrimitive: nonPrimitive && a.isExternal(bare),
		})
	}
	return vars
}

func (a *Analyser) declNameAndType(decl core.Node) (name, typ string) {
	if names, err := a.Archive.QueryFrom(decl, "./name"); err == nil && len(names) > 0 {
		name = normalize.Trim(names[0].Text())
	}
	if types, err := a.Archive.QueryFrom(decl, "./type"); err == nil && len(types) > 0 {
		typ = normalize.Trim(types[0].Text())
	}
	return name, typ
}

func (a *Analyser) methodReturnTypeRaw(methodNode core.Node) string {
	types, err := a.Archive.QueryFrom(methodNode, "./type")
	if err != nil || len(types) == 0 {
		return ""
	}
	return normalize.Trim(types[0].Text())
}

// isExternal reports whether a bare, already-confirmed-non-primitive type
// name falls outside the archive-wide known-class index (spec §4.1's
// "external non-primitive" distinction).
func (a *Analyser) isExternal(bareName string) bool {
	if bareName == "" {
		return false
	}
	_, known := a.KnownClassNames[bareName]
	return !known
}

// knownTypeNames is the per-method scope langconf.Config.IsConstructorCallSyntax
// needs to recognise C++'s implicit "T(...)" construction syntax: the
// enclosing class's own name plus every non-primitive type spelled out in
// this method's signature, locals, and attributes.
func (a *Analyser) knownTypeNames(class *core.Class, m *core.Method) map[string]struct{} {
	known := make(map[string]struct{})
	add := func(bare string) {
		if bare != "" && !a.Primitives.IsPrimitive(bare, class.Language) {
			known[bare] = struct{}{}
		}
	}
	add(class.Names.Bare)
	add(m.ReturnTypeParsed)
	for _, p := range m.Parameters {
		add(normalize.BareName(p.Type, class.Language))
	}
	for _, l := range m.Locals {
		add(normalize.BareName(l.Type, class.Language))
	}
	for _, v := range class.Attributes {
		if v.Type == "" {
			continue
		}
		add(normalize.BareName(v.Type, class.Language))
	}
	return known
}

func (a *Analyser) classifyCalls(
	class *core.Class,
	m *core.Method,
	methodNode core.Node,
	methodNames map[string]struct{},
	classAttrNames map[string]struct{},
	localAndParamTypes map[string]string,
	externalNonPrimitiveLocalsAndParams map[string]struct{},
	knownTypes map[string]struct{},
) {
	calls, err := a.queryFrom(methodNode, queries.KindCallExpr)
	if err != nil {
		return
	}
	classBareName := class.Names.Bare
	for _, callNode := range calls {
		site := ParseCallExpression(callNode.Text(), class.Language)
		category := ClassifyCall(site, a.Config, classBareName, methodNames, classAttrNames, localAndParamTypes, externalNonPrimitiveLocalsAndParams, knownTypes)
		switch category {
		case CallIgnored:
			continue
		case CallConstructor:
			m.ConstructorCalls = append(m.ConstructorCalls, site.CalleeBare)
		case CallIntraClassFunction:
			m.FunctionCalls = append(m.FunctionCalls, site.CalleeBare)
		case CallOnAttribute:
			m.MethodCalls = append(m.MethodCalls, site.CalleeBare)
		case CallExternalMethod:
			m.NumExternalMethodCalls++
		case CallExternalFunction:
			m.NumExternalFunctionCalls++
		}
	}
}

// analyzeAttributeUsage populates AttributesUsed, AttributeReturned,
// AttributeNotReturned, and NumAttributesModified by scanning the method's
// text for whole-word matches of the class's attribute names, including the
// synthetic "this" entry (spec §4.4, §4.6's accessor-side rules).
func (a *Analyser) analyzeAttributeUsage(class *core.Class, m *core.Method, methodNode core.Node) {
	body := methodNode.Text()
	for name := range class.Attributes {
		if containsWholeWord(body, name) {
			m.AttributesUsed = true
			break
		}
	}

	if returns, err := a.queryFrom(methodNode, queries.KindReturnExpr); err == nil {
		for _, r := range returns {
			expr := normalize.Trim(r.Text())
			if expr == "" {
				continue
			}
			if _, isAttr := class.Attributes[expr]; isAttr && expr != core.ThisAttributeName {
				m.AttributeReturned = true
			} else {
				m.AttributeNotReturned = true
			}
		}
	}

	if targets, err := a.queryFrom(methodNode, queries.KindAssignmentTarget); err == nil {
		seen := make(map[string]struct{})
		for _, t := range targets {
			name := normalize.Trim(t.Text())
			if _, isAttr := class.Attributes[name]; !isAttr {
				continue
			}
			if _, already := seen[name]; already {
				continue
			}
			seen[name] = struct{}{}
			m.NumAttributesModified++
		}
	}
}

// analyzeAssignmentsAndFactory detects IsFactory/IsStrictFactory (spec §4.6
// rule 8): a method whose return type is non-primitive and which either
// returns a freshly constructed object directly, or returns a local declared
// with a constructor-call initializer. It is a factory when at least one
// return does so, and a strict factory when every return does. Later
// reassignments of such a local are not examined, and attributes are not
// tracked as constructed values.
func (a *Analyser) analyzeAssignmentsAndFactory(class *core.Class, m *core.Method, methodNode core.Node, lang core.Language, knownTypes map[string]struct{}) {
	if m.IsConstructorDestructor || m.ReturnTypeParsed == "" {
		return
	}
	if a.Primitives.IsPrimitive(m.ReturnTypeParsed, lang) {
		return
	}

	returns, _ := a.queryFrom(methodNode, queries.KindReturnExpr)
	declTargets, _ := a.queryFrom(methodNode, queries.KindDeclInitTarget)
	declExprs, _ := a.queryFrom(methodNode, queries.KindDeclInitExpr)

	constructedLocals := make(map[string]struct{})
	for i := range declTargets {
		if i >= len(declExprs) {
			break
		}
		if a.exprConstructsObject(declExprs[i].Text(), lang, knownTypes) {
			constructedLocals[normalize.Trim(declTargets[i].Text())] = struct{}{}
		}
	}

	allConstruct := len(returns) > 0
	for _, r := range returns {
		expr := normalize.Trim(r.Text())
		_, viaLocal := constructedLocals[expr]
		if !a.exprConstructsObject(expr, lang, knownTypes) && !viaLocal {
			allConstruct = false
			continue
		}
		m.IsFactory = true
	}
	m.IsStrictFactory = m.IsFactory && allConstruct
}

// exprConstructsObject reports whether expr is a direct construction of some
// type (spec §4.6 rule 8's factory test), reusing the same call-site
// classification pipeline classifyCalls runs against method bodies rather
// than a bare substring check, so C++'s "T(...)" value-construction syntax
// (no "new" keyword) is recognised alongside C#/Java's "new T(...)".
func (a *Analyser) exprConstructsObject(expr string, lang core.Language, knownTypes map[string]struct{}) bool {
	site := ParseCallExpression(expr, lang)
	return a.Config.IsConstructorCallSyntax(site.CalleeBare, site.HasNew, knownTypes)
}

// analyzeEmptiness populates IsEmpty (spec §4.6 rule 12): no statements other
// than comments in the method's body block.
func (a *Analyser) analyzeEmptiness(m *core.Method, methodNode core.Node) {
	stmts, err := a.queryFrom(methodNode, queries.KindStatement)
	if err != nil {
		return
	}
	for _, s := range stmts {
		if s.Tag() != "comment" {
			m.IsEmpty = false
			return
		}
	}
	m.IsEmpty = true
}

// analyzeNonPrimitiveFlags populates the five "external non-primitive"
// carve-outs (spec §4.6 rules 5/6/9/10) and the two mutation flags
// ParameterRefChangedNonConst/NonPrimitiveLocalOrParameterChanged.
func (a *Analyser) analyzeNonPrimitiveFlags(class *core.Class, m *core.Method, methodNode core.Node, lang core.Language) {
	for _, p := range m.Parameters {
		if p.IsExternalNonPrimitive {
			m.NonPrimitiveParameterExternal = true
			break
		}
	}
	for _, l := range m.Locals {
		if l.IsExternalNonPrimitive {
			m.NonPrimitiveLocalExternal = true
			break
		}
	}
	for name, v := range class.Attributes {
		if name == core.ThisAttributeName || v.Type == "" {
			continue
		}
		bare := normalize.BareName(v.Type, lang)
		if bare != "" && !a.Primitives.IsPrimitive(bare, lang) && a.isExternal(bare) {
			m.NonPrimitiveAttributeExternal = true
			break
		}
	}
	if m.ReturnTypeParsed != "" && !a.Primitives.IsPrimitive(m.ReturnTypeParsed, lang) && a.isExternal(m.ReturnTypeParsed) {
		m.NonPrimitiveReturnExternal = true
	}

	targets, err := a.queryFrom(methodNode, queries.KindAssignmentTarget)
	if err != nil {
		return
	}
	paramNames := make(map[string]struct{}, len(m.Parameters))
	paramTypes := make(map[string]string, len(m.Parameters))
	for _, p := range m.Parameters {
		paramNames[p.Name] = struct{}{}
		paramTypes[p.Name] = p.Type
	}
	nonPrimitiveNames := make(map[string]struct{}, len(m.Parameters)+len(m.Locals))
	for _, p := range m.Parameters {
		if p.IsNonPrimitive {
			nonPrimitiveNames[p.Name] = struct{}{}
		}
	}
	for _, l := range m.Locals {
		if l.IsNonPrimitive {
			nonPrimitiveNames[l.Name] = struct{}{}
		}
	}
	extParamNames := make(map[string]struct{})
	for _, p := range m.Parameters {
		if p.IsExternalNonPrimitive {
			extParamNames[p.Name] = struct{}{}
		}
	}
	extLocalNames := make(map[string]struct{})
	for _, l := range m.Locals {
		if l.IsExternalNonPrimitive {
			extLocalNames[l.Name] = struct{}{}
		}
	}

	for _, t := range targets {
		name := normalize.Trim(t.Text())
		if _, isParam := paramNames[name]; isParam && isNonConstReferenceType(paramTypes[name]) {
			m.ParameterRefChangedNonConst = true
		}
		if _, isNonPrimitive := nonPrimitiveNames[name]; isNonPrimitive {
			m.NonPrimitiveLocalOrParameterChanged = true
		}
		if _, isExt := extParamNames[name]; isExt {
			m.ExternalNonPrimitiveLocalOrParamAssigned = true
		}
		if _, isExt := extLocalNames[name]; isExt {
			m.ExternalNonPrimitiveLocalOrParamAssigned = true
		}
	}
}

// isNonConstReferenceType reports whether a parameter's declared type is a
// C++-style non-const reference ("T&", not "const T&"). Spec §4.6 rule 5
// (void-accessor) is specifically about a reference parameter the method
// mutates; value parameters and const references don't qualify.
func isNonConstReferenceType(typ string) bool {
	typ = strings.TrimSpace(typ)
	if !strings.HasSuffix(typ, "&") {
		return false
	}
	return !containsWholeWord(typ, "const")
}

func containsWholeWord(haystack, word string) bool {
	if word == "" {
		return false
	}
	idx := 0
	for {
		pos := strings.Index(haystack[idx:], word)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(word)
		var before, after byte
		if start > 0 {
			before = haystack[start-1]
		}
		if end < len(haystack) {
			after = haystack[end]
		}
		if !isIdentByte(before) && !isIdentByte(after) {
			return true
		}
		idx = start + 1
	}
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
