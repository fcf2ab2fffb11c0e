// Package stereotype implements C7/C8, the ordered stereotype rule sets of
// spec §4.6 (method) and §4.7 (class).
//
// No single teacher file has an "ordered rule list accumulating labels"
// shape — the control-flow idiom here (one function per rule, called in a
// fixed order, each appending to a []string accumulator, with an early
// return reserved for the one preemptive rule) generalizes
// providers/base/provider.go's Transform switch-by-case dispatch from
// dispatch-by-operation to dispatch-by-rule.
package stereotype

import "github.com/oxhq/stereocode/core"

// methodRule is one entry in the fixed rule order of spec §4.6. It appends
// zero or more labels to stereotypes and reports whether evaluation should
// stop (only rule 1, constructor/destructor, stops early).
type methodRule func(m *core.Method, cfg LanguageHints, stereotypes []string) (out []string, stop bool)

// LanguageHints is the subset of langconf.Config the rule set needs, kept
// narrow so this package never imports langconf directly (the rules are
// data-driven, not language-aware beyond these facts).
type LanguageHints struct {
	Language             core.Language
	BooleanTypeNames     []string
	VoidReturnNames      []string
	VoidPointerIsNonVoid bool
	// NonVoidCommandAllowed is true for C++/C# (spec §4.6 rule 7: Java has
	// no non-void-command label).
	NonVoidCommandAllowed bool
}

var methodRules = []methodRule{
	ruleConstructorDestructor,
	ruleGet,
	rulePredicate,
	ruleProperty,
	ruleVoidAccessor,
	ruleSet,
	ruleCommand,
	ruleNonVoidCommand,
	ruleFactory,
	ruleWrapperControllerCollaborator,
	ruleIncidental,
	ruleStateless,
	ruleEmpty,
}

// ClassifyMethod runs the full §4.6 rule set against m and returns its
// stereotype label set. m.Stereotypes is also set as a side effect so
// callers that only have the Method in hand (e.g. the CSV report) see the
// same labels without re-running the rules.
func ClassifyMethod(m *core.Method, hints LanguageHints) []string {
	var labels []string
	for _, rule := range methodRules {
		out, stop := rule(m, hints, labels)
		labels = out
		if stop {
			break
		}
	}
	if len(labels) == 0 {
		labels = []string{"unclassified"}
	}
	m.Stereotypes = labels
	return labels
}

// Rule 1 (§4.6): constructor / destructor preempt every other rule and
// exclude the method from class-stereotype aggregation (model.Builder tracks
// ConstructorDestructorCount separately). A copy constructor is labelled
// "constructor"; no separate copy-constructor label is produced.
func ruleConstructorDestructor(m *core.Method, _ LanguageHints, labels []string) ([]string, bool) {
	if !m.IsConstructorDestructor {
		return labels, false
	}
	if m.IsDestructor {
		return append(labels, "destructor"), true
	}
	return append(labels, "constructor"), true
}

func isVoidReturn(m *core.Method, hints LanguageHints) bool {
	if m.ReturnTypeParsed == "" {
		return true
	}
	for _, v := range hints.VoidReturnNames {
		if m.ReturnTypeParsed == v {
			return !(hints.VoidPointerIsNonVoid && isPointerReturn(m))
		}
	}
	return false
}

func isPointerReturn(m *core.Method) bool {
	return len(m.ReturnTypeRaw) > 0 && m.ReturnTypeRaw[len(m.ReturnTypeRaw)-1] == '*'
}

func isBooleanReturn(m *core.Method, hints LanguageHints) bool {
	for _, b := range hints.BooleanTypeNames {
		if m.ReturnTypeParsed == b {
			return true
		}
	}
	return false
}

func usesAttributeOrIntraClassCall(m *core.Method) bool {
	return m.AttributesUsed || m.NumIntraClassCalls() > 0 || m.NumCallsOnAttributes() > 0
}

// Rule 2 (§4.6): get — at least one simple attribute return (excluding
// `return this`), return type not void.
func ruleGet(m *core.Method, hints LanguageHints, labels []string) ([]string, bool) {
	if isVoidReturn(m, hints) {
		return labels, false
	}
	if m.AttributeReturned {
		return append(labels, "get"), false
	}
	return labels, false
}

// Rule 3 (§4.6): predicate — boolean return, at least one complex return,
// and uses an attribute or makes an intra-class call.
func rulePredicate(m *core.Method, hints LanguageHints, labels []string) ([]string, bool) {
	if isBooleanReturn(m, hints) && m.AttributeNotReturned && usesAttributeOrIntraClassCall(m) {
		return append(labels, "predicate"), false
	}
	return labels, false
}

// Rule 4 (§4.6): property — non-void, non-boolean, non-empty return type;
// at least one complex return; uses an attribute or makes an intra-class
// call. Skipped when the method also qualifies as a strict factory.
func ruleProperty(m *core.Method, hints LanguageHints, labels []string) ([]string, bool) {
	if m.IsStrictFactory {
		return labels, false
	}
	if isVoidReturn(m, hints) || isBooleanReturn(m, hints) || m.ReturnTypeParsed == "" {
		return labels, false
	}
	if m.AttributeNotReturned && usesAttributeOrIntraClassCall(m) {
		return append(labels, "property"), false
	}
	return labels, false
}

// Rule 5 (§4.6): void-accessor — void return; a non-const reference
// parameter that is assigned; uses an attribute or makes an intra-class
// call.
func ruleVoidAccessor(m *core.Method, hints LanguageHints, labels []string) ([]string, bool) {
	if !isVoidReturn(m, hints) {
		return labels, false
	}
	if m.ParameterRefChangedNonConst && usesAttributeOrIntraClassCall(m) {
		return append(labels, "void-accessor"), false
	}
	return labels, false
}

// Rule 6 (§4.6): set — exactly one attribute modified; total (intra-class
// calls + calls on attributes) at most one.
func ruleSet(m *core.Method, _ LanguageHints, labels []string) ([]string, bool) {
	if m.NumAttributesModified == 1 && m.NumIntraClassCalls()+m.NumCallsOnAttributes() <= 1 {
		return append(labels, "set"), false
	}
	return labels, false
}

// commandQualifies implements the three-way disjunction of spec §4.6 rule 7
// (a/b/c), gated by the const-method carve-out: a const method only
// qualifies via the ≥2-attributes-modified case.
func commandQualifies(m *core.Method) bool {
	calls := m.NumIntraClassCalls() + m.NumCallsOnAttributes()
	switch {
	case m.NumAttributesModified >= 2:
		// always qualifies, even when const (spec §4.6 rule 7, §9).
		return true
	case m.IsConstMethod:
		return false
	case m.NumAttributesModified == 1 && calls >= 2:
		return true
	case m.NumAttributesModified == 0 && calls >= 1:
		return true
	default:
		return false
	}
}

// Rule 7 (§4.6): command — void-returning mutator/collaborator-dispatcher.
func ruleCommand(m *core.Method, hints LanguageHints, labels []string) ([]string, bool) {
	if !isVoidReturn(m, hints) {
		return labels, false
	}
	if commandQualifies(m) {
		return append(labels, "command"), false
	}
	return labels, false
}

// Rule 7 continued (§4.6): non-void-command — the same test, but for a
// method that also returns a value. C++/C# only; Java has no such label.
func ruleNonVoidCommand(m *core.Method, hints LanguageHints, labels []string) ([]string, bool) {
	if isVoidReturn(m, hints) || !hints.NonVoidCommandAllowed {
		return labels, false
	}
	if commandQualifies(m) {
		return append(labels, "non-void-command"), false
	}
	return labels, false
}

// Rule 8 (§4.6): factory — constructs and returns a fresh object, either on
// some return path (IsFactory) or on every return path (IsStrictFactory).
func ruleFactory(m *core.Method, _ LanguageHints, labels []string) ([]string, bool) {
	if m.IsFactory || m.IsStrictFactory {
		return append(labels, "factory"), false
	}
	return labels, false
}

// Rule 9 (§4.6): wrapper / controller / collaborator — mutually exclusive
// by construction (an if/else-if chain), and skipped entirely for an empty
// method body.
func ruleWrapperControllerCollaborator(m *core.Method, hints LanguageHints, labels []string) ([]string, bool) {
	if m.IsEmpty {
		return labels, false
	}
	noState := m.NumAttributesModified == 0 && m.NumIntraClassCalls() == 0 && m.NumCallsOnAttributes() == 0

	switch {
	case noState && m.NumExternalMethodCalls == 0 && m.NumExternalFunctionCalls >= 1:
		return append(labels, "wrapper"), false
	case noState && (m.NumExternalMethodCalls >= 1 || m.ExternalNonPrimitiveLocalOrParamAssigned):
		return append(labels, "controller"), false
	case isExternalCollaboratorSignature(m, hints):
		return append(labels, "collaborator"), false
	}
	return labels, false
}

func isExternalCollaboratorSignature(m *core.Method, hints LanguageHints) bool {
	if m.NonPrimitiveAttributeExternal || m.NonPrimitiveLocalExternal ||
		m.NonPrimitiveParameterExternal || m.NonPrimitiveReturnExternal {
		return true
	}
	if hints.Language == core.LangJava || !isPointerReturn(m) {
		return false
	}
	for _, v := range hints.VoidReturnNames {
		if m.ReturnTypeParsed == v {
			return true
		}
	}
	return false
}

// Rule 10 (§4.6): incidental — not empty; no attribute used (including no
// bare `this`); no calls of any kind (ignored calls excepted).
func ruleIncidental(m *core.Method, _ LanguageHints, labels []string) ([]string, bool) {
	if m.IsEmpty || m.AttributesUsed {
		return labels, false
	}
	if m.NumIntraClassCalls() == 0 && m.NumCallsOnAttributes() == 0 &&
		m.NumExternalMethodCalls == 0 && m.NumExternalFunctionCalls == 0 &&
		len(m.ConstructorCalls) == 0 {
		return append(labels, "incidental"), false
	}
	return labels, false
}

// Rule 11 (§4.6): stateless — not empty; no attribute used; no intra-class
// calls and no calls on attributes; at least one call to an external
// method, free function, or constructor.
func ruleStateless(m *core.Method, _ LanguageHints, labels []string) ([]string, bool) {
	if m.IsEmpty || m.AttributesUsed {
		return labels, false
	}
	if m.NumIntraClassCalls() != 0 || m.NumCallsOnAttributes() != 0 {
		return labels, false
	}
	if m.NumExternalMethodCalls > 0 || m.NumExternalFunctionCalls > 0 || len(m.ConstructorCalls) > 0 {
		return append(labels, "stateless"), false
	}
	return labels, false
}

// Rule 12 (§4.6): empty — the method body contains only comments. Can
// co-occur with any label rules 2-11 produced from the signature alone.
func ruleEmpty(m *core.Method, _ LanguageHints, labels []string) ([]string, bool) {
	if m.IsEmpty {
		return append(labels, "empty"), false
	}
	return labels, false
}
