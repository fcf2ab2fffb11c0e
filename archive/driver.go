package archive

import (
	"strings"

	"github.com/oxhq/stereocode/analysis"
	"github.com/oxhq/stereocode/core"
	"github.com/oxhq/stereocode/langconf"
	"github.com/oxhq/stereocode/langconf/cpp"
	"github.com/oxhq/stereocode/langconf/csharp"
	"github.com/oxhq/stereocode/langconf/java"
	"github.com/oxhq/stereocode/model"
	"github.com/oxhq/stereocode/normalize"
	"github.com/oxhq/stereocode/primitives"
	"github.com/oxhq/stereocode/queries"
	"github.com/oxhq/stereocode/stereotype"
)

// Driver is C9: it walks an archive's units in document order, builds and
// classifies every class and method, and writes the resulting stereotype
// labels back through core.Archive (spec §5).
//
// Grounded on providers/catalog's Register/Languages registry use in
// cmd/morfx/main.go's startup wiring — the driver is this repo's
// composition root, the analogous "for each unit, look up its language
// config, run the pipeline" loop the teacher's CLI performs per file.
type Driver struct {
	Archive      core.Archive
	Primitives   *primitives.Table
	Configs      map[core.Language]langconf.Config
	ClassOptions stereotype.ClassOptions

	// ClassesOnly/MethodsOnly mirror the CLI's --classes-only/--methods-only
	// flags (spec §6's supplemented feature): both stereotype levels are
	// always computed (class rules need every method's label first), but
	// annotation writing is restricted to the requested level.
	ClassesOnly bool
	MethodsOnly bool
}

// NewDriver builds a Driver with the three built-in language configs wired
// in (spec §3's closed C++/C#/Java language set).
func NewDriver(arc core.Archive, table *primitives.Table, opts stereotype.ClassOptions) *Driver {
	return &Driver{
		Archive: arc,
		Primitives: table,
		Configs: map[core.Language]langconf.Config{
			core.LangCPP:    cpp.New(),
			core.LangCSharp: csharp.New(),
			core.LangJava:   java.New(),
		},
		ClassOptions: opts,
	}
}

// Run executes the full pipeline: build every class (merging every
// declaration that shares a language and bare name, as C# partial classes
// do, spec §4.5/§9), classify every method then every
// class, and return the classes in first-seen document order. It does not
// write annotations back; call Annotate for that once the caller has
// inspected the result (e.g. to produce the CSV report first).
func (d *Driver) Run() ([]*core.Class, error) {
	known := d.prescanClassNames()

	analysers := make(map[core.Language]*analysis.Analyser, len(d.Configs))
	builders := make(map[core.Language]*model.Builder, len(d.Configs))
	for lang, cfg := range d.Configs {
		if !d.Primitives.HasLanguage(lang) {
			return nil, core.NewPrimitiveTableMissingLanguageError(lang)
		}
		a := analysis.New(d.Archive, d.Primitives, cfg)
		a.KnownClassNames = known
		analysers[lang] = a
		builders[lang] = model.New(d.Archive, cfg, a)
	}

	merged := make(map[string]*core.Class)
	var order []string

	for _, unit := range d.Archive.Units() {
		builder, ok := builders[unit.Language]
		if !ok {
			continue
		}
		classXPath, ok := queries.XPath(unit.Language, queries.KindClassRoot)
		if !ok {
			continue
		}
		classNodes, err := d.Archive.Query(unit, classXPath)
		if err != nil {
			continue
		}
		for _, cn := range classNodes {
			built, err := builder.Build(unit, cn)
			if err != nil || built.Names.IsAnonymous() {
				continue
			}
			key := string(unit.Language) + "::" + built.Names.Bare
			if existing, ok := merged[key]; ok {
				model.MergeInto(existing, built)
				continue
			}
			merged[key] = built
			order = append(order, key)
		}
	}

	classes := make([]*core.Class, 0, len(order))
	for _, key := range order {
		class := merged[key]
		cfg := d.Configs[class.Language]
		hints := stereotype.LanguageHints{
			Language:              class.Language,
			BooleanTypeNames:      cfg.BooleanTypeNames(),
			VoidReturnNames:       cfg.VoidReturnTypeNames(),
			VoidPointerIsNonVoid:  cfg.VoidPointerIsNonVoid(),
			NonVoidCommandAllowed: class.Language != core.LangJava,
		}
		for _, m := range class.Methods {
			stereotype.ClassifyMethod(m, hints)
		}
		stereotype.ClassifyClass(class, d.ClassOptions)
		classes = append(classes, class)
	}
	return classes, nil
}

// Annotate writes the "stereotype" attribute back onto every class and/or
// method element Run built, honoring ClassesOnly/MethodsOnly.
func (d *Driver) Annotate(classes []*core.Class) error {
	for _, class := range classes {
		if !d.MethodsOnly && class.Node != nil {
			if err := d.Archive.SetAttribute(class.Node, "stereotype", strings.Join(class.Stereotypes, " ")); err != nil {
				return err
			}
		}
		if d.ClassesOnly {
			continue
		}
		for _, m := range class.Methods {
			if m.Node == nil {
				continue
			}
			if err := d.Archive.SetAttribute(m.Node, "stereotype", strings.Join(m.Stereotypes, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}

// prescanClassNames builds the archive-wide set of bare class names every
// Analyser needs to tell an external non-primitive type from one declared
// somewhere else in this same archive (spec §4.1).
func (d *Driver) prescanClassNames() map[string]struct{} {
	known := make(map[string]struct{})
	for _, unit := range d.Archive.Units() {
		classXPath, ok := queries.XPath(unit.Language, queries.KindClassRoot)
		if !ok {
			continue
		}
		classNodes, err := d.Archive.Query(unit, classXPath)
		if err != nil {
			continue
		}
		for _, cn := range classNodes {
			names, err := d.Archive.QueryFrom(cn, "./name")
			if err != nil || len(names) == 0 {
				continue
			}
			bare := normalize.BareName(names[0].Text(), unit.Language)
			if bare != "" {
				known[bare] = struct{}{}
			}
		}
	}
	return known
}
