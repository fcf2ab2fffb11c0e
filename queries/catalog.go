// Package queries implements C2, the XPath catalog: a static map from
// (language, kind) to an XPath expression (spec §4.2). It holds the
// language-specific queries; a few language-neutral lookups ("./name",
// "./type", the constructor/destructor/comment tag tests) are written inline
// in the analysis, model and archive packages.
//
// Grounded on providers/golang/config.go's aliasMap() (a map[string][]string
// returned by a method, looked up by query type) — same shape, here the
// values are XPath strings addressing a srcML-shaped XML AST instead of
// tree-sitter node-type names.
package queries

import "github.com/oxhq/stereocode/core"

// Kind enumerates the query kinds the catalog recognises: the exhaustive
// class-model-builder set of spec §4.2, plus a handful of sub-queries the
// method analyser (C5) runs within a single method's subtree. Both sets are
// equally language-specific and XPath-addressed, so both live here.
type Kind string

const (
	KindClassName               Kind = "class_name"
	KindClassType                Kind = "class_type"
	KindParentName                Kind = "parent_name"
	KindAttributeName             Kind = "attribute_name"
	KindAttributeType             Kind = "attribute_type"
	KindNonPrivateAttributeName   Kind = "non_private_attribute_name"
	KindNonPrivateAttributeType   Kind = "non_private_attribute_type"
	KindMethod                    Kind = "method"
	KindProperty                  Kind = "property"
	KindPropertyType              Kind = "property_type"
	KindPropertyMethod            Kind = "property_method"

	KindMethodName       Kind = "method_name"
	KindParameterList    Kind = "parameter_list"
	KindParameter        Kind = "parameter"
	KindParameterType    Kind = "parameter_type"
	KindLocal            Kind = "local"
	KindLocalType        Kind = "local_type"
	KindReturnExpr       Kind = "return_expr"
	KindCallExpr         Kind = "call_expr"
	KindAssignmentTarget Kind = "assignment_target"
	KindAssignmentExpr   Kind = "assignment_expr"
	KindDeclInitTarget   Kind = "decl_init_target"
	KindDeclInitExpr     Kind = "decl_init_expr"
	KindStatement        Kind = "statement"
	KindConstModifier    Kind = "const_modifier"
	KindClassRoot        Kind = "class_root"
)

type key struct {
	language core.Language
	kind     Kind
}

// shared holds the XPath expressions common to C#/Java, whose attribute
// model has no public/protected/private split in the AST shape (visibility
// is a `specifier` sibling, not a separate block). C++ overrides the
// attribute-related entries below for its public/protected/private blocks.
var shared = map[Kind]string{
	KindClassName:             "./name",
	KindParentName:            "./super_list/super/name",
	KindAttributeName:         "./block/decl_stmt/decl/name",
	KindAttributeType:         "./block/decl_stmt/decl/type",
	KindNonPrivateAttributeName: "./block/decl_stmt[not(./specifier[.='private'])]/decl/name",
	KindNonPrivateAttributeType: "./block/decl_stmt[not(./specifier[.='private'])]/decl/type",
	KindMethod:                ".//function | .//constructor | .//destructor",
	KindMethodName:            "./name",
	KindParameterList:         "./parameter_list",
	KindParameter:             "./parameter_list/parameter/decl",
	KindParameterType:         "./parameter_list/parameter/decl/type",
	KindLocal:                 ".//block/decl_stmt/decl",
	KindLocalType:             ".//block/decl_stmt/decl/type",
	KindReturnExpr:            ".//return/expr",
	KindCallExpr:              ".//call",
	KindAssignmentTarget:      ".//expr_stmt/expr/name[following-sibling::operator[1]='=']",
	KindAssignmentExpr:        ".//expr_stmt/expr/name[following-sibling::operator[1]='=']/following-sibling::*[1]",
	KindDeclInitTarget:        ".//decl_stmt/decl[./init]/name",
	KindDeclInitExpr:          ".//decl_stmt/decl[./init]/init/expr",
	KindStatement:             "./block/*",
	KindClassRoot:             ".//class | .//struct | .//interface",
}

var catalog = map[key]string{}

func init() {
	for lang := range map[core.Language]bool{core.LangCPP: true, core.LangCSharp: true, core.LangJava: true} {
		for kind, expr := range shared {
			catalog[key{lang, kind}] = expr
		}
	}

	// C++: attributes live under visibility-specific blocks, parents carry
	// an explicit visibility (spec §3), and class/struct/interface differ
	// in default inheritance visibility (spec §4.5's class_type query).
	catalog[key{core.LangCPP, KindAttributeName}] = "./block/private/decl_stmt/decl/name | ./block/public/decl_stmt/decl/name | ./block/protected/decl_stmt/decl/name"
	catalog[key{core.LangCPP, KindAttributeType}] = "./block/private/decl_stmt/decl/type | ./block/public/decl_stmt/decl/type | ./block/protected/decl_stmt/decl/type"
	catalog[key{core.LangCPP, KindNonPrivateAttributeName}] = "./block/public/decl_stmt/decl/name | ./block/protected/decl_stmt/decl/name"
	catalog[key{core.LangCPP, KindNonPrivateAttributeType}] = "./block/public/decl_stmt/decl/type | ./block/protected/decl_stmt/decl/type"
	catalog[key{core.LangCPP, KindConstModifier}] = "./type/specifier[.='const']"

	// Java has no destructors.
	catalog[key{core.LangJava, KindMethod}] = ".//function | .//constructor"

	// C# property accessors (spec §4.5).
	catalog[key{core.LangCSharp, KindParentName}] = "./super_list/super/name"
	catalog[key{core.LangCSharp, KindProperty}] = "./block/property"
	catalog[key{core.LangCSharp, KindPropertyType}] = "./type"
	catalog[key{core.LangCSharp, KindPropertyMethod}] = "./block/function"

	// Java implements/extends both contribute to the parent set.
	catalog[key{core.LangJava, KindParentName}] = "./super_list/extends/name | ./super_list/implements/name"
}

// XPath looks up the catalog entry for (language, kind). The empty string
// and false are returned when the catalog has no entry, which the caller
// treats identically to an XPath query returning no results (spec §7).
func XPath(language core.Language, kind Kind) (string, bool) {
	expr, ok := catalog[key{language, kind}]
	return expr, ok
}
