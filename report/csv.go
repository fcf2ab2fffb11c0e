// Package report implements the supplemented CSV report and the unified
// diff between an input archive and its annotated output (SPEC_FULL.md's
// supplemented-features section).
package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/oxhq/stereocode/core"
)

// WriteClassCSV writes one row per class: its language, structure kind, bare
// name, method count, and stereotype list.
func WriteClassCSV(w io.Writer, classes []*core.Class) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"language", "structure_kind", "class", "method_count", "stereotypes"}); err != nil {
		return err
	}
	for _, class := range classes {
		row := []string{
			string(class.Language),
			string(class.StructureKind),
			class.Names.Bare,
			strconv.Itoa(len(class.Methods) - class.ConstructorDestructorCount),
			strings.Join(class.Stereotypes, " "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// WriteMethodCSV writes one row per method, constructors and destructors
// included: its language, class, name, and stereotype list.
func WriteMethodCSV(w io.Writer, classes []*core.Class) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"language", "class", "method", "stereotypes"}); err != nil {
		return err
	}
	for _, class := range classes {
		for _, m := range class.Methods {
			row := []string{
				string(class.Language),
				class.Names.Bare,
				m.Name,
				strings.Join(m.Stereotypes, " "),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	return cw.Error()
}
