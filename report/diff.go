package report

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders a unified diff between the input archive text and its
// annotated output, for a --diff report alongside the CSV summary.
//
// Grounded on providers/base/provider.go's generateDiff, which wraps the
// same difflib.UnifiedDiffString call.
func UnifiedDiff(fromLabel, toLabel, before, after string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(text, "\n"), nil
}
