package stereotype

import "github.com/oxhq/stereocode/core"

// DefaultMethodsPerClassThreshold is the "large class" method-count cutoff
// used when the CLI's --methods-per-class-threshold option (spec §6) isn't
// set (spec §6: "typically 21").
const DefaultMethodsPerClassThreshold = 21

// ClassOptions carries the one configurable class-rule threshold spec §4.7
// exposes (METHODS_PER_CLASS_THRESHOLD); every other cutoff in the table is
// fixed by the spec itself.
type ClassOptions struct {
	MethodsPerClassThreshold int
}

func (o ClassOptions) threshold() int {
	if o.MethodsPerClassThreshold <= 0 {
		return DefaultMethodsPerClassThreshold
	}
	return o.MethodsPerClassThreshold
}

// counts is the per-class tally §4.7 derives its ratios from.
type counts struct {
	getters          int
	accessors        int
	setters          int
	commands         int
	mutators         int
	controllers      int
	collabOnly       int
	collaborators    int
	factories        int
	degenerates      int
	nonCollaborators int
	m                int
}

// ClassifyClass runs the §4.7 rule set against class, using its methods'
// already-assigned stereotypes (ClassifyMethod must have run on every method
// first). class.Stereotypes is set as a side effect.
func ClassifyClass(class *core.Class, opts ClassOptions) []string {
	c := tally(class)

	var labels []string
	if c.m == 0 {
		labels = []string{"empty"}
		class.Stereotypes = labels
		return labels
	}

	m := float64(c.m)
	hasNonCollaborators := c.nonCollaborators > 0
	collabRatio := 0.0
	if hasNonCollaborators {
		collabRatio = float64(c.collaborators) / float64(c.nonCollaborators)
	}

	if hasNonCollaborators &&
		(c.accessors-c.getters) > 0 && (c.mutators-c.setters) > 0 &&
		c.controllers == 0 && collabRatio >= 2 {
		labels = append(labels, "entity")
	}

	if hasNonCollaborators &&
		c.m-(c.getters+c.setters+c.commands) == 0 &&
		c.getters > 0 && c.setters > 0 && c.commands > 0 &&
		collabRatio >= 2 {
		labels = append(labels, "minimal-entity")
	}

	if float64(c.accessors) > 2*float64(c.mutators) &&
		float64(c.accessors) > 2*float64(c.controllers+c.factories) {
		labels = append(labels, "data-provider")
	}

	if float64(c.mutators) > 2*float64(c.accessors) &&
		float64(c.mutators) > 2*float64(c.controllers+c.factories) {
		labels = append(labels, "commander")
	}

	if float64(c.collaborators) > float64(c.nonCollaborators) &&
		float64(c.factories) < 0.5*m && float64(c.controllers) < 0.33*m {
		labels = append(labels, "boundary")
	}

	if float64(c.factories) > 0.67*m {
		labels = append(labels, "factory")
	}

	if float64(c.controllers+c.factories) > 0.67*m && (c.accessors > 0 || c.mutators > 0) {
		labels = append(labels, "controller")
	}

	if c.controllers+c.factories > 0 && c.accessors+c.mutators+c.collabOnly == 0 && c.controllers > 0 {
		labels = append(labels, "pure-controller")
	}

	accMut := float64(c.accessors + c.mutators)
	ctrlFac := float64(c.controllers + c.factories)
	if 0.2*m < accMut && accMut < 0.67*m &&
		0.2*m < ctrlFac && ctrlFac < 0.67*m &&
		c.factories > 0 && c.controllers > 0 && c.accessors > 0 && c.mutators > 0 &&
		c.m > opts.threshold() {
		labels = append(labels, "large-class")
	}

	degenRatio := float64(c.degenerates) / m
	if c.getters+c.setters > 0 && degenRatio > 0.33 &&
		float64(c.m-(c.degenerates+c.getters+c.setters))/m <= 0.2 {
		labels = append(labels, "lazy-class")
	}

	if degenRatio > 0.5 {
		labels = append(labels, "degenerate")
	}

	if c.m-(c.getters+c.setters) == 0 && c.getters+c.setters > 0 {
		labels = append(labels, "data-class")
	}

	if c.m > 0 && c.m < 3 {
		labels = append(labels, "small-class")
	}

	if len(labels) == 0 {
		labels = []string{"unclassified"}
	}
	class.Stereotypes = labels
	return labels
}

// tally aggregates method-stereotype counts per class (spec §4.7), excluding
// constructors/destructors from every denominator.
func tally(class *core.Class) counts {
	var c counts
	raw := make(map[string]int)
	for _, m := range class.Methods {
		if m.IsConstructorDestructor {
			continue
		}
		c.m++
		isCollab := false
		for _, label := range m.Stereotypes {
			raw[label]++
			if label == "collaborator" || label == "controller" || label == "wrapper" {
				isCollab = true
			}
		}
		if !isCollab {
			c.nonCollaborators++
		}
	}

	c.getters = raw["get"]
	c.accessors = c.getters + raw["predicate"] + raw["property"] + raw["void-accessor"]
	c.setters = raw["set"]
	c.commands = raw["command"] + raw["non-void-command"]
	c.mutators = c.setters + c.commands
	c.controllers = raw["controller"]
	c.collabOnly = raw["collaborator"] + raw["wrapper"]
	c.collaborators = c.controllers + c.collabOnly
	c.factories = raw["factory"]
	c.degenerates = raw["incidental"] + raw["stateless"] + raw["empty"]
	return c
}
