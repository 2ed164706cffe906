// Package recipe describes regular expressions declaratively as trees of
// steps, each step mapping to one regexbuilder operation.
//
// A recipe file looks like:
//
//	recipes:
//	  - name: semver
//	    anchored: true
//	    pattern:
//	      - literal: v
//	      - one_or_more: {range: "0-9"}
//	      - literal: .
//	      - one_or_more: {range: "0-9"}
//
// A plain string where steps are expected is a single literal step.
package recipe

import (
	"github.com/samber/lo"

	"github.com/wuxler/rxb/pkg/errdefs"
)

// Document is the content of a recipe file.
type Document struct {
	Recipes []Recipe `json:"recipes" yaml:"recipes"`
}

// Names returns the names of the recipes in the document.
func (d *Document) Names() []string {
	return lo.Map(d.Recipes, func(r Recipe, _ int) string { return r.Name })
}

// Validate checks that every recipe is named and that names are unique.
func (d *Document) Validate() error {
	for i, r := range d.Recipes {
		if r.Name == "" {
			return errdefs.Newf(errdefs.ErrInvalidParameter, "recipes[%d]: name is required", i)
		}
	}
	dups := lo.FindDuplicatesBy(d.Recipes, func(r Recipe) string { return r.Name })
	if len(dups) > 0 {
		return errdefs.Newf(errdefs.ErrAlreadyExists, "recipe %q is defined more than once", dups[0].Name)
	}
	return nil
}

// Recipe is a named regular expression description.
type Recipe struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Anchored matches the pattern against the whole input.
	Anchored bool  `json:"anchored,omitempty" yaml:"anchored,omitempty"`
	Pattern  Steps `json:"pattern" yaml:"pattern"`
}

// Refs returns the names referenced by the recipe, in order of appearance.
func (r Recipe) Refs() []string {
	return lo.Uniq(r.Pattern.refs())
}

// Steps is an ordered list of steps.
type Steps []Step

func (s Steps) refs() []string {
	var names []string
	for _, step := range s {
		names = append(names, step.refs()...)
	}
	return names
}

// Step is one operation. Exactly one field must be set.
type Step struct {
	Literal       *string        `json:"literal,omitempty" yaml:"literal,omitempty"`
	Raw           *string        `json:"raw,omitempty" yaml:"raw,omitempty"`
	Range         *string        `json:"range,omitempty" yaml:"range,omitempty"`
	InvertedRange *string        `json:"inverted_range,omitempty" yaml:"inverted_range,omitempty"`
	OneOrMore     Steps          `json:"one_or_more,omitempty" yaml:"one_or_more,omitempty"`
	ZeroOrMore    Steps          `json:"zero_or_more,omitempty" yaml:"zero_or_more,omitempty"`
	Optional      Steps          `json:"optional,omitempty" yaml:"optional,omitempty"`
	Group         *GroupStep     `json:"group,omitempty" yaml:"group,omitempty"`
	Repeat        *RepeatStep    `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	Alternate     *AlternateStep `json:"alternate,omitempty" yaml:"alternate,omitempty"`
	Ref           *string        `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// GroupStep wraps steps in a group.
type GroupStep struct {
	Of           Steps `json:"of" yaml:"of"`
	NonCapturing bool  `json:"non_capturing,omitempty" yaml:"non_capturing,omitempty"`
	Lazy         bool  `json:"lazy,omitempty" yaml:"lazy,omitempty"`
}

// RepeatStep repeats steps. Count gives an exact number of repetitions, Min and
// Max a range, Min alone an open range. Values may be numbers or numeric
// strings.
type RepeatStep struct {
	Of    Steps `json:"of" yaml:"of"`
	Count any   `json:"count,omitempty" yaml:"count,omitempty"`
	Min   any   `json:"min,omitempty" yaml:"min,omitempty"`
	Max   any   `json:"max,omitempty" yaml:"max,omitempty"`
}

// AlternateStep matches either Left or Right.
type AlternateStep struct {
	Left  Steps `json:"left" yaml:"left"`
	Right Steps `json:"right" yaml:"right"`
}

// ops returns the names of the operations set on the step.
func (s Step) ops() []string {
	var ops []string
	add := func(set bool, name string) {
		if set {
			ops = append(ops, name)
		}
	}
	add(s.Literal != nil, "literal")
	add(s.Raw != nil, "raw")
	add(s.Range != nil, "range")
	add(s.InvertedRange != nil, "inverted_range")
	add(s.OneOrMore != nil, "one_or_more")
	add(s.ZeroOrMore != nil, "zero_or_more")
	add(s.Optional != nil, "optional")
	add(s.Group != nil, "group")
	add(s.Repeat != nil, "repeat")
	add(s.Alternate != nil, "alternate")
	add(s.Ref != nil, "ref")
	return ops
}

func (s Step) refs() []string {
	var names []string
	if s.Ref != nil {
		names = append(names, *s.Ref)
	}
	names = append(names, s.OneOrMore.refs()...)
	names = append(names, s.ZeroOrMore.refs()...)
	names = append(names, s.Optional.refs()...)
	if s.Group != nil {
		names = append(names, s.Group.Of.refs()...)
	}
	if s.Repeat != nil {
		names = append(names, s.Repeat.Of.refs()...)
	}
	if s.Alternate != nil {
		names = append(names, s.Alternate.Left.refs()...)
		names = append(names, s.Alternate.Right.refs()...)
	}
	return names
}

// LiteralStep returns a step matching text literally.
func LiteralStep(text string) Step {
	return Step{Literal: &text}
}

// RawStep returns a step holding text verbatim.
func RawStep(text string) Step {
	return Step{Raw: &text}
}

// RangeStep returns a character set step.
func RangeStep(chars string) Step {
	return Step{Range: &chars}
}

// RefStep returns a step referencing another named pattern.
func RefStep(name string) Step {
	return Step{Ref: &name}
}
