package regexbuilder

// GroupOption configures Builder.Group.
type GroupOption func(*groupOptions)

type groupOptions struct {
	nonCapturing bool
	lazy         bool
}

// NonCapturing renders the group as "(?:...)".
func NonCapturing() GroupOption {
	return func(o *groupOptions) {
		o.nonCapturing = true
	}
}

// Lazy appends "?" to the group content so the quantifier it ends with
// prefers the shortest match.
func Lazy() GroupOption {
	return func(o *groupOptions) {
		o.lazy = true
	}
}

func makeGroupOptions(opts ...GroupOption) *groupOptions {
	o := &groupOptions{}
	for _, apply := range opts {
		apply(o)
	}
	return o
}
