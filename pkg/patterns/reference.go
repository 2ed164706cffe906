package patterns

import (
	_ "crypto/sha256" // digest.Canonical
	"strings"

	"github.com/opencontainers/go-digest"

	"github.com/wuxler/rxb/pkg/errdefs"
	"github.com/wuxler/rxb/pkg/util/xregexp"
)

// ParsedReference is an image reference split by ReferenceRegexp.
type ParsedReference struct {
	Domain string        `json:"domain,omitempty" yaml:"domain,omitempty"`
	Path   string        `json:"path" yaml:"path"`
	Tag    string        `json:"tag,omitempty" yaml:"tag,omitempty"`
	Digest digest.Digest `json:"digest,omitempty" yaml:"digest,omitempty"`
}

// Name returns the repository name, domain included.
func (r ParsedReference) Name() string {
	if r.Domain == "" {
		return r.Path
	}
	return r.Domain + "/" + r.Path
}

// String returns the reference in its canonical text form.
func (r ParsedReference) String() string {
	sb := &strings.Builder{}
	sb.WriteString(r.Name())
	if r.Tag != "" {
		sb.WriteString(":" + r.Tag)
	}
	if r.Digest != "" {
		sb.WriteString("@" + r.Digest.String())
	}
	return sb.String()
}

// ParseReference splits s into domain, path, tag and digest. The first path
// component is taken as the domain whenever it matches Domain, no registry
// defaulting is applied.
func ParseReference(s string) (ParsedReference, error) {
	groups, ok := xregexp.Submatches(AnchoredReferenceRegexp, s)
	if !ok {
		return ParsedReference{}, errdefs.Newf(errdefs.ErrInvalidParameter, "invalid reference format %q", s)
	}
	ref := ParsedReference{Tag: groups[1]}
	if groups[2] != "" {
		d, err := digest.Parse(groups[2])
		if err != nil {
			return ParsedReference{}, errdefs.Newf(errdefs.ErrInvalidParameter, "invalid digest in reference %q: %w", s, err)
		}
		ref.Digest = d
	}
	parts, ok := xregexp.Submatches(AnchoredNameRegexp, groups[0])
	if !ok {
		return ParsedReference{}, errdefs.Newf(errdefs.ErrInvalidParameter, "invalid repository name %q", groups[0])
	}
	ref.Domain, ref.Path = parts[0], parts[1]
	return ref, nil
}
