// Package patterns builds the grammar of container image references with
// regexbuilder.
//
// Format: [domain '/'] path-component ['/' path-component]* [':' tag] ['@' digest]
package patterns

import (
	"regexp"

	rb "github.com/wuxler/rxb/pkg/regexbuilder"
)

var (
	// AlphaNumeric is a lower case alpha numeric run, the atom of path components.
	AlphaNumeric = rb.OneOrMore(rb.Range("a-z0-9"))

	// Separator joins alpha numeric runs in a path component: one period, one
	// or two underscores or any number of dashes.
	Separator = rb.Group(
		rb.Alternate(rb.Range("._"), rb.Alternate(rb.Literal("__"), rb.ZeroOrMore(rb.Range("-")))),
		rb.NonCapturing(),
	)

	// DomainNameComponent is one dot separated label of a domain name.
	DomainNameComponent = rb.Group(
		rb.Alternate(
			rb.Range("a-zA-Z0-9"),
			rb.Range("a-zA-Z0-9").ZeroOrMore(rb.Range("a-zA-Z0-9-")).Range("a-zA-Z0-9"),
		),
		rb.NonCapturing(),
	)

	// DomainName is a subset of DNS names, IPv4 addresses in decimal format
	// included.
	DomainName = DomainNameComponent.Optional(rb.OneOrMore(rb.Literal(".").Append(DomainNameComponent)))

	// IPv6Address is a compressed or uncompressed IPv6 address between square
	// brackets. Zone identifiers and IPv4-mapped addresses are not accepted.
	IPv6Address = rb.Literal("[").OneOrMore(rb.Range("a-fA-F0-9:")).Literal("]")

	// Host is a domain name or an IPv6 address.
	Host = rb.Group(rb.Alternate(DomainName, IPv6Address), rb.NonCapturing())

	// Port is a port number without the colon.
	Port = rb.OneOrMore(rb.Range("0-9"))

	// Domain is a host with an optional port.
	Domain = Host.Optional(rb.Literal(":").Append(Port))

	// Tag is a tag name: a word character followed by up to 127 word
	// characters, periods or dashes.
	Tag = rb.Range(`\w`).RepeatRange(rb.Range(`\w.-`), 0, 127)

	// Digest is an algorithm and a hex encoded value of at least 32 digits,
	// e.g. "sha256:<encoded>".
	Digest = rb.Range("A-Za-z").
		ZeroOrMore(rb.Range("A-Za-z0-9")).
		ZeroOrMore(rb.Range("-_+.").Range("A-Za-z").ZeroOrMore(rb.Range("A-Za-z0-9"))).
		Range(":").
		AtLeast(rb.Range("[:xdigit:]"), 32)

	// Identifier captures a sha256 hex value without the algorithm.
	Identifier = rb.Group(rb.Repeat(rb.Range("a-f0-9"), 64))

	// ShortIdentifier captures a prefix of an Identifier.
	ShortIdentifier = rb.Group(rb.RepeatRange(rb.Range("a-f0-9"), 6, 64))

	// PathComponent is alpha numeric runs joined by separators.
	PathComponent = AlphaNumeric.Optional(rb.OneOrMore(Separator.Append(AlphaNumeric)))

	// RemoteName is a repository path without the registry, e.g. "library/ubuntu".
	RemoteName = PathComponent.Optional(rb.OneOrMore(rb.Literal("/").Append(PathComponent)))

	// Name is a repository path with an optional registry.
	Name = rb.Optional(Domain.Literal("/")).Append(RemoteName)

	// AnchoredName matches a whole name, capturing the domain and the remote
	// name.
	AnchoredName = rb.Raw("^").Optional(rb.Group(Domain).Literal("/")).Group(RemoteName).Raw("$")

	// Reference is a name with an optional tag and digest, capturing each of
	// them.
	Reference = rb.Group(Name).
			Optional(rb.Literal(":").Group(Tag)).
			Optional(rb.Literal("@").Group(Digest))
)

var re = regexp.MustCompile

var (
	// DomainRegexp matches a host with an optional port.
	DomainRegexp = re(Domain.String())
	// AnchoredDomainRegexp matches a whole domain.
	AnchoredDomainRegexp = re(rb.Anchored(Domain).String())

	// TagRegexp matches tag names.
	TagRegexp = re(Tag.String())
	// AnchoredTagRegexp matches a whole tag name.
	AnchoredTagRegexp = re(rb.Anchored(Tag).String())

	// DigestRegexp matches digests.
	DigestRegexp = re(Digest.String())
	// AnchoredDigestRegexp matches a whole digest.
	AnchoredDigestRegexp = re(rb.Anchored(Digest).String())

	// IdentifierRegexp matches sha256 identifiers.
	IdentifierRegexp = re(Identifier.String())
	// AnchoredIdentifierRegexp matches a whole sha256 identifier.
	AnchoredIdentifierRegexp = re(rb.Anchored(Identifier).String())

	// ShortIdentifierRegexp matches identifier prefixes.
	ShortIdentifierRegexp = re(ShortIdentifier.String())
	// AnchoredShortIdentifierRegexp matches a whole identifier prefix.
	AnchoredShortIdentifierRegexp = re(rb.Anchored(ShortIdentifier).String())

	// RemoteNameRegexp matches repository paths without registry.
	RemoteNameRegexp = re(RemoteName.String())
	// AnchoredRemoteNameRegexp matches a whole repository path without registry.
	AnchoredRemoteNameRegexp = re(rb.Anchored(RemoteName).String())

	// NameRegexp matches repository names with an optional registry.
	NameRegexp = re(Name.String())
	// AnchoredNameRegexp matches a whole name, capturing domain and remote name.
	AnchoredNameRegexp = re(AnchoredName.String())

	// ReferenceRegexp matches references, capturing name, tag and digest.
	ReferenceRegexp = re(Reference.String())
	// AnchoredReferenceRegexp matches a whole reference.
	AnchoredReferenceRegexp = re(rb.Anchored(Reference).String())
)

// Builtin is a named pattern of this package.
type Builtin struct {
	Name        string
	Description string
	Builder     rb.Builder
}

// Builtins returns the patterns of this package in name order, ready to be
// registered in a catalog.
func Builtins() []Builtin {
	return []Builtin{
		{Name: "oci.alpha_numeric", Description: "lower case alpha numeric run", Builder: AlphaNumeric},
		{Name: "oci.digest", Description: "content digest, algorithm:hex", Builder: Digest},
		{Name: "oci.domain", Description: "registry host with optional port", Builder: Domain},
		{Name: "oci.domain_name_component", Description: "domain label", Builder: DomainNameComponent},
		{Name: "oci.identifier", Description: "sha256 hex identifier", Builder: Identifier},
		{Name: "oci.name", Description: "repository name with optional registry", Builder: Name},
		{Name: "oci.name.anchored", Description: "whole repository name capturing domain and path", Builder: AnchoredName},
		{Name: "oci.path_component", Description: "repository path component", Builder: PathComponent},
		{Name: "oci.reference", Description: "image reference capturing name, tag and digest", Builder: Reference},
		{Name: "oci.remote_name", Description: "repository path without registry", Builder: RemoteName},
		{Name: "oci.separator", Description: "path component separator", Builder: Separator},
		{Name: "oci.short_identifier", Description: "identifier prefix of 6 to 64 hex digits", Builder: ShortIdentifier},
		{Name: "oci.tag", Description: "image tag", Builder: Tag},
	}
}
