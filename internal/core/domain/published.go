package domain

// PublishedPackage is a package's manifest metadata as it was when it was last published.
type PublishedPackage struct {
	Package Package

	// OriginCommit is the commit the publication was made from. It is empty when
	// unknown, e.g. for crates published with `--allow-dirty`.
	OriginCommit string
}

// Name returns the name of the published package.
func (p *PublishedPackage) Name() string {
	return p.Package.Name
}

// Commit returns the origin commit and whether it is known.
func (p *PublishedPackage) Commit() (string, bool) {
	return p.OriginCommit, p.OriginCommit != ""
}
