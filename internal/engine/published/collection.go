// Package published resolves what was last published for each package of a workspace.
package published

import (
	"os"
	"slices"

	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/zerr"
)

// Collection is the table of published packages keyed by package name.
//
// A Collection owns a scratch directory that both resolvers share. The directory
// is created on first use and removed by Close. A Collection is not safe for
// concurrent use.
type Collection struct {
	resolver   *Resolver
	packages   map[string]domain.PublishedPackage
	scratchDir string
	closed     bool
}

// NewCollection creates an empty collection that resolves through r.
func (r *Resolver) NewCollection() *Collection {
	return &Collection{
		resolver: r,
		packages: make(map[string]domain.PublishedPackage),
	}
}

// Package returns the published manifest metadata of the named package.
func (c *Collection) Package(name string) (domain.Package, bool) {
	p, ok := c.packages[name]
	return p.Package, ok
}

// Published returns the named published package.
func (c *Collection) Published(name string) (domain.PublishedPackage, bool) {
	p, ok := c.packages[name]
	return p, ok
}

// Names returns the names of all resolved packages in sorted order.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.packages))
	for name := range c.packages {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of resolved packages.
func (c *Collection) Len() int {
	return len(c.packages)
}

// ScratchDir returns the scratch directory if it has been allocated.
func (c *Collection) ScratchDir() (string, bool) {
	return c.scratchDir, c.scratchDir != ""
}

// Close removes the scratch directory and everything materialized in it.
// It is safe to call Close more than once.
func (c *Collection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if c.scratchDir == "" {
		return nil
	}
	if err := os.RemoveAll(c.scratchDir); err != nil {
		removeErr := zerr.Wrap(err, domain.ErrScratchDirRemoveFailed.Error())
		return zerr.With(removeErr, "path", c.scratchDir)
	}
	return nil
}

// insert adds p, replacing any earlier entry with the same name.
func (c *Collection) insert(p domain.PublishedPackage) {
	c.packages[p.Package.Name] = p
}

// ensureScratchDir returns the scratch directory, creating it on first use.
func (c *Collection) ensureScratchDir() (string, error) {
	if c.closed {
		return "", domain.ErrCollectionClosed
	}
	if c.scratchDir != "" {
		return c.scratchDir, nil
	}

	dir, err := os.MkdirTemp("", domain.ScratchDirPattern)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrScratchDirCreateFailed.Error())
	}
	c.scratchDir = dir
	return dir, nil
}
