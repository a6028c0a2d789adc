package domain

import (
	"iter"
	"regexp"
)

// semverPattern finds the first dotted three-component version inside a tag.
var semverPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// FilterReleaseTags yields, in input order, the tags that are release tags of the package.
//
// A tag qualifies when it contains a `major.minor.patch` substring and is exactly the tag
// the namer renders for that version. Tags written under an older template are not seen.
func FilterReleaseTags(tags []string, packageName string, namer TagNamer) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, tag := range tags {
			version := semverPattern.FindString(tag)
			if version == "" {
				continue
			}
			if namer.GitTag(packageName, version) != tag {
				continue
			}
			if !yield(tag) {
				return
			}
		}
	}
}

// LatestReleaseTag returns the first release tag of the package.
// With tags sorted newest first this is the most recent release.
func LatestReleaseTag(tags []string, packageName string, namer TagNamer) (string, bool) {
	for tag := range FilterReleaseTags(tags, packageName, namer) {
		return tag, true
	}
	return "", false
}
