package forward

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// selectTag picks the tag to forward to. An existing tag or a plain version
// is used literally; otherwise spec is treated as a semver constraint and
// the highest matching tag wins.
func selectTag(spec string, tags []string) (string, error) {
	if slices.Contains(tags, spec) {
		return spec, nil
	}
	if _, err := semver.NewVersion(spec); err == nil {
		return "", fmt.Errorf("tag %q not found", spec)
	}

	constraint, err := semver.NewConstraint(spec)
	if err != nil {
		return "", fmt.Errorf("tag %q not found and not a version constraint: %w", spec, err)
	}
	versions := sortedVersions(tags)
	for _, v := range versions {
		if constraint.Check(v) {
			return v.Original(), nil
		}
	}
	return "", fmt.Errorf("no tag matched the version constraint %q from %s", spec, abbrevVersions(versions))
}

// sortedVersions parses the semver tags and returns them highest first.
func sortedVersions(tags []string) []*semver.Version {
	var versions []*semver.Version
	for _, tag := range tags {
		v, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	slices.SortFunc(versions, func(a, b *semver.Version) int {
		return b.Compare(a)
	})
	return versions
}

func abbrevVersions(versions []*semver.Version) string {
	switch len(versions) {
	case 0:
		return "[]"
	case 1, 2, 3:
		out := make([]string, len(versions))
		for i, v := range versions {
			out[i] = v.Original()
		}
		return "[" + strings.Join(out, ",") + "]"
	default:
		return fmt.Sprintf("[%s, %s, ..., %s]",
			versions[0].Original(), versions[1].Original(), versions[len(versions)-1].Original())
	}
}
