// Package ocp holds the small pieces of OpenShift release-engineering
// convention the waits need: version extraction from the strings the build
// tools emit, and the automation-freeze gate read from group configuration.
package ocp

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/blang/semver/v4"
)

var (
	elReleasePattern = regexp.MustCompile(`.*\.el(\d+)(?:\.|$)`)
	elBranchPattern  = regexp.MustCompile(`^.*rhel-(\d+).*$`)
	groupPattern     = regexp.MustCompile(`^openshift-(\d+)\.(\d+)$`)
)

// ELVersionInRelease extracts the RHEL major version from an RPM release
// field, e.g. "202310271500.p0.g1234567.assembly.stream.el8" yields 8.
//
// Returns 0 and false when the release field carries no RHEL marker.
func ELVersionInRelease(release string) (int, bool) {
	match := elReleasePattern.FindStringSubmatch(release)
	if match == nil {
		return 0, false
	}
	v, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// ELVersionInBranch extracts the RHEL major version from a distgit branch
// name, e.g. "rhaos-4.14-rhel-8" yields 8.
//
// Returns 0 and false when the branch name carries no RHEL marker.
func ELVersionInBranch(branch string) (int, bool) {
	match := elBranchPattern.FindStringSubmatch(branch)
	if match == nil {
		return 0, false
	}
	v, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseGroup extracts the OCP major and minor version from a group name,
// e.g. "openshift-4.12" yields (4, 12).
//
// Returns an error for anything that is not an openshift-<major>.<minor>
// group.
func ParseGroup(group string) (major, minor int, err error) {
	match := groupPattern.FindStringSubmatch(group)
	if match == nil {
		return 0, 0, fmt.Errorf("group %q is not of the form openshift-<major>.<minor>", group)
	}
	// the pattern guarantees digits
	major, _ = strconv.Atoi(match[1])
	minor, _ = strconv.Atoi(match[2])
	return major, minor, nil
}

// ReleaseVersion parses a full release version string (e.g. "4.14.9" or
// "4.15.0-rc.3") into a semantic version.
func ReleaseVersion(version string) (semver.Version, error) {
	v, err := semver.Parse(version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("invalid release version %q: %w", version, err)
	}
	return v, nil
}
