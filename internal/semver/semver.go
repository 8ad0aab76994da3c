// Copyright 2026 Crater Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package semver implements the three-component version arithmetic used by
// the release driver. Crate versions have no prerelease or build metadata
// segments; anything beyond MAJOR.MINOR.PATCH is rejected.
package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	// ErrUnknownKind is reported when the bump argument is not one of
	// major, minor or patch.
	ErrUnknownKind = errors.New("unknown bump kind")

	// ErrInvalidVersion is reported when a version string is not a plain
	// MAJOR.MINOR.PATCH triple.
	ErrInvalidVersion = errors.New("invalid version")
)

// Kind selects which component of a version a bump increments.
type Kind int

const (
	Major Kind = iota
	Minor
	Patch
)

var kindNames = [...]string{"major", "minor", "patch"}

// String returns the lower-case name of the bump kind.
func (k Kind) String() string {
	if k < Major || k > Patch {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses a bump kind supplied on the command line.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if s == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want major, minor or patch)", ErrUnknownKind, s)
}

// Version is a semantic version triple. All components are non-negative.
type Version struct {
	Major, Minor, Patch int
}

// Parse parses a version of the form "MAJOR.MINOR.PATCH". Shortened forms,
// "v" prefixes, prerelease and build metadata segments are all rejected.
func Parse(s string) (Version, error) {
	prefixed := "v" + s
	if !semver.IsValid(prefixed) ||
		semver.Prerelease(prefixed) != "" ||
		semver.Build(prefixed) != "" ||
		semver.Canonical(prefixed) != prefixed {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	parts := strings.SplitN(s, ".", 3)
	var v Version
	var err error
	if v.Major, err = strconv.Atoi(parts[0]); err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	if v.Minor, err = strconv.Atoi(parts[1]); err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	if v.Patch, err = strconv.Atoi(parts[2]); err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	return v, nil
}

// Bump returns the next version for the given kind. Exactly one component
// increments; lower-order components reset to zero.
func (v Version) Bump(k Kind) (Version, error) {
	switch k {
	case Major:
		return Version{Major: v.Major + 1}, nil
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	case Patch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	}
	return Version{}, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
}

// String formats the version as "MAJOR.MINOR.PATCH".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// TagName returns the git tag for this version, "vMAJOR.MINOR.PATCH".
func (v Version) TagName() string {
	return "v" + v.String()
}
