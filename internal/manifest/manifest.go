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

// Package manifest locates and rewrites the version literal in Cargo.toml.
//
// The version is the quoted "MAJOR.MINOR.PATCH" literal following a
// `version = ` assignment. Rewriting substitutes only that literal and is
// anchored to the current version, so dependency pins elsewhere in the file
// stay untouched and the rest of the file is byte-identical.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/crateops/crater/internal/semver"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the manifest file the driver edits.
const DefaultPath = "Cargo.toml"

// ErrNoVersion is reported when the manifest has no version assignment the
// driver recognizes.
var ErrNoVersion = errors.New(`no version = "X.Y.Z" assignment found`)

// versionRegexp matches the quoted version literal following a
// `version = ` assignment.
var versionRegexp = regexp.MustCompile(`version\s=\s"(\d+)\.(\d+)\.(\d+)"`)

// Crate is the subset of the [package] table the driver reports on.
type Crate struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type cargoFile struct {
	Package *Crate `toml:"package"`
}

// ParseCrate returns the [package] table of the manifest contents.
func ParseCrate(contents []byte) (*Crate, error) {
	var file cargoFile
	if err := toml.Unmarshal(contents, &file); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if file.Package == nil {
		return nil, errors.New("manifest has no [package] table")
	}
	return file.Package, nil
}

// CurrentVersion extracts the version triple from the manifest contents.
func CurrentVersion(contents []byte) (semver.Version, error) {
	m := versionRegexp.FindSubmatch(contents)
	if m == nil {
		return semver.Version{}, ErrNoVersion
	}
	return semver.Parse(fmt.Sprintf("%s.%s.%s", m[1], m[2], m[3]))
}

// Rewrite substitutes the current version literal with next in the manifest
// contents and writes the full text back to path. The substitution pattern
// embeds the current version, so running it again on the already-updated
// text changes nothing.
func Rewrite(path string, contents []byte, current, next semver.Version) error {
	pattern := regexp.MustCompile(`(version\s=\s)"` + regexp.QuoteMeta(current.String()) + `"`)
	updated := pattern.ReplaceAll(contents, []byte(fmt.Sprintf(`$1"%s"`, next)))
	return os.WriteFile(path, updated, 0644)
}
