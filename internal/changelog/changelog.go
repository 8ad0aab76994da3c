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

// Package changelog rewrites CHANGELOG.md when a release is cut.
//
// The file uses two markers: the exact line "## Unreleased" is the insertion
// point, and lines starting with "## [" begin released-version sections.
// Promotion relabels the Unreleased section with the new version and date.
// It consumes the marker and does not write a fresh empty one; the operator
// adds it back before the next release.
package changelog

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultPath is the changelog file the driver edits.
const DefaultPath = "CHANGELOG.md"

const (
	unreleasedLine = "## Unreleased"
	sectionPrefix  = "## ["
)

// ErrNoUnreleased is reported when the changelog has no Unreleased marker to
// promote. This happens after every release until a new marker is added.
var ErrNoUnreleased = errors.New(`changelog has no "## Unreleased" line`)

// HasUnreleased reports whether the file at path contains the Unreleased
// marker line.
func HasUnreleased(path string) (bool, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	for _, line := range strings.SplitAfter(string(contents), "\n") {
		if line == unreleasedLine+"\n" {
			return true, nil
		}
	}
	return false, nil
}

// Render produces the promoted changelog text for the given version and
// date, together with the lines of the Unreleased section (the release's
// changes). Every line outside that section is preserved byte-for-byte; the
// only additions are a blank line and the new version header, inserted
// directly after the marker. found is false when the text has no marker, in
// which case the returned text equals the input and changes is empty.
func Render(text, version string, date time.Time) (updated, changes string, found bool) {
	header := fmt.Sprintf("## [%s] - %s\n", version, date.Format("2006-01-02"))
	var buffer, section strings.Builder
	inSection := false
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			// SplitAfter yields a final empty element when the text ends
			// with a newline.
			continue
		}
		buffer.WriteString(line)
		if strings.HasPrefix(line, sectionPrefix) {
			inSection = false
		}
		if inSection {
			section.WriteString(line)
		}
		if line == unreleasedLine+"\n" {
			buffer.WriteString("\n")
			buffer.WriteString(header)
			inSection = true
			found = true
		}
	}
	return buffer.String(), section.String(), found
}

// Promote rewrites the file at path, relabeling the Unreleased section with
// version and date, and returns the section's lines.
func Promote(path, version string, date time.Time) (string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	updated, changes, found := Render(string(contents), version, date)
	if !found {
		return "", fmt.Errorf("%s: %w", path, ErrNoUnreleased)
	}
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return "", err
	}
	return changes, nil
}
