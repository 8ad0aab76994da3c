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

package command

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRun(t *testing.T) {
	if err := Run(t.Context(), "git", "--version"); err != nil {
		t.Fatal(err)
	}
}

func TestRunError(t *testing.T) {
	err := Run(t.Context(), "git", "invalid-subcommand-bad-bad-bad")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid-subcommand-bad-bad-bad") {
		t.Errorf("error should mention the invalid subcommand, got: %v", err)
	}
}

func TestOutput(t *testing.T) {
	got, err := Output(t.Context(), "git", "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "git version") {
		t.Errorf("Output() = %q, want a git version line", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("Output() should trim trailing newlines, got %q", got)
	}
}

func TestOutputError(t *testing.T) {
	if _, err := Output(t.Context(), "git", "invalid-subcommand-bad-bad-bad"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestGetExecutablePath(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		exe       string
		want      string
	}{
		{
			name: "override found",
			overrides: map[string]string{
				"cargo": "/usr/bin/cargo",
				"git":   "/usr/bin/git",
			},
			exe:  "cargo",
			want: "/usr/bin/cargo",
		},
		{
			name: "override not found",
			overrides: map[string]string{
				"git": "/usr/bin/git",
			},
			exe:  "cargo",
			want: "cargo",
		},
		{
			name: "no overrides",
			exe:  "cargo",
			want: "cargo",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := GetExecutablePath(test.overrides, test.exe)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
