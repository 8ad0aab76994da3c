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

// Package testhelper provides git repository fixtures for tests.
package testhelper

import (
	"os"
	"os/exec"
	"testing"

	"github.com/crateops/crater/internal/command"
)

const (
	// CargoContents is the manifest initialized in the test repository.
	CargoContents = `# Example crate
[package]
name = "tego"
version = "1.2.3"
edition = "2021"

[dependencies]
rand = { version = "0.8.5" }
`

	// ChangelogContents is the changelog initialized in the test repository.
	ChangelogContents = `# Changelog

## Unreleased

- fixed bug X

## [1.2.3] - 2023-01-01

- initial release
`
)

// RequireCommand skips the test if the specified command is not found in
// PATH, so that go test ./... passes on machines without the tool.
func RequireCommand(t *testing.T, cmd string) {
	t.Helper()
	if _, err := exec.LookPath(cmd); err != nil {
		t.Skipf("skipping test because %s is not installed", cmd)
	}
}

// ContinueInNewGitRepository initializes a git repository in a temporary
// directory and changes the current working directory to it.
func ContinueInNewGitRepository(t *testing.T) {
	t.Helper()
	RequireCommand(t, "git")
	t.Chdir(t.TempDir())
	if err := command.Run(t.Context(), "git", "init", "-b", "main"); err != nil {
		t.Fatal(err)
	}
	configGitRepository(t)
}

// SetupForRelease creates a crate repository with a committed Cargo.toml and
// CHANGELOG.md, plus a local bare repository configured as the origin remote
// so that push has somewhere to go. It returns the bare repository's path
// and leaves the working directory inside the clone.
func SetupForRelease(t *testing.T) string {
	t.Helper()
	RequireCommand(t, "git")
	remoteDir := t.TempDir()
	t.Chdir(remoteDir)
	if err := command.Run(t.Context(), "git", "init", "--bare", "-b", "main"); err != nil {
		t.Fatal(err)
	}

	t.Chdir(t.TempDir())
	if err := command.Run(t.Context(), "git", "clone", remoteDir, "."); err != nil {
		t.Fatal(err)
	}
	configGitRepository(t)
	WriteFile(t, "Cargo.toml", CargoContents)
	WriteFile(t, "CHANGELOG.md", ChangelogContents)
	if err := command.Run(t.Context(), "git", "add", "."); err != nil {
		t.Fatal(err)
	}
	if err := command.Run(t.Context(), "git", "commit", "-m", "initial import"); err != nil {
		t.Fatal(err)
	}
	if err := command.Run(t.Context(), "git", "push", "-u", "origin", "main"); err != nil {
		t.Fatal(err)
	}
	return remoteDir
}

// WriteFile writes contents to name in the current directory.
func WriteFile(t *testing.T, name, contents string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
}

func configGitRepository(t *testing.T) {
	t.Helper()
	for _, kv := range [][2]string{
		{"user.email", "test@test-only.com"},
		{"user.name", "Test Account"},
		{"commit.gpgsign", "false"},
		{"tag.gpgsign", "false"},
	} {
		if err := command.Run(t.Context(), "git", "config", kv[0], kv[1]); err != nil {
			t.Fatal(err)
		}
	}
}
