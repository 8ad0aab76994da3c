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

// Package git wraps the git operations performed during a release.
//
// Mutations (commit, tag, push) shell out to the git executable so that
// signing and credential helpers behave exactly as they do for the operator.
// Read-only repository queries go through go-git and never spawn a process.
package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/crateops/crater/internal/command"
)

// CheckVersion checks that the git version command can run.
func CheckVersion(ctx context.Context, gitExe string) error {
	return command.Run(ctx, gitExe, "--version")
}

// CheckRemoteURL checks that the named remote exists.
func CheckRemoteURL(ctx context.Context, gitExe, remote string) error {
	return command.Run(ctx, gitExe, "remote", "get-url", remote)
}

// Commit creates a commit containing exactly the given files, ignoring
// anything else in the index. The pathspec after -- makes git commit the
// named files directly, regardless of staged state. sign adds -S.
func Commit(ctx context.Context, gitExe, message string, sign bool, files ...string) error {
	args := []string{"commit", "-m", message}
	if sign {
		args = append(args, "-S")
	}
	args = append(args, "--")
	args = append(args, files...)
	return command.RunInteractive(ctx, gitExe, args...)
}

// TagAnnotated creates an annotated tag. short becomes the first line of the
// annotation and body the rest. sign adds -s.
func TagAnnotated(ctx context.Context, gitExe, name, short, body string, sign bool) error {
	args := []string{"tag"}
	if sign {
		args = append(args, "-s")
	}
	args = append(args, "-m", short, "-m", body, name)
	return command.RunInteractive(ctx, gitExe, args...)
}

// Push pushes the current branch along with any annotated tags reachable
// from the pushed commits.
func Push(ctx context.Context, gitExe string) error {
	return command.RunInteractive(ctx, gitExe, "push", "--follow-tags")
}

// TagExists reports whether the repository containing dir already has the
// named tag.
func TagExists(dir, name string) (bool, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return false, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}
	_, err = repo.Reference(plumbing.NewTagReferenceName(name), false)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	return false, err
}

// CurrentBranch returns the short name of the checked-out branch.
func CurrentBranch(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch: %s", head.Name())
	}
	return head.Name().Short(), nil
}
