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

// Package release implements the end-to-end release driver.
//
// A release is a single forward sequence of steps with two confirmation
// gates:
//
//	version parsed -> manifest rewritten -> [confirm] -> changelog rewritten
//	-> committed -> tagged -> [confirm] -> pushed -> published
//
// Any failure or operator abort halts at the current step. There is no
// rollback: the driver logs how far the release got and leaves the operator
// to fix or re-run.
package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cbroglie/mustache"

	"github.com/crateops/crater/internal/cargo"
	"github.com/crateops/crater/internal/changelog"
	"github.com/crateops/crater/internal/command"
	"github.com/crateops/crater/internal/git"
	"github.com/crateops/crater/internal/manifest"
	"github.com/crateops/crater/internal/semver"
)

// commitMessageTemplate builds the release commit message. The changes are
// rendered with triple braces so markdown in the changelog survives
// unescaped.
const commitMessageTemplate = `chore: release version {{version}}

{{{changes}}}`

// ErrTagExists is reported when the computed release tag is already present
// in the repository.
var ErrTagExists = errors.New("tag already exists")

// Driver performs a release. The zero value plus a Confirmer is usable from
// the repository root; fields override individual defaults.
type Driver struct {
	// ManifestPath and ChangelogPath are the two files the release edits.
	// They default to Cargo.toml and CHANGELOG.md.
	ManifestPath  string
	ChangelogPath string

	// Remote is checked during preflight. Defaults to origin.
	Remote string

	// Tools overrides executable paths by name ("git", "cargo").
	Tools map[string]string

	// Sign adds -S/-s to the commit and tag.
	Sign bool

	// DryRun prints the release plan without modifying files or running
	// anything beyond read-only preflight checks.
	DryRun bool

	// Confirm gates the two interactive points. Defaults to prompting on
	// stdin/stdout.
	Confirm Confirmer

	// Out receives the dry-run plan and prompt output. Defaults to stdout.
	Out io.Writer

	// Now supplies the changelog date. Defaults to time.Now.
	Now func() time.Time

	lastCompleted string
}

// Run performs the release for the given bump kind.
func (d *Driver) Run(ctx context.Context, kind semver.Kind) error {
	d.setDefaults()
	gitExe := command.GetExecutablePath(d.Tools, "git")
	cargoExe := command.GetExecutablePath(d.Tools, "cargo")

	contents, err := os.ReadFile(d.ManifestPath)
	if err != nil {
		return err
	}
	crate, err := manifest.ParseCrate(contents)
	if err != nil {
		return fmt.Errorf("%s: %w", d.ManifestPath, err)
	}
	current, err := manifest.CurrentVersion(contents)
	if err != nil {
		return fmt.Errorf("%s: %w", d.ManifestPath, err)
	}
	next, err := current.Bump(kind)
	if err != nil {
		return err
	}
	d.done("version parsed")

	if err := d.preflight(ctx, gitExe, cargoExe, next); err != nil {
		return err
	}
	branch, err := git.CurrentBranch(".")
	if err != nil {
		return err
	}
	slog.Info("releasing crate", "crate", crate.Name, "branch", branch, "bump", kind, "current", current, "next", next)

	if d.DryRun {
		return d.plan(crate, branch, current, next)
	}

	if err := manifest.Rewrite(d.ManifestPath, contents, current, next); err != nil {
		return err
	}
	d.done("manifest rewritten")

	if err := d.Confirm.Confirm(
		fmt.Sprintf("Updating to version %s", next),
		"Press enter to continue or ctrl+C to abort",
	); err != nil {
		return d.halt("operator confirmation", err)
	}

	changes, err := changelog.Promote(d.ChangelogPath, next.String(), d.Now())
	if err != nil {
		return d.halt("changelog rewrite", err)
	}
	d.done("changelog rewritten")
	slog.Warn("the Unreleased section was consumed; add a new one before the next release")

	message, err := commitMessage(next, changes)
	if err != nil {
		return err
	}
	if err := git.Commit(ctx, gitExe, message, d.Sign, d.ChangelogPath, d.ManifestPath); err != nil {
		return d.halt("commit", err)
	}
	d.done("committed")

	if err := git.TagAnnotated(ctx, gitExe, next.TagName(), next.TagName(), changes, d.Sign); err != nil {
		return d.halt("tag", err)
	}
	d.done("tagged")

	if err := d.Confirm.Confirm(
		fmt.Sprintf("Press enter to publish release %s", next),
		"Last chance to abort via ctrl-c",
	); err != nil {
		return d.halt("publish confirmation", err)
	}

	if err := git.Push(ctx, gitExe); err != nil {
		return d.halt("push", err)
	}
	d.done("pushed")

	if err := cargo.Publish(ctx, cargoExe); err != nil {
		return d.halt("publish", err)
	}
	d.done("published")

	slog.Info("release complete", "crate", crate.Name, "version", next)
	return nil
}

func (d *Driver) setDefaults() {
	if d.ManifestPath == "" {
		d.ManifestPath = manifest.DefaultPath
	}
	if d.ChangelogPath == "" {
		d.ChangelogPath = changelog.DefaultPath
	}
	if d.Remote == "" {
		d.Remote = "origin"
	}
	if d.Confirm == nil {
		d.Confirm = NewTerminalConfirmer(os.Stdin, os.Stdout)
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	d.lastCompleted = "started"
}

// preflight fails the release before any file is modified: both tools must
// run, the remote must resolve, the changelog must have an Unreleased
// section to promote, and the release tag must not exist yet.
func (d *Driver) preflight(ctx context.Context, gitExe, cargoExe string, next semver.Version) error {
	if err := git.CheckVersion(ctx, gitExe); err != nil {
		return err
	}
	if err := cargo.CheckVersion(ctx, cargoExe); err != nil {
		return err
	}
	if err := git.CheckRemoteURL(ctx, gitExe, d.Remote); err != nil {
		return err
	}
	ok, err := changelog.HasUnreleased(d.ChangelogPath)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", d.ChangelogPath, changelog.ErrNoUnreleased)
	}
	exists, err := git.TagExists(".", next.TagName())
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrTagExists, next.TagName())
	}
	return nil
}

// plan prints what the release would do without doing it.
func (d *Driver) plan(crate *manifest.Crate, branch string, current, next semver.Version) error {
	contents, err := os.ReadFile(d.ChangelogPath)
	if err != nil {
		return err
	}
	_, changes, found := changelog.Render(string(contents), next.String(), d.Now())
	if !found {
		return fmt.Errorf("%s: %w", d.ChangelogPath, changelog.ErrNoUnreleased)
	}
	message, err := commitMessage(next, changes)
	if err != nil {
		return err
	}
	fmt.Fprintln(d.Out, "Dry run: no files were modified and nothing was run.")
	fmt.Fprintf(d.Out, "Crate:   %s\n", crate.Name)
	fmt.Fprintf(d.Out, "Version: %s -> %s\n", current, next)
	fmt.Fprintf(d.Out, "Tag:     %s\n", next.TagName())
	fmt.Fprintf(d.Out, "Push:    %s (branch %s, --follow-tags)\n", d.Remote, branch)
	fmt.Fprintf(d.Out, "Commit message:\n%s", message)
	return nil
}

func commitMessage(next semver.Version, changes string) (string, error) {
	return mustache.Render(commitMessageTemplate, map[string]string{
		"version": next.String(),
		"changes": changes,
	})
}

func (d *Driver) done(step string) {
	d.lastCompleted = step
	slog.Info(step)
}

// halt reports where the release stopped. Completed steps stay in place;
// recovery is manual.
func (d *Driver) halt(step string, err error) error {
	slog.Error("release halted; completed steps are not rolled back",
		"failed", step, "last_completed", d.lastCompleted)
	return err
}
