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

// Package crater implements the crater command line interface.
package crater

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/crateops/crater/internal/release"
	"github.com/crateops/crater/internal/semver"
)

// Run executes the crater CLI with the given command line arguments.
func Run(ctx context.Context, args ...string) error {
	cmd := &cli.Command{
		Name:      "crater",
		Usage:     "release automation for Rust crates",
		UsageText: "crater <command> [flags]",
		Commands: []*cli.Command{
			releaseCommand(),
			versionCommand(),
		},
	}
	return cmd.Run(ctx, args)
}

func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	handler := slog.NewTextHandler(os.Stderr, opts)
	slog.SetDefault(slog.New(handler))
}

func releaseCommand() *cli.Command {
	return &cli.Command{
		Name:      "release",
		Usage:     "cut a release of the crate in the current directory",
		UsageText: "crater release <major|minor|patch> [flags]",
		Description: `release bumps the version in Cargo.toml, promotes the Unreleased
section of CHANGELOG.md, commits and tags the result, then pushes and
publishes the crate.

The operator is prompted twice: after the manifest rewrite and again
before push/publish. Aborting leaves completed steps in place.

Examples:
  crater release patch               # 1.2.3 -> 1.2.4
  crater release minor --dry-run     # print the plan only
  crater release major --yes         # skip both prompts`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "C",
				Usage: "run as if started in `directory`",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable verbose logging",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "print the release plan without modifying anything",
			},
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "skip the confirmation prompts",
			},
			&cli.BoolFlag{
				Name:  "no-sign",
				Usage: "do not GPG-sign the commit and tag",
			},
			&cli.StringFlag{
				Name:  "git",
				Usage: "path to the git `executable`",
			},
			&cli.StringFlag{
				Name:  "cargo",
				Usage: "path to the cargo `executable`",
			},
			&cli.StringFlag{
				Name:  "remote",
				Usage: "git remote the release is pushed to",
				Value: "origin",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogger(cmd.Bool("verbose"))
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one bump kind (major, minor or patch), got %d arguments", cmd.Args().Len())
			}
			kind, err := semver.ParseKind(cmd.Args().Get(0))
			if err != nil {
				return err
			}
			if dir := cmd.String("C"); dir != "" {
				if err := os.Chdir(dir); err != nil {
					return err
				}
			}
			tools := map[string]string{}
			if exe := cmd.String("git"); exe != "" {
				tools["git"] = exe
			}
			if exe := cmd.String("cargo"); exe != "" {
				tools["cargo"] = exe
			}
			driver := &release.Driver{
				Remote: cmd.String("remote"),
				Tools:  tools,
				Sign:   !cmd.Bool("no-sign"),
				DryRun: cmd.Bool("dry-run"),
			}
			if cmd.Bool("yes") || cmd.Bool("dry-run") {
				driver.Confirm = &release.AutoConfirmer{Out: os.Stdout}
			}
			return driver.Run(ctx, kind)
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:      "version",
		Usage:     "print the crater version",
		UsageText: "crater version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Fprintln(cmd.Writer, Version())
			return nil
		},
	}
}
