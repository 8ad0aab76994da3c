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

// Package command provides helpers to execute external commands.
package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Run executes a program (with arguments) and captures any error output.
// Use it for checks where the output only matters on failure.
func Run(ctx context.Context, command string, arg ...string) error {
	cmd := exec.CommandContext(ctx, command, arg...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%v: %v\n%s", cmd, err, output)
	}
	return nil
}

// RunInteractive executes a program with stdin, stdout and stderr inherited
// from the calling process. Signing may prompt for a passphrase and publish
// streams progress, so their output must reach the operator directly.
func RunInteractive(ctx context.Context, command string, arg ...string) error {
	cmd := exec.CommandContext(ctx, command, arg...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%v: %w", cmd, err)
	}
	return nil
}

// Output executes a program and returns its combined output with trailing
// newlines trimmed.
func Output(ctx context.Context, command string, arg ...string) (string, error) {
	cmd := exec.CommandContext(ctx, command, arg...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%v: %v\n%s", cmd, err, output)
	}
	return strings.TrimRight(string(output), "\n"), nil
}

// GetExecutablePath finds the path for a given command, checking for an
// override in the provided overrides map first.
func GetExecutablePath(overrides map[string]string, name string) string {
	if exe, ok := overrides[name]; ok {
		return exe
	}
	return name
}
