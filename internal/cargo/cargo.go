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

// Package cargo wraps the cargo invocations performed during a release.
package cargo

import (
	"context"

	"github.com/crateops/crater/internal/command"
)

// CheckVersion checks that the cargo version command can run.
func CheckVersion(ctx context.Context, cargoExe string) error {
	return command.Run(ctx, cargoExe, "--version")
}

// Publish uploads the crate to the registry. Output streams to the operator.
// A failure here leaves any pushed commit and tag in place; the registry is
// the last step and is not rolled back.
func Publish(ctx context.Context, cargoExe string) error {
	return command.RunInteractive(ctx, cargoExe, "publish")
}
