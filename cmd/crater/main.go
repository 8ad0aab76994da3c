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

// Crater releases Rust crates: it bumps the version in Cargo.toml, promotes
// the changelog, commits, tags, pushes and publishes.
//
// Usage:
//
//	crater <command> [arguments]
//
// The commands are:
//
//	release <major|minor|patch>  cut a release of the crate in the current directory
//	version                      print the crater version
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/crateops/crater/internal/crater"
)

func main() {
	if err := crater.Run(context.Background(), os.Args...); err != nil {
		fmt.Fprintln(os.Stderr, "crater:", err)
		os.Exit(1)
	}
}
