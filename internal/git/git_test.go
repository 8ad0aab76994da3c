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

package git

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/crateops/crater/internal/command"
	"github.com/crateops/crater/internal/testhelper"
)

func TestCheckVersion(t *testing.T) {
	testhelper.RequireCommand(t, "git")
	if err := CheckVersion(t.Context(), "git"); err != nil {
		t.Fatal(err)
	}
}

func TestCheckRemoteURL(t *testing.T) {
	testhelper.SetupForRelease(t)
	if err := CheckRemoteURL(t.Context(), "git", "origin"); err != nil {
		t.Fatal(err)
	}
	if err := CheckRemoteURL(t.Context(), "git", "no-such-remote"); err == nil {
		t.Error("expected error for unknown remote, got nil")
	}
}

func TestCommitRestrictedToFiles(t *testing.T) {
	testhelper.SetupForRelease(t)

	// Modify the two release files, and stage an unrelated change that must
	// not end up in the commit.
	testhelper.WriteFile(t, "Cargo.toml", strings.Replace(testhelper.CargoContents, "1.2.3", "1.2.4", 1))
	testhelper.WriteFile(t, "CHANGELOG.md", testhelper.ChangelogContents+"\nmore\n")
	testhelper.WriteFile(t, "unrelated.txt", "staged but not released\n")
	if err := command.Run(t.Context(), "git", "add", "unrelated.txt"); err != nil {
		t.Fatal(err)
	}

	message := "chore: release version 1.2.4\n\n- fixed bug X\n"
	if err := Commit(t.Context(), "git", message, false, "CHANGELOG.md", "Cargo.toml"); err != nil {
		t.Fatal(err)
	}

	output, err := command.Output(t.Context(), "git", "show", "--name-only", "--pretty=format:")
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Fields(output)
	sort.Strings(got)
	want := []string{"CHANGELOG.md", "Cargo.toml"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("committed files mismatch (-want +got):\n%s", diff)
	}

	subject, err := command.Output(t.Context(), "git", "log", "-1", "--pretty=format:%s")
	if err != nil {
		t.Fatal(err)
	}
	if subject != "chore: release version 1.2.4" {
		t.Errorf("commit subject = %q, want %q", subject, "chore: release version 1.2.4")
	}
}

func TestCommitFailsOutsideRepository(t *testing.T) {
	testhelper.RequireCommand(t, "git")
	t.Chdir(t.TempDir())
	if err := Commit(t.Context(), "git", "message", false, "missing.txt"); err == nil {
		t.Error("expected error outside a repository, got nil")
	}
}

func TestTagAnnotated(t *testing.T) {
	testhelper.SetupForRelease(t)

	body := "- fixed bug X\n"
	if err := TagAnnotated(t.Context(), "git", "v1.2.4", "v1.2.4", body, false); err != nil {
		t.Fatal(err)
	}

	annotation, err := command.Output(t.Context(), "git", "tag", "-l", "--format=%(contents)", "v1.2.4")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(annotation, "v1.2.4") {
		t.Errorf("annotation should start with the short message, got %q", annotation)
	}
	if !strings.Contains(annotation, "- fixed bug X") {
		t.Errorf("annotation should contain the changes, got %q", annotation)
	}
}

func TestTagAnnotatedDuplicate(t *testing.T) {
	testhelper.SetupForRelease(t)
	if err := TagAnnotated(t.Context(), "git", "v1.2.4", "v1.2.4", "", false); err != nil {
		t.Fatal(err)
	}
	if err := TagAnnotated(t.Context(), "git", "v1.2.4", "v1.2.4", "", false); err == nil {
		t.Error("expected error creating a duplicate tag, got nil")
	}
}

func TestPushFollowsTags(t *testing.T) {
	remoteDir := testhelper.SetupForRelease(t)

	testhelper.WriteFile(t, "Cargo.toml", strings.Replace(testhelper.CargoContents, "1.2.3", "1.2.4", 1))
	if err := Commit(t.Context(), "git", "chore: release version 1.2.4", false, "Cargo.toml"); err != nil {
		t.Fatal(err)
	}
	if err := TagAnnotated(t.Context(), "git", "v1.2.4", "v1.2.4", "- fixed bug X\n", false); err != nil {
		t.Fatal(err)
	}
	if err := Push(t.Context(), "git"); err != nil {
		t.Fatal(err)
	}

	tags, err := command.Output(t.Context(), "git", "--git-dir", remoteDir, "tag", "-l")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tags, "v1.2.4") {
		t.Errorf("remote tags = %q, want to contain v1.2.4", tags)
	}
}

func TestTagExists(t *testing.T) {
	testhelper.SetupForRelease(t)

	exists, err := TagExists(".", "v1.2.4")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("TagExists() = true before tagging, want false")
	}

	if err := TagAnnotated(t.Context(), "git", "v1.2.4", "v1.2.4", "", false); err != nil {
		t.Fatal(err)
	}
	exists, err = TagExists(".", "v1.2.4")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("TagExists() = false after tagging, want true")
	}
}

func TestTagExistsNoRepository(t *testing.T) {
	if _, err := TagExists(t.TempDir(), "v1.0.0"); err == nil {
		t.Error("expected error outside a repository, got nil")
	}
}

func TestCurrentBranch(t *testing.T) {
	testhelper.SetupForRelease(t)
	got, err := CurrentBranch(".")
	if err != nil {
		t.Fatal(err)
	}
	if got != "main" {
		t.Errorf("CurrentBranch() = %q, want %q", got, "main")
	}
}
