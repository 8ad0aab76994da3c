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

package release

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrAborted is reported when the operator aborts at a confirmation gate.
var ErrAborted = errors.New("aborted by operator")

// Confirmer blocks until the operator acknowledges a prompt. The driver
// calls it at two fixed points: after the manifest rewrite and before
// push/publish.
type Confirmer interface {
	// Confirm prints the prompt lines and blocks. A nil return proceeds;
	// any error aborts the release at the gate.
	Confirm(lines ...string) error
}

// TerminalConfirmer prompts on out and blocks until a line arrives on in.
// Any line, including an empty one, continues. End of input aborts. An
// interrupt signal is not handled here: it terminates the whole process,
// which is the intended abort behavior.
type TerminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalConfirmer returns a TerminalConfirmer reading from in and
// prompting on out. The reader is buffered once so consecutive prompts do
// not lose input.
func NewTerminalConfirmer(in io.Reader, out io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm implements [Confirmer].
func (c *TerminalConfirmer) Confirm(lines ...string) error {
	for _, line := range lines {
		fmt.Fprintln(c.out, line)
	}
	input, err := c.in.ReadString('\n')
	if err == io.EOF && input == "" {
		return ErrAborted
	}
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

// AutoConfirmer proceeds through every gate without blocking. It backs the
// --yes flag and dry runs.
type AutoConfirmer struct {
	Out io.Writer
}

// Confirm implements [Confirmer]. The prompt lines are still printed so the
// operator sees what was skipped.
func (c *AutoConfirmer) Confirm(lines ...string) error {
	for _, line := range lines {
		fmt.Fprintln(c.Out, line)
	}
	return nil
}
