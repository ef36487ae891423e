// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// DefaultFileName is the conventional inventory file in the working directory.
const DefaultFileName = "hosts.ini"

// Result is the outcome of a parse. It is never nil: when the source is
// unavailable Tree is the canonical empty tree.
type Result struct {
	Tree        *Tree
	Diagnostics Diagnostics
}

// Parse reads r line by line and builds its tree. Only a read failure is
// returned as an error; everything else is reported in Result.Diagnostics.
func Parse(r io.Reader, opts Options) (*Result, error) {
	return parse(r, "", opts)
}

// ParseFile opens and parses path. Open and read failures return an error
// wrapping ErrSourceUnavailable together with an empty, well-formed Result.
func ParseFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return unavailable(path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return parse(f, path, opts)
}

func parse(r io.Reader, path string, opts Options) (*Result, error) {
	maxLine := opts.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}

	b := NewBuilder(opts)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(4096, maxLine)), maxLine)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		b.Feed(line)
	}
	if err := sc.Err(); err != nil {
		return unavailable(path, err)
	}

	return &Result{Tree: b.Tree(), Diagnostics: b.Diagnostics()}, nil
}

func unavailable(path string, cause error) (*Result, error) {
	err := &SourceUnavailableError{Path: path, Err: cause}
	return &Result{
		Tree: NewTree(),
		Diagnostics: Diagnostics{{
			Severity: SeverityError,
			Code:     CodeSourceUnavailable,
			Message:  err.Error(),
		}},
	}, err
}
