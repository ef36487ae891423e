// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const exampleInventory = `web1 env=prod
[webservers]
web2
web3 env=staging
[webservers:vars]
port=80
`

func TestParseExample(t *testing.T) {
	t.Parallel()

	res, err := Parse(strings.NewReader(exampleInventory), Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("diagnostics = %v, want none", res.Diagnostics)
	}
	tree := res.Tree

	if got := tree.Ungrouped().Hosts; !slices.Equal(got, []string{"web1"}) {
		t.Errorf("ungrouped.hosts = %v, want [web1]", got)
	}

	web, ok := tree.Group("webservers")
	if !ok {
		t.Fatal("group webservers missing")
	}
	if !slices.Equal(web.Hosts, []string{"web2", "web3"}) {
		t.Errorf("webservers.hosts = %v, want [web2 web3]", web.Hosts)
	}
	if port, _ := web.Vars.Get("port"); port != "80" || web.Vars.Len() != 1 {
		t.Errorf("webservers.vars = %v, want {port: 80}", web.Vars.Map())
	}

	if got := tree.All().Children; !slices.Equal(got, []string{UngroupedGroup, "webservers"}) {
		t.Errorf("all.children = %v, want [ungrouped webservers]", got)
	}

	if got := tree.HostVarsHosts(); !slices.Equal(got, []string{"web1", "web3"}) {
		t.Errorf("hostvars hosts = %v, want [web1 web3]", got)
	}
	if v, _ := tree.HostVars("web1"); v.Len() != 1 {
		t.Errorf("web1 vars = %v, want {env: prod}", v.Map())
	} else if env, _ := v.Get("env"); env != "prod" {
		t.Errorf("web1 env = %q, want prod", env)
	}
	if v, _ := tree.HostVars("web3"); v.Len() != 1 {
		t.Errorf("web3 vars = %v, want {env: staging}", v.Map())
	} else if env, _ := v.Get("env"); env != "staging" {
		t.Errorf("web3 env = %q, want staging", env)
	}
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "\n\n", "   \n\t\n"} {
		res, err := Parse(strings.NewReader(input), Options{})
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", input, err)
		}
		if !res.Tree.Equal(NewTree()) {
			t.Errorf("Parse(%q) tree is not the canonical empty tree", input)
		}
	}
}

func TestParseIsDeterministic(t *testing.T) {
	t.Parallel()

	input := exampleInventory + "[db]\ndb-[1:3] role=db\n[all:children]\ndb\n"
	first, err := Parse(strings.NewReader(input), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for range 5 {
		again, err := Parse(strings.NewReader(input), DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if !first.Tree.Equal(again.Tree) {
			t.Fatal("parsing the same input twice produced different trees")
		}
	}
}

func TestParseLineEndings(t *testing.T) {
	t.Parallel()

	unix, err := Parse(strings.NewReader(exampleInventory), Options{})
	if err != nil {
		t.Fatal(err)
	}
	crlf := "\ufeff" + strings.ReplaceAll(exampleInventory, "\n", "\r\n")
	dos, err := Parse(strings.NewReader(crlf), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !unix.Tree.Equal(dos.Tree) {
		t.Error("CRLF input with BOM must produce the same tree as LF input")
	}
}

func TestParseMalformedHeaderKeepsGoing(t *testing.T) {
	t.Parallel()

	res, err := Parse(strings.NewReader("[oops\nx\n[ok]\ny\n"), Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !res.Diagnostics.HasErrors() {
		t.Error("want an error diagnostic for the malformed header")
	}
	ok, _ := res.Tree.Group("ok")
	if !slices.Equal(ok.Hosts, []string{"y"}) {
		t.Errorf("ok.hosts = %v, want [y]", ok.Hosts)
	}
	if slices.Contains(res.Tree.Hosts(), "x") {
		t.Error("x must be discarded")
	}
}

func TestParseFileMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.ini")
	res, err := ParseFile(path, DefaultOptions())
	if err == nil {
		t.Fatal("ParseFile() on missing file succeeded")
	}
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("error %v does not wrap ErrSourceUnavailable", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v does not wrap fs.ErrNotExist", err)
	}
	var sue *SourceUnavailableError
	if !errors.As(err, &sue) || sue.Path != path {
		t.Errorf("error %v is not a SourceUnavailableError for %s", err, path)
	}
	if res == nil || !res.Tree.Equal(NewTree()) {
		t.Error("unavailable source must still yield the empty tree")
	}
	if got := codes(res.Diagnostics); !slices.Equal(got, []string{CodeSourceUnavailable}) {
		t.Errorf("diagnostics = %v, want [%s]", got, CodeSourceUnavailable)
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(exampleInventory), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := ParseFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if got := res.Tree.Hosts(); !slices.Equal(got, []string{"web1", "web2", "web3"}) {
		t.Errorf("hosts = %v, want [web1 web2 web3]", got)
	}
}

func TestParseLineTooLong(t *testing.T) {
	t.Parallel()

	input := "web1\n" + strings.Repeat("x", 64) + "\n"
	res, err := Parse(strings.NewReader(input), Options{MaxLineBytes: 16})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("error = %v, want ErrSourceUnavailable", err)
	}
	if !res.Tree.Equal(NewTree()) {
		t.Error("a failed read must not return a partial tree")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestParseReadError(t *testing.T) {
	t.Parallel()

	_, err := Parse(failingReader{}, Options{})
	if !errors.Is(err, ErrSourceUnavailable) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("error = %v, want ErrSourceUnavailable wrapping io.ErrUnexpectedEOF", err)
	}
}
