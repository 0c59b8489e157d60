package e2e

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/you-not-fish/starla/internal/driver"
	"github.com/you-not-fish/starla/internal/syntax"
)

var update = flag.Bool("update", false, "rewrite .golden files")

// TestE2E runs the front end over every .star file in testdata/.
// Each test:
//  1. Parses the file through the driver
//  2. Formats the tree and compares it against the .golden file
//  3. Reparses the formatted source and checks the trees are Equal
//  4. Checks that formatting the reparsed tree is stable
//  5. Checks that the JSON and YAML dumps encode without error
func TestE2E(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.star")
	if err != nil {
		t.Fatal(err)
	}
	if len(testFiles) == 0 {
		t.Fatal("no .star test files found in testdata/")
	}

	for _, testFile := range testFiles {
		name := strings.TrimSuffix(filepath.Base(testFile), ".star")
		t.Run(name, func(t *testing.T) {
			runE2ETest(t, testFile)
		})
	}
}

func runE2ETest(t *testing.T, starFile string) {
	t.Helper()

	res, err := driver.New(nil, nil).ParseFile(starFile)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(res.Diagnostics) > 0 {
		t.Fatalf("illegal characters: %v", res.Diagnostics)
	}

	got := syntax.FormatString(res.Module)
	compareGolden(t, starFile, got)

	back, err := syntax.ParseString(got)
	if err != nil {
		t.Fatalf("formatted source does not parse: %v\n%s", err, got)
	}
	if !syntax.Equal(res.Module, back) {
		t.Errorf("round trip changed the tree:\n%s", syntax.Diff(res.Module, back))
	}
	if again := syntax.FormatString(back); again != got {
		t.Errorf("formatting is not stable:\nfirst:  %q\nsecond: %q", got, again)
	}

	var buf bytes.Buffer
	if err := syntax.FprintJSON(&buf, res.Module); err != nil {
		t.Errorf("json: %v", err)
	}
	buf.Reset()
	if err := syntax.FprintYAML(&buf, res.Module); err != nil {
		t.Errorf("yaml: %v", err)
	}
}

// TestE2EErrors checks the reported diagnostics of every .star file in
// testdata/errors/ against its .golden file.
func TestE2EErrors(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/errors/*.star")
	if err != nil {
		t.Fatal(err)
	}
	if len(testFiles) == 0 {
		t.Fatal("no .star test files found in testdata/errors/")
	}

	for _, testFile := range testFiles {
		name := strings.TrimSuffix(filepath.Base(testFile), ".star")
		t.Run(name, func(t *testing.T) {
			res, err := driver.New(nil, nil).ParseFile(testFile)
			if err == nil {
				t.Fatal("parse succeeded, want a syntax error")
			}
			if res.Module != nil {
				t.Error("failed parse returned a module")
			}

			var lines []string
			for _, e := range res.Diagnostics {
				lines = append(lines, e.Error())
			}
			lines = append(lines, err.Error())
			compareGolden(t, testFile, strings.Join(lines, "\n")+"\n")
		})
	}
}

// compareGolden compares got against the .golden file next to starFile,
// rewriting it when -update is set.
func compareGolden(t *testing.T, starFile, got string) {
	t.Helper()

	goldenFile := strings.TrimSuffix(starFile, ".star") + ".golden"
	if *update {
		if err := os.WriteFile(goldenFile, []byte(got), 0o644); err != nil {
			t.Fatalf("writing golden file: %v", err)
		}
		return
	}

	expected, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	if want := string(expected); got != want {
		t.Errorf("output mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}
