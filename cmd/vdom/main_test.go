package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/vdom/internal/errors"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the CLI with args against an empty config file in a fresh
// directory, so the working directory's config never leaks in.
func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	cfg := writeFile(t, t.TempDir(), "vdom.json", "{}")
	return runWithConfig(t, cfg, stdin, args...)
}

func runWithConfig(t *testing.T, cfg, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	prev := writeFile(t, dir, "old.html", `<div><p>hi</p></div>`)
	next := writeFile(t, dir, "new.html", `<div><p>bye</p><br></div>`)

	res := run(t, "", "diff", prev, next)
	if res.err != nil {
		t.Fatalf("diff: %v", res.err)
	}
	want := "ChangeText@2 \"bye\"\nAppendChildren@0 <br>\n"
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestDiffIdenticalTreesPrintsNothing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "same.html", `<ul><li key="a">a</li></ul>`)

	res := run(t, "", "diff", path, path)
	if res.err != nil || res.stdout != "" {
		t.Errorf("diff same tree = %q, %v; want no output", res.stdout, res.err)
	}
}

func TestDiffStdin(t *testing.T) {
	dir := t.TempDir()
	prev := writeFile(t, dir, "old.html", `<p>a</p>`)

	res := run(t, `<p>b</p>`, "diff", prev, "-")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if res.stdout != "ChangeText@1 \"b\"\n" {
		t.Errorf("stdout = %q", res.stdout)
	}

	res = run(t, "", "diff", "-", "-")
	if errors.CodeOf(res.err) != "E140" {
		t.Errorf("both stdin err = %v, want E140", res.err)
	}
}

func TestDiffVerifyAndStats(t *testing.T) {
	dir := t.TempDir()
	prev := writeFile(t, dir, "old.html", `<ul><li key="a">a</li><li key="b">b</li><li key="c">c</li></ul>`)
	next := writeFile(t, dir, "new.html", `<ul><li key="c">c</li><li key="a">a</li><li key="d">d</li></ul>`)

	res := run(t, "", "diff", "--verify", "--stats", prev, next)
	if res.err != nil {
		t.Fatalf("diff --verify: %v", res.err)
	}
	for _, want := range []string{
		"✓ patched tree matches",
		"# TYPE vdom_diffs_total counter",
		"vdom_diffs_total 2",
		`vdom_patches_total{op="RemoveChildren"} 2`,
		"vdom_patch_duration_seconds_count 1",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestDiffMetricsFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "vdom.yaml", "metrics:\n  enabled: true\n  namespace: app\n")
	prev := writeFile(t, dir, "old.html", `<p>a</p>`)
	next := writeFile(t, dir, "new.html", `<p>b</p>`)

	res := runWithConfig(t, cfg, "", "diff", prev, next)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if !strings.Contains(res.stdout, `app_patches_total{op="ChangeText"} 1`) {
		t.Errorf("stdout missing namespaced metric:\n%s", res.stdout)
	}
}

func TestInputErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.html", `<p>a</p>`)
	twoRoots := writeFile(t, dir, "two.html", `<p>a</p><p>b</p>`)

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"missing file", []string{"diff", filepath.Join(dir, "nope.html"), good}, "E140"},
		{"two roots", []string{"diff", good, twoRoots}, "E130"},
		{"render two roots", []string{"render", twoRoots}, "E130"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", tt.args...)
			if got := errors.CodeOf(res.err); got != tt.code {
				t.Errorf("error code = %q (%v), want %s", got, res.err, tt.code)
			}
		})
	}

	if res := run(t, "", "diff", good); res.err == nil {
		t.Error("diff with one argument succeeded")
	}
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "vdom.json", `{"log": {"level": "loud"}}`)
	if res := runWithConfig(t, bad, "", "version", "--short"); errors.CodeOf(res.err) != "E121" {
		t.Errorf("invalid config err = %v, want E121", res.err)
	}

	missing := filepath.Join(dir, "absent.json")
	if res := runWithConfig(t, missing, "", "version"); errors.CodeOf(res.err) != "E120" {
		t.Errorf("missing config err = %v, want E120", res.err)
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "view.html", `<div id="app" hidden><input disabled value="x"><p>hi</p></div>`)

	res := run(t, "", "render", path)
	if res.err != nil {
		t.Fatal(res.err)
	}
	want := `<div hidden id="app"><input disabled value="x"><p>hi</p></div>` + "\n"
	if res.stdout != want {
		t.Errorf("render = %q, want %q", res.stdout, want)
	}
}

func TestRenderPrettyFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "vdom.json", `{"render": {"pretty": true, "indent": "\t"}}`)
	path := writeFile(t, dir, "view.html", `<ul><li>x</li></ul>`)

	res := runWithConfig(t, cfg, "", "render", path)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if want := "<ul>\n\t<li>\n\t\tx\n\t</li>\n</ul>\n"; res.stdout != want {
		t.Errorf("render = %q, want %q", res.stdout, want)
	}

	res = runWithConfig(t, cfg, "", "render", "--pretty=false", path)
	if want := "<ul><li>x</li></ul>\n"; res.stdout != want {
		t.Errorf("render --pretty=false = %q, want %q", res.stdout, want)
	}
}

func TestRenderPage(t *testing.T) {
	res := run(t, `<main>hi</main>`, "render", "--page", "--title", "Demo", "--lang", "de", "-")
	if res.err != nil {
		t.Fatal(res.err)
	}
	for _, want := range []string{"<!DOCTYPE html>", `<html lang="de">`, "<title>Demo</title>", "<main>hi</main>"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("page missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestVersion(t *testing.T) {
	res := run(t, "", "version", "--short")
	if res.err != nil || res.stdout != version+"\n" {
		t.Errorf("version --short = %q, %v", res.stdout, res.err)
	}

	res = run(t, "", "version")
	if !strings.Contains(res.stdout, "Go version:") {
		t.Errorf("version = %q", res.stdout)
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "view.html", `<p>x</p>`)

	res := run(t, "", "--verbose", "render", path)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if !strings.Contains(res.stderr, "tree rendered") {
		t.Errorf("stderr = %q, want debug record", res.stderr)
	}
}
