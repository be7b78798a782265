package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenInputFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.md")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	reader, closer, err := openInputs([]string{path})
	if err != nil {
		t.Fatalf("openInputs file: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file content: %q", string(buf))
	}

	fileURL := "file://" + path
	reader, closer, err = openInputs([]string{fileURL})
	if err != nil {
		t.Fatalf("openInputs file URL: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file URL content: %q", string(buf))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()
	reader, closer, err = openInputs([]string{srv.URL})
	if err != nil {
		t.Fatalf("openInputs http: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "remote" {
		t.Fatalf("unexpected http content: %q", string(buf))
	}
}

func TestOpenInputsConcatenates(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.md")
	second := filepath.Join(dir, "b.md")
	if err := os.WriteFile(first, []byte("one "), 0o644); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := os.WriteFile(second, []byte("two"), 0o644); err != nil {
		t.Fatalf("write second: %v", err)
	}
	reader, closer, err := openInputs([]string{first, second})
	if err != nil {
		t.Fatalf("openInputs concat: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "one two" {
		t.Fatalf("unexpected concatenated content: %q", string(buf))
	}
}

func TestFilePathOf(t *testing.T) {
	if got := filePathOf("file:///tmp/doc.md"); got != "/tmp/doc.md" {
		t.Fatalf("file URL path: %q", got)
	}
	if got := filePathOf("notes/doc.md"); got != "notes/doc.md" {
		t.Fatalf("plain path changed: %q", got)
	}
	if got := filePathOf("file:///tmp/with%20space.md"); got != "/tmp/with space.md" {
		t.Fatalf("unescaped path: %q", got)
	}
}

func TestResolveColorModes(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer func() { _ = tmp.Close() }()

	if !resolveColor("on", tmp) {
		t.Fatalf("on should force color")
	}
	if resolveColor("off", tmp) {
		t.Fatalf("off should disable color")
	}

	t.Setenv("NO_COLOR", "1")
	t.Setenv("CLICOLOR_FORCE", "")
	if resolveColor("auto", tmp) {
		t.Fatalf("NO_COLOR should win in auto mode")
	}

	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR", "")
	t.Setenv("CLICOLOR_FORCE", "1")
	if !resolveColor("auto", tmp) {
		t.Fatalf("CLICOLOR_FORCE should color a pipe")
	}

	t.Setenv("CLICOLOR_FORCE", "0")
	if resolveColor("auto", tmp) {
		t.Fatalf("CLICOLOR_FORCE=0 should not force color")
	}
}

func TestLoadConfigFile(t *testing.T) {
	if _, err := loadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"), true); err == nil {
		t.Fatalf("explicit missing config should error")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: mono\nwidth: 100\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	file, err := loadConfigFile(path, true)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if file.Theme != "mono" || file.Width != 100 {
		t.Fatalf("unexpected config: %+v", file)
	}
}
