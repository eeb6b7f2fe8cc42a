package def

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
name: easycrypt
extensions: [".ec", ".eca"]
comments:
  start: "(*"
  end: "*)"
  template: "(* %s *)"
  table: "sr:(*,mb:*,ex:*)"
  formatOptions: croql
include:
  pattern: 'require\s\+import'
  suffixes: [".ec"]
tags:
  func: easycrypt.tags
match:
  - {start: theory, end: end}
  - {start: proof, end: qed}
autoClose:
  - {start: proof, end: qed}
  - {start: lemma}
prover: easycrypt
`

func TestDecodeYAML(t *testing.T) {
	ft, err := DecodeYAML(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("DecodeYAML failed: %v", err)
	}

	if ft.Name != "easycrypt" {
		t.Errorf("Name = %q", ft.Name)
	}
	if ft.Comments == nil || ft.Comments.FormatOptions != "croql" {
		t.Error("comments block not decoded")
	}
	if ft.Include == nil || len(ft.Include.Suffixes) != 1 {
		t.Error("include block not decoded")
	}
	if got := ft.MatchWords(); got != "theory:end,proof:qed" {
		t.Errorf("MatchWords = %q", got)
	}
	if got := ft.CloseWords(); got != "proof:qed,lemma" {
		t.Errorf("CloseWords = %q", got)
	}
}

func TestDecodeYAML_Invalid(t *testing.T) {
	if _, err := DecodeYAML(strings.NewReader("{not yaml")); err == nil {
		t.Error("expected parse error")
	}

	// Valid YAML, invalid definition
	_, err := DecodeYAML(strings.NewReader("extensions: [.x]"))
	if !errors.Is(err, ErrNoName) {
		t.Errorf("err = %v, want ErrNoName", err)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "easycrypt.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	ft, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML failed: %v", err)
	}
	if ft.Name != "easycrypt" {
		t.Errorf("Name = %q", ft.Name)
	}

	if _, err := LoadYAML(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
