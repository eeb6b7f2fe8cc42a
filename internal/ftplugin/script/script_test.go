package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/prooftype/internal/ftplugin/def"
)

const sampleLua = `
return {
    name = "easycrypt",
    extensions = { ".ec", ".eca" },
    comments = {
        start = "(*",
        ["end"] = "*)",
        template = "(* %s *)",
        table = "sr:(*,mb:*,ex:*)",
        formatOptions = "croql",
    },
    include = {
        pattern = "require",
        suffixes = { ".ec" },
    },
    tags = { func = "easycrypt.tags" },
    match = {
        { start = "theory", ["end"] = "end" },
        { start = "proof", ["end"] = "qed" },
    },
    autoClose = {
        { start = "proof", ["end"] = "qed" },
        { start = "lemma" },
    },
    prover = "easycrypt",
}
`

func TestLoadString(t *testing.T) {
	ft, err := LoadString(sampleLua)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	if ft.Name != "easycrypt" {
		t.Errorf("Name = %q", ft.Name)
	}
	if len(ft.Extensions) != 2 || ft.Extensions[0] != ".ec" {
		t.Errorf("Extensions = %v", ft.Extensions)
	}
	if ft.Comments == nil || ft.Comments.Template != "(* %s *)" {
		t.Error("comments block not converted")
	}
	if ft.Comments.End != "*)" {
		t.Errorf("comments end = %q", ft.Comments.End)
	}
	if ft.Include == nil || ft.Include.Pattern != "require" {
		t.Error("include block not converted")
	}
	if ft.Tags == nil || ft.Tags.Func != "easycrypt.tags" {
		t.Error("tags block not converted")
	}
	if got := ft.MatchWords(); got != "theory:end,proof:qed" {
		t.Errorf("MatchWords = %q", got)
	}
	if got := ft.CloseWords(); got != "proof:qed,lemma" {
		t.Errorf("CloseWords = %q", got)
	}
	if ft.Prover != "easycrypt" {
		t.Errorf("Prover = %q", ft.Prover)
	}
}

func TestLoadString_NotATable(t *testing.T) {
	if _, err := LoadString(`return "just a string"`); !errors.Is(err, ErrNotATable) {
		t.Errorf("err = %v, want ErrNotATable", err)
	}
}

func TestLoadString_InvalidDefinition(t *testing.T) {
	_, err := LoadString(`return { extensions = { ".x" } }`)
	if !errors.Is(err, def.ErrNoName) {
		t.Errorf("err = %v, want def.ErrNoName", err)
	}
}

func TestLoadString_BadSyntax(t *testing.T) {
	if _, err := LoadString(`return {{{`); err == nil {
		t.Error("expected syntax error")
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "easycrypt.lua")
	if err := os.WriteFile(path, []byte(sampleLua), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	ft, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ft.Name != "easycrypt" {
		t.Errorf("Name = %q", ft.Name)
	}

	if _, err := Load(filepath.Join(dir, "missing.lua")); err == nil {
		t.Error("expected error for missing file")
	}
}
