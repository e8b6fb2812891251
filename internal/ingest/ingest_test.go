package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fuente.txt")
	content := "\uFEFFLección 1. Nada de lo que veo significa nada.\r\nPrimera línea.\rSegunda línea.\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if strings.HasPrefix(got, "\uFEFF") {
		t.Error("BOM should be stripped")
	}
	if strings.Contains(got, "\r") {
		t.Error("carriage returns should be normalized")
	}
	if !strings.Contains(got, "Lección 1.") {
		t.Errorf("content lost: %q", got)
	}
	if !strings.Contains(got, "Primera línea.\nSegunda línea.") {
		t.Errorf("line endings not unified: %q", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "no-existe.txt")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		name string
		path string
		text string
		want bool
	}{
		{"html extension", "libro.html", "texto", true},
		{"htm extension", "libro.htm", "texto", true},
		{"doctype sniffed", "descarga.bin", "<!DOCTYPE html><html><body>x</body></html>", true},
		{"html tag sniffed", "descarga.bin", "  <html lang=\"es\"><head></head></html>", true},
		{"plain text", "libro.txt", "Lección 1. Nada de lo que veo.", false},
		{"text with angle bracket", "libro.txt", "a < b pero no es html", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isHTML(tt.path, tt.text); got != tt.want {
				t.Errorf("isHTML(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	got := normalize("uno\r\ndos\rtres\n")
	if got != "uno\ndos\ntres\n" {
		t.Errorf("normalize() = %q", got)
	}
}
