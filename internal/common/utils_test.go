package common

import (
	"strings"
	"testing"
)

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("Lección 1. Nada de lo que veo significa nada."))
	b := ContentHash([]byte("Lección 1. Nada de lo que veo significa nada."))
	c := ContentHash([]byte("otro contenido"))

	if a != b {
		t.Error("identical content should hash identically")
	}
	if a == c {
		t.Error("different content should hash differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestMarshalOutput(t *testing.T) {
	doc := struct {
		Name  string `yaml:"name" json:"name"`
		Count int    `yaml:"count" json:"count"`
	}{Name: "prueba", Count: 3}

	yamlOut, err := MarshalOutput(doc, "")
	if err != nil {
		t.Fatalf("MarshalOutput(yaml) error = %v", err)
	}
	if !strings.Contains(string(yamlOut), "name: prueba") {
		t.Errorf("yaml output = %q", yamlOut)
	}

	jsonOut, err := MarshalOutput(doc, "json")
	if err != nil {
		t.Fatalf("MarshalOutput(json) error = %v", err)
	}
	if !strings.Contains(string(jsonOut), `"count": 3`) {
		t.Errorf("json output = %q", jsonOut)
	}

	if _, err := MarshalOutput(doc, "xml"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
