package patterns

import (
	"strings"
	"testing"
)

func TestForLessons_PrimaryVariants(t *testing.T) {
	lib := ForLessons()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"accented marker", "Lección 42. Dios es mi fortaleza.\n", true},
		{"uppercase marker", "LECCIÓN 153. Texto de la lección\n", true},
		{"tilde lost", "Leccion 7. Sólo veo el pasado.\n", true},
		{"lowercase marker", "lección 7. Sólo veo el pasado.\n", true},
		{"uppercase tilde lost", "LECCION 7. Sólo veo el pasado.\n", true},
		{"mid-line marker rejected", "como dice la Lección 42 más adelante\n", false},
		{"indented marker", "   Lección 200: No busco otra cosa\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := false
			for _, re := range lib.Primary.Expressions {
				if re.MatchString(tt.text) {
					got = true
					break
				}
			}
			if got != tt.want {
				t.Errorf("primary match = %v, want %v for %q", got, tt.want, tt.text)
			}
		})
	}
}

func TestForLessons_PrimaryCaptures(t *testing.T) {
	lib := ForLessons()
	text := "Lección 76. No me gobiernan otras leyes que las de Dios.\n"

	m := lib.Primary.Expressions[0].FindStringSubmatch(text)
	if m == nil {
		t.Fatal("expected a match")
	}
	if m[1] != "76" {
		t.Errorf("number capture = %q, want 76", m[1])
	}
	if !strings.Contains(m[2], "No me gobiernan") {
		t.Errorf("title capture = %q, want lesson title", m[2])
	}
}

func TestForLessons_SecondaryCaseInsensitive(t *testing.T) {
	lib := ForLessons()

	tests := []struct {
		name string
		text string
	}{
		{"lowercase ejercicio", "Comienza el ejercicio 14 de hoy.\n"},
		{"lowercase numero", "la lección número 33 continúa\n"},
		{"lowercase dia", "día 200. No busco otra cosa\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := false
			for _, re := range lib.Secondary.Expressions {
				if re.MatchString(tt.text) {
					got = true
					break
				}
			}
			if !got {
				t.Errorf("secondary families should match %q", tt.text)
			}
		})
	}
}

func TestSequentialFamily(t *testing.T) {
	lib := ForLessons()

	fam, err := lib.SequentialFamily(21, 30)
	if err != nil {
		t.Fatalf("SequentialFamily() error = %v", err)
	}
	if !fam.ContextGated {
		t.Error("sequential family should be context gated")
	}

	re := fam.Expressions[0]
	if !re.MatchString("25. El único propósito que veo\n") {
		t.Error("expected match for number inside batch range")
	}
	if re.MatchString("31. Fuera del rango del lote\n") {
		t.Error("number outside batch range should not match")
	}

	if _, err := lib.SequentialFamily(10, 5); err == nil {
		t.Error("inverted range should error")
	}
}

func TestSpecificStrategies(t *testing.T) {
	lib := ForLessons()
	strategies := lib.SpecificStrategies(91)

	if len(strategies) != 3 {
		t.Fatalf("got %d strategies, want 3", len(strategies))
	}
	for i := 1; i < len(strategies); i++ {
		if strategies[i].Confidence >= strategies[i-1].Confidence {
			t.Errorf("strategies not ordered strongest first: %v then %v",
				strategies[i-1].Confidence, strategies[i].Confidence)
		}
	}

	text := "texto previo\nLección 91. Los milagros se ven en la luz.\nmás texto"
	if strategies[0].Expression.FindStringIndex(text) == nil {
		t.Error("marker strategy should match explicit marker")
	}
	if strategies[0].Expression.MatchString("Lección 191. Otro número") {
		t.Error("marker strategy for 91 must not match 191")
	}

	bare := "página anterior\n91\nEl texto de la lección empieza aquí"
	if strategies[2].Expression.FindStringIndex(bare) == nil {
		t.Error("bare-number strategy should match a number on its own line")
	}
}

func TestMarkerRe(t *testing.T) {
	lessons := ForLessons().MarkerRe()
	if !lessons.MatchString("y así termina.\nLección 12 comienza") {
		t.Error("MarkerRe should match lesson markers")
	}
	if lessons.MatchString("Capítulo 12 del texto") {
		t.Error("lesson MarkerRe should not match chapter markers")
	}

	chapters := ForChapters().MarkerRe()
	if !chapters.MatchString("Capítulo 3: El mundo inocente") {
		t.Error("chapter MarkerRe should match chapter markers")
	}
}

func TestCorruptionRes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"mojibake a-acute", "El perdÃ³n es la llave", true},
		{"mojibake n-tilde", "maÃ±ana por la tarde", true},
		{"smart quote mangling", "dijo â€œholaâ€", true},
		{"clean spanish", "El perdón es la llave de la felicidad. ¿Qué más?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := false
			for _, re := range CorruptionRes {
				if re.MatchString(tt.text) {
					got = true
					break
				}
			}
			if got != tt.want {
				t.Errorf("corruption detected = %v, want %v for %q", got, tt.want, tt.text)
			}
		})
	}
}

func TestSuggestEncodingFix(t *testing.T) {
	tests := []struct {
		corrupted string
		want      string
	}{
		{"Ã¡", "á"},
		{"perdÃ³n", "perdón"},
		{"sin problema", ""},
	}

	for _, tt := range tests {
		if got := SuggestEncodingFix(tt.corrupted); got != tt.want {
			t.Errorf("SuggestEncodingFix(%q) = %q, want %q", tt.corrupted, got, tt.want)
		}
	}
}

func TestSectionBoundaries(t *testing.T) {
	text := "PRIMERA PARTE texto\nLIBRO DE EJERCICIOS\nLección 1...\nMANUAL PARA EL MAESTRO\n"

	start := SectionStartRe.FindStringIndex(text)
	if start == nil {
		t.Fatal("expected section start match")
	}
	end := SectionEndRe.FindStringIndex(text[start[1]:])
	if end == nil {
		t.Fatal("expected section end match after start")
	}
}

func TestHasDomainKeyword(t *testing.T) {
	if !HasDomainKeyword("El Perdón es la llave") {
		t.Error("should match keyword case-insensitively")
	}
	if HasDomainKeyword("texto sin vocabulario relevante") {
		t.Error("should not match unrelated text")
	}
}

func TestHasContextIndicator(t *testing.T) {
	if !HasContextIndicator("Dedica un minuto a este ejercicio") {
		t.Error("should match practice vocabulary")
	}
	if HasContextIndicator("128") {
		t.Error("bare number has no context")
	}
}
