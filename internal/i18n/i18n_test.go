package i18n

import (
	"strings"
	"testing"
)

func load(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Load([]string{"en", "hi", "te"}, "en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cat
}

func TestT_Lookup(t *testing.T) {
	cat := load(t)

	tests := []struct {
		name string
		lang string
		key  string
		want string
	}{
		{name: "english", lang: "en", key: "nav.citizen", want: "Citizens"},
		{name: "hindi", lang: "hi", key: "nav.citizen", want: "नागरिक"},
		{name: "telugu", lang: "te", key: "field.department", want: "శాఖ"},
		{name: "missing in telugu falls back to english", lang: "te", key: "queue.fallback", want: "Used when nothing else matches"},
		{name: "unknown locale uses fallback", lang: "fr", key: "nav.home", want: "Home"},
		{name: "unknown key returns key", lang: "en", key: "no.such.key", want: "no.such.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(cat.T(tt.lang, tt.key)); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestT_KeepsAllowedMarkup(t *testing.T) {
	cat := load(t)
	got := string(cat.T("en", "emergency.intro"))
	if !strings.Contains(got, "<strong>112</strong>") {
		t.Fatalf("expected strong tag to survive, got %q", got)
	}
}

func TestT_UnknownKeyIsEscaped(t *testing.T) {
	cat := load(t)
	if got := string(cat.T("en", "<b>x</b>")); strings.Contains(got, "<b>") {
		t.Fatalf("key echo must be escaped, got %q", got)
	}
}

func TestMarkupPolicy_StripsScripts(t *testing.T) {
	p := markupPolicy()

	got := p.Sanitize(`Call <strong>112</strong><script>alert(1)</script> <a href="javascript:alert(1)">now</a> <a href="https://example.org">help</a>`)
	if strings.Contains(got, "<script") || strings.Contains(got, "javascript:") {
		t.Fatalf("unsafe markup survived: %q", got)
	}
	if !strings.Contains(got, `<a href="https://example.org"`) {
		t.Fatalf("expected safe link to survive: %q", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load([]string{"en", "fr"}, "en"); err == nil {
		t.Fatal("expected error for locale without catalog")
	}
	if _, err := Load([]string{"hi"}, "en"); err == nil {
		t.Fatal("expected error when fallback is not loaded")
	}
}

func TestCatalogs_EnglishIsComplete(t *testing.T) {
	cat := load(t)
	for _, lang := range []string{"hi", "te"} {
		for key := range cat.messages[lang] {
			if !cat.Has("en", key) {
				t.Errorf("%s has key %q missing from en", lang, key)
			}
		}
	}
}
