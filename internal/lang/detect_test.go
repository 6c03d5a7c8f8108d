package lang

import "testing"

func TestDetectScripts(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"नमस्ते", "hi"},
		{"আপনি কেমন আছেন", "bn"},
		{"வணக்கம்", "ta"},
		{"സുഖമാണോ", "ml"},
		{"మీరు ఎలా ఉన్నారు", "te"},
		{"ಹೇಗಿದ್ದೀರಾ", "kn"},
		{"કેમ છો", "gu"},
		{"ਸਤ ਸ੍ਰੀ ਅਕਾਲ", "pa"},
		{"Hello doctor", "en"},
		{"", "en"},
		{"12345 !!", "en"},
	}
	for _, c := range cases {
		if got := Detect(c.text); got != c.want {
			t.Fatalf("Detect(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestDetectMixedScriptFirstMatchWins(t *testing.T) {
	// Devanagari is first in the table, so mixed Devanagari+Latin is Hindi.
	if got := Detect("मुझे fever है"); got != "hi" {
		t.Fatalf("Detect(mixed) = %q, want hi", got)
	}
	// Devanagari also outranks Tamil regardless of position in the string.
	if got := Detect("வணக்கம் नमस्ते"); got != "hi" {
		t.Fatalf("Detect(tamil+devanagari) = %q, want hi", got)
	}
}

func TestCatalogFallback(t *testing.T) {
	if got := T("te", "emergency_response"); got != T("en", "emergency_response") {
		t.Fatalf("unknown catalog language should fall back to English, got %q", got)
	}
	if got := T("en", "no_such_key"); got != "no_such_key" {
		t.Fatalf("unknown key should echo the key, got %q", got)
	}
	if T("hi", "emergency_response") == T("en", "emergency_response") {
		t.Fatalf("expected a distinct Hindi emergency message")
	}
}
