package healthid

import (
	"regexp"
	"strings"
	"testing"
)

var shape = regexp.MustCompile(`^WH-[A-Z0-9]{4}-\d{8}$`)

func TestGenerateDeterministic(t *testing.T) {
	refs := []string{"user_2abc123XYZ", "a", "worker@example.com", "user_29xQ"}
	for _, ref := range refs {
		first := Generate(ref)
		for i := 0; i < 3; i++ {
			if got := Generate(ref); got != first {
				t.Fatalf("Generate(%q) not stable: %q then %q", ref, first, got)
			}
		}
	}
}

func TestGenerateShape(t *testing.T) {
	refs := []string{"user_2abc123XYZ", "x", "@@!!", "नमस्ते", "user-with-dashes"}
	for _, ref := range refs {
		got := Generate(ref)
		if !shape.MatchString(got) {
			t.Fatalf("Generate(%q) = %q, want shape WH-XXXX-00000000", ref, got)
		}
	}
}

func TestGeneratePrefix(t *testing.T) {
	cases := []struct {
		ref  string
		want string
	}{
		{"user_2abc", "WH-USER-"},
		{"ab@1xyz", "WH-ABX1-"},
		{"ab", "WH-ABXX-"},
		{"_-!.", "WH-XXXX-"},
	}
	for _, c := range cases {
		got := Generate(c.ref)
		if !strings.HasPrefix(got, c.want) {
			t.Fatalf("Generate(%q) = %q, want prefix %q", c.ref, got, c.want)
		}
	}
}

func TestGenerateDistinguishesRefs(t *testing.T) {
	if Generate("user_aaaa1") == Generate("user_aaaa2") {
		t.Fatalf("expected different IDs for different references")
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"WH-AB12-99999999", true},
		{"wh-ab12-99999999", true},
		{"WH-AB12", false},
		{"AB12-99999999", false},
		{"WH--99999999", false},
		{"WH-AB12-", false},
		{"", false},
		{"WH-AB12-99999999-extra", false},
	}
	for _, c := range cases {
		if got := Valid(c.in); got != c.want {
			t.Fatalf("Valid(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(" wh-ab12-00000042 "); got != "WH-AB12-00000042" {
		t.Fatalf("Normalize = %q", got)
	}
}
