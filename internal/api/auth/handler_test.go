package auth

import "testing"

func TestIsPasswordStrong(t *testing.T) {
	cases := map[string]bool{
		"abc12345":  true,
		"short1":    false,
		"onlyletts": false,
		"12345678":  false,
		"G00dPassw": true,
		"":          false,
	}
	for pw, expected := range cases {
		if got := isPasswordStrong(pw); got != expected {
			t.Fatalf("isPasswordStrong(%q) = %v, want %v", pw, got, expected)
		}
	}
}

func TestIsEmailValid(t *testing.T) {
	cases := map[string]bool{
		"jane@example.com":      true,
		"jane.doe+x@sub.co.uk":  true,
		"not-an-email":          false,
		"@missing-local.com":    false,
		"trailing@dot.":         false,
		"spaces in@example.com": false,
	}
	for email, expected := range cases {
		if got := isEmailValid(email); got != expected {
			t.Fatalf("isEmailValid(%q) = %v, want %v", email, got, expected)
		}
	}
}

func TestGenerateTokenIsUniqueAndHex(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok := generateToken()
		if len(tok) != 32 {
			t.Fatalf("generateToken length = %d, want 32", len(tok))
		}
		if seen[tok] {
			t.Fatalf("generateToken produced duplicate: %s", tok)
		}
		seen[tok] = true
	}
}
