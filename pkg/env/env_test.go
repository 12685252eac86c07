package env

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("VENDORHUB_ENV_TEST", "console")
	if got := Get("VENDORHUB_ENV_TEST", "json"); got != "console" {
		t.Fatalf("Get = %q, want console", got)
	}

	t.Setenv("VENDORHUB_ENV_TEST", "")
	if got := Get("VENDORHUB_ENV_TEST", "json"); got != "json" {
		t.Fatalf("empty value should fall back, got %q", got)
	}

	if got := Get("VENDORHUB_ENV_TEST_MISSING", "json"); got != "json" {
		t.Fatalf("missing value should fall back, got %q", got)
	}
}
