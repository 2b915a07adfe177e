package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("GAME_TEST_STR", "value")
	if got := GetEnv("GAME_TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetEnv = %q, want %q", got, "value")
	}
	if got := GetEnv("GAME_TEST_STR_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want %q", got, "fallback")
	}
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv("GAME_TEST_INT", "42")
	t.Setenv("GAME_TEST_BAD", "not-a-number")

	if got := GetEnvInt64("GAME_TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvInt64 = %d, want 42", got)
	}
	if got := GetEnvInt64("GAME_TEST_INT_UNSET", 7); got != 7 {
		t.Errorf("GetEnvInt64 = %d, want fallback 7", got)
	}
	if got := GetEnvInt64("GAME_TEST_BAD", 7); got != 7 {
		t.Errorf("GetEnvInt64 = %d, want fallback 7 for a malformed value", got)
	}
}
