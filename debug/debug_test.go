package debug

import "testing"

func TestBoolEnv(t *testing.T) {
	for _, tc := range []struct {
		val  string
		want bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"false", false},
		{"nope", false},
	} {
		t.Setenv("IONDSL_TEST_BOOL_ENV", tc.val)
		if got := boolEnv("IONDSL_TEST_BOOL_ENV"); got != tc.want {
			t.Errorf("boolEnv(%q) = %v, want %v", tc.val, got, tc.want)
		}
	}
}
