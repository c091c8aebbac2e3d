package config

import "testing"

func TestIntEnv(t *testing.T) {
	cases := []struct {
		name string
		val  string
		want int
	}{
		{"valid", "45", 45},
		{"trailing garbage", "12abc", 30},
		{"negative", "-5", 30},
		{"zero", "0", 30},
		{"unset", "", 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_INT_ENV", tc.val)
			if got := intEnv("TEST_INT_ENV", 30); got != tc.want {
				t.Errorf("intEnv(%q) = %d, want %d", tc.val, got, tc.want)
			}
		})
	}
}

func TestDurationEnv(t *testing.T) {
	t.Setenv("TEST_DUR_ENV", "not-a-duration")
	if got := durationEnv("TEST_DUR_ENV", 0); got != 0 {
		t.Errorf("invalid duration returned %v, want fallback", got)
	}
}
