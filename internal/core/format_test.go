package core

import "testing"

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{-5, "0 B"},
		{0, "0 B"},
		{60, "60 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1572864, "1.5 MiB"},
		{1 << 30, "1.0 GiB"},
	}
	for _, tc := range cases {
		if got := FormatBytes(tc.n); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

// Larger byte counts never format to a smaller-looking unit tier.
func TestFormatBytesMonotonicTiers(t *testing.T) {
	tier := func(s string) int {
		units := []string{" B", " KiB", " MiB", " GiB", " TiB"}
		for i, u := range units {
			if len(s) >= len(u) && s[len(s)-len(u):] == u {
				return i
			}
		}
		t.Fatalf("unknown unit in %q", s)
		return -1
	}

	prev := -1
	for _, n := range []int64{1, 512, 1 << 10, 1 << 15, 1 << 20, 1 << 25, 1 << 30, 1 << 40} {
		cur := tier(FormatBytes(n))
		if cur < prev {
			t.Errorf("tier regressed at %d bytes: %q", n, FormatBytes(n))
		}
		prev = cur
	}
}
