package wavcue

import "testing"

func TestNullTermStr(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("abc\x00\x00"), "abc"},
		{[]byte("abc"), "abc"},
		{[]byte("\x00abc"), ""},
		{nil, ""},
	}

	for _, tc := range tests {
		if got := nullTermStr(tc.in); got != tc.want {
			t.Errorf("nullTermStr(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
