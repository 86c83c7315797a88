package commons

import "testing"

func TestMaskNationalID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1234567890", "******7890"},
		{"  1234567890  ", "******7890"},
		{"12345", "*2345"},
		{"1234", "****"},
		{"12", "**"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		if got := MaskNationalID(tc.in); got != tc.want {
			t.Errorf("MaskNationalID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMaskIdentifierKeepLast(t *testing.T) {
	if got := MaskIdentifier("secret-token", 2); got != "**********en" {
		t.Fatalf("MaskIdentifier = %q, want %q", got, "**********en")
	}
}
