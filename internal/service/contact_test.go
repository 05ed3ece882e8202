package service

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"national US format", "(403) 555-0101", "+14035550101"},
		{"international format", "+1 403-555-0101", "+14035550101"},
		{"already e164", "+14035550101", "+14035550101"},
		{"foreign number with prefix", "+44 20 7946 0958", "+442079460958"},
		{"too short keeps raw", "555-01", "555-01"},
		{"non-numeric keeps raw", "call us!", "call us!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizePhone(tc.in); got != tc.want {
				t.Fatalf("normalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeWebsite(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain url untouched", "https://store.example/shop", "https://store.example/shop"},
		{"host lowercased", "https://Store.Example/shop", "https://store.example/shop"},
		{"port preserved", "https://store.example:8443/shop", "https://store.example:8443/shop"},
		{"utm params stripped", "https://store.example/?utm_source=maps&utm_medium=listing", "https://store.example/"},
		{"non-tracking params kept", "https://store.example/?utm_source=maps&lang=en", "https://store.example/?lang=en"},
		{"unicode host punycoded", "https://bücher.example/", "https://xn--bcher-kva.example/"},
		{"schemeless keeps raw", "store.example/shop", "store.example/shop"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeWebsite(tc.in); got != tc.want {
				t.Fatalf("normalizeWebsite(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
