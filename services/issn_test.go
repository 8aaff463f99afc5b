package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeISSN(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"hyphenated", "1234-5678", "12345678"},
		{"plain", "12345678", "12345678"},
		{"lowercase check digit", "2049-363x", "2049363X"},
		{"uppercase check digit", "2049-363X", "2049363X"},
		{"whitespace and label", " ISSN: 0028-0836 ", "00280836"},
		{"empty", "", ""},
		{"only junk", "---", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeISSN(tc.in))
		})
	}
}

func TestNormalizeISSNIdempotent(t *testing.T) {
	inputs := []string{"1234-5678", "2049-363x", "", "garbage 12x", "0028 0836"}
	for _, in := range inputs {
		once := NormalizeISSN(in)
		assert.Equal(t, once, NormalizeISSN(once), "input %q", in)
	}
}

func TestNormalizeCandidates(t *testing.T) {
	got := normalizeCandidates([]string{"1476-4687", "0028-0836", "14764687", "", "  "})
	assert.Equal(t, []string{"14764687", "00280836"}, got)
}

func TestNormalizeCandidatesEmpty(t *testing.T) {
	assert.Empty(t, normalizeCandidates(nil))
	assert.Empty(t, normalizeCandidates([]string{"", "-"}))
}
