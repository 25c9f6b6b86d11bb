package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Heirloom Tomatoes":       "heirloom-tomatoes",
		"Sweet Corn (Organic)":    "sweet-corn-organic",
		"  Baby   Spinach  ":      "baby-spinach",
		"100% Fresh!":             "100-fresh",
		"Crème Fraîche & Butter!": "creme-fraiche-and-butter",
	}

	for in, want := range cases {
		assert.Equal(t, want, GenerateSlug(in), "input %q", in)
	}
}

func TestHashAndComparePassword(t *testing.T) {
	hash := HashPassword("hunter2hunter2")
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, PasswordCompare(hash, []byte("hunter2hunter2")))
	assert.False(t, PasswordCompare(hash, []byte("wrong-password")))
}
