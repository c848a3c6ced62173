package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformTextStripsURLs(t *testing.T) {
	cases := map[string]string{
		"check this out https://example.com/post now": "check this out  now",
		"http://a.b/c":                       "",
		"no links here":                      "no links here",
		"two https://a.com and http://b.com": "two  and ",
	}
	for input, want := range cases {
		assert.Equal(t, want, TransformText(input))
	}
}

func TestRemoveEmojis(t *testing.T) {
	cleaned := RemoveEmojis("gm 🌞 everyone 🎉")
	assert.NotContains(t, cleaned, "🌞")
	assert.NotContains(t, cleaned, "🎉")
	assert.Contains(t, cleaned, "gm")
	assert.Contains(t, cleaned, "everyone")
}

func TestRemoveDegen(t *testing.T) {
	cases := []string{
		"tipping you 100 $degen",
		"tipping you $DEGEN",
		"tipping you $ degen 50",
		"tipping you 25 $  degen",
	}
	for _, input := range cases {
		cleaned := RemoveDegen(input)
		assert.NotContains(t, strings.ToLower(cleaned), "$degen", input)
		assert.NotContains(t, strings.ToLower(cleaned), "degen", input)
		assert.Contains(t, cleaned, "tipping you", input)
	}
}

func TestCleanStringAppliesAllSteps(t *testing.T) {
	input := "great cast 🎉 https://frame.example/x 500 $degen rewarded"
	cleaned := CleanString(input)

	assert.NotContains(t, cleaned, "http")
	assert.NotContains(t, cleaned, "🎉")
	assert.NotContains(t, strings.ToLower(cleaned), "degen")
	assert.Contains(t, cleaned, "great cast")
	assert.Contains(t, cleaned, "rewarded")
}

func TestFilterTextBoundary(t *testing.T) {
	assert.False(t, FilterText(""))
	assert.False(t, FilterText(strings.Repeat("a", 20)))
	assert.True(t, FilterText(strings.Repeat("a", 21)))

	// length counts runes, not bytes
	assert.False(t, FilterText(strings.Repeat("ü", 20)))
	assert.True(t, FilterText(strings.Repeat("ü", 21)))
}
