package transform

import (
	"regexp"
	"unicode/utf8"

	"github.com/forPelevin/gomoji"
)

// MinTextLength is the strict lower bound a cleaned text must exceed to
// survive projection.
const MinTextLength = 20

var (
	urlPattern   = regexp.MustCompile(`https?://\S+`)
	degenPattern = regexp.MustCompile(`(?i)(\d*\s*\$\s*degen\s*\d*)`)
)

// TransformText strips http(s) URL tokens from text.
func TransformText(text string) string {
	return urlPattern.ReplaceAllString(text, "")
}

// RemoveEmojis strips emoji code points from text.
func RemoveEmojis(text string) string {
	return gomoji.RemoveEmojis(text)
}

// RemoveDegen strips "$degen" promo tokens with optional adjacent digits and
// spaces, case-insensitive.
func RemoveDegen(text string) string {
	return degenPattern.ReplaceAllString(text, "")
}

// CleanString applies the three cleaning steps in their fixed order: URLs
// first, then emojis, then degen tokens.
func CleanString(text string) string {
	return RemoveDegen(RemoveEmojis(TransformText(text)))
}

// FilterText reports whether a cleaned text is long enough to keep.
func FilterText(text string) bool {
	return utf8.RuneCountInString(text) > MinTextLength
}
