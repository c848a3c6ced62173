package langdetect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector scores the language of a text. Implementations are pure and safe
// for concurrent use.
type Detector interface {
	Detect(text string) (lang string, score float64)
}

type linguaDetector struct {
	detector lingua.LanguageDetector
}

// New builds the default detector backed by lingua's statistical models.
func New() Detector {
	return &linguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

// Detect returns the ISO 639-1 code and confidence of the most likely
// language. Undetectable text yields ("und", 0).
func (d *linguaDetector) Detect(text string) (string, float64) {
	text = strings.ReplaceAll(text, "\n", " ")

	values := d.detector.ComputeLanguageConfidenceValues(text)
	if len(values) == 0 {
		return "und", 0
	}
	top := values[0]
	return strings.ToLower(top.Language().IsoCode639_1().String()), top.Value()
}
