package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/castflow/internal/models"
)

// Label ids emitted for every item; the configured taxonomy maps them to
// output columns.
const (
	LabelPositive = "sentiment_positive"
	LabelNeutral  = "sentiment_neutral"
	LabelNegative = "sentiment_negative"
	LabelCompound = "sentiment_compound"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

var (
	mdLinkPattern  = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

func removeLinks(input string) string {
	input = mdLinkPattern.ReplaceAllString(input, "$1")
	return bareURLPattern.ReplaceAllString(input, "")
}

// plainText renders markdown to text so that formatting syntax does not leak
// into the scores; some clients post casts with markdown in them.
func plainText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	flattened := strings.Join(strings.Fields(string(output)), " ")
	return removeLinks(flattened)
}

// ScoreText runs VADER over one text and returns the taxonomy scores plus
// the single dominant label.
func ScoreText(text string) (map[string]float64, []string) {
	scores := analyzer.PolarityScores(plainText(text))

	labelScores := map[string]float64{
		LabelPositive: scores.Positive,
		LabelNeutral:  scores.Neutral,
		LabelNegative: scores.Negative,
		LabelCompound: scores.Compound,
	}

	label := LabelNeutral
	if scores.Compound >= 0.20 {
		label = LabelPositive
	} else if scores.Compound <= -0.20 {
		label = LabelNegative
	}

	return labelScores, []string{label}
}

// LabelItems scores every item's full text.
func LabelItems(items []models.Item) []models.ItemLabels {
	batch := make([]models.ItemLabels, 0, len(items))
	for _, item := range items {
		scores, aiLabels := ScoreText(item.Text.Full)
		batch = append(batch, models.ItemLabels{
			ItemID:   item.ItemID,
			Scores:   scores,
			AILabels: aiLabels,
		})
	}
	return batch
}
