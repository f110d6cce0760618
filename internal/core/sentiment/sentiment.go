// Package sentiment assigns a coarse emotional valence to free text. It is a
// small lexicon scorer: deterministic, dependency free and used only to label
// anonymous posts for display.
package sentiment

import (
	"math"
	"strings"
	"unicode"
)

const (
	LabelHopeful  = "Hopeful"
	LabelAnxious  = "Anxious"
	LabelStressed = "Stressed"

	// normalization constant for s/sqrt(s^2+alpha)
	alpha = 15.0

	negationWindow   = 3
	intensifierBoost = 1.5
)

var lexicon = map[string]float64{
	"good": 1.5, "great": 2.5, "happy": 2.5, "glad": 2, "calm": 1.5, "better": 1.5,
	"hope": 2, "hopeful": 2.5, "grateful": 2.5, "thankful": 2.5, "love": 3,
	"proud": 2, "excited": 2, "relieved": 2, "peaceful": 2, "okay": 0.5, "ok": 0.5,
	"fine": 0.5, "support": 1.5, "supported": 2, "kind": 1.5, "progress": 1.5,
	"rested": 1.5, "joy": 3, "win": 1.5, "improving": 1.5, "confident": 2,
	"bad": -1.5, "sad": -2, "tired": -1.5, "exhausted": -2.5, "angry": -2.5,
	"anxious": -2, "anxiety": -2, "worried": -2, "worry": -1.5, "nervous": -1.5,
	"stressed": -2.5, "stress": -2, "overwhelmed": -3, "burnout": -3, "burned": -2,
	"hate": -3, "awful": -3, "terrible": -3, "hard": -1, "lonely": -2.5,
	"alone": -1.5, "hopeless": -3.5, "depressed": -3, "cry": -2, "crying": -2,
	"panic": -3, "scared": -2, "afraid": -2, "unfair": -2, "frustrated": -2.5,
	"annoyed": -1.5, "hurt": -2, "pain": -2, "sick": -1.5, "fail": -2, "failed": -2,
	"deadline": -1, "pressure": -1.5, "toxic": -3, "ignored": -2, "worthless": -3.5,
}

var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "cannot": {}, "cant": {}, "dont": {},
	"doesnt": {}, "didnt": {}, "isnt": {}, "wasnt": {}, "arent": {}, "wont": {},
	"nothing": {}, "hardly": {},
}

var intensifiers = map[string]struct{}{
	"very": {}, "really": {}, "so": {}, "extremely": {}, "too": {}, "totally": {},
	"incredibly": {}, "super": {},
}

// Scorer satisfies ports.ContentScorer.
type Scorer struct{}

func (Scorer) Score(text string) float64 { return Score(text) }

// Score returns the valence of text in [-1, 1]. Equal input always yields an
// equal score.
func Score(text string) float64 {
	tokens := tokenize(text)
	var sum float64
	negateFor := 0
	boost := 1.0
	for _, tok := range tokens {
		if _, ok := negations[tok]; ok {
			negateFor = negationWindow
			continue
		}
		if _, ok := intensifiers[tok]; ok {
			boost = intensifierBoost
			continue
		}
		w, ok := lexicon[tok]
		if ok {
			w *= boost
			if negateFor > 0 {
				w = -w * 0.75
				negateFor = 0
			}
			sum += w
			boost = 1.0
			continue
		}
		if negateFor > 0 {
			negateFor--
		}
		boost = 1.0
	}
	if sum == 0 {
		return 0
	}
	score := sum / math.Sqrt(sum*sum+alpha)
	return math.Max(-1, math.Min(1, score))
}

// Label buckets a score for display.
func Label(score float64) string {
	switch {
	case score >= 0:
		return LabelHopeful
	case score >= -0.5:
		return LabelAnxious
	default:
		return LabelStressed
	}
}

func tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '\'' || r == '’':
			// "don't" -> "dont"
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}
