package kagome

import (
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/todaku-reader/todaku-api/internal/generation"
)

// featureReading is the index of the katakana reading in IPA token features.
const featureReading = 7

// Annotator looks up readings with a shared kagome tokenizer.
type Annotator struct {
	t *tokenizer.Tokenizer
}

var _ generation.ReadingAnnotator = (*Annotator)(nil)

// NewAnnotator loads the IPA dictionary and builds a tokenizer.
func NewAnnotator() (*Annotator, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Annotator{t: t}, nil
}

// Reading returns the hiragana reading of word, or "" when any part of the
// word is unknown to the dictionary.
func (a *Annotator) Reading(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}

	var reading strings.Builder
	for _, token := range a.t.Tokenize(word) {
		if strings.TrimSpace(token.Surface) == "" {
			continue
		}
		if token.Class == tokenizer.DUMMY {
			return ""
		}

		features := token.Features()
		switch {
		case len(features) > featureReading && features[featureReading] != "*":
			reading.WriteString(features[featureReading])
		case isKana(token.Surface):
			reading.WriteString(token.Surface)
		default:
			return ""
		}
	}

	return ToHiragana(reading.String())
}

// ToHiragana maps katakana to hiragana, leaving other runes untouched.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ァ' && r <= 'ヶ' {
			return r - 0x60
		}
		return r
	}, s)
}

func isKana(s string) bool {
	for _, r := range s {
		if !unicode.In(r, unicode.Hiragana, unicode.Katakana) && r != 'ー' {
			return false
		}
	}
	return s != ""
}
