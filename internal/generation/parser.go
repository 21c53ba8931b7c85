package generation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/todaku-reader/todaku-api/internal/domain"
)

var (
	errInvalidJSON = errors.New("reply is not valid JSON")
	errNotObject   = errors.New("reply is not a JSON object")

	newlineRun    = regexp.MustCompile(`[\r\n]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

const snippetLength = 200

// CandidateTitle is the title exactly as the model sent it: either a plain
// string or a {jp, en} object.
type CandidateTitle struct {
	Text     string
	JP       string
	EN       string
	IsObject bool
	// Raw is the JSON text of the value.
	Raw string
}

// CandidateQuiz is a parsed quiz item plus the type text the model used.
type CandidateQuiz struct {
	domain.QuizItem
	RawType string
}

// CandidateLesson is an untrusted lesson read from a model reply. The Has*
// flags record whether the list fields were present as JSON arrays, which the
// validator needs to tell a missing list from an empty one. Invalid lists the
// paths of fields that held the wrong JSON type; Dropped describes list
// entries that were not objects.
type CandidateLesson struct {
	Title      CandidateTitle
	ContentJP  string
	ContentEN  string
	Vocabulary []domain.VocabularyItem
	Grammar    []domain.GrammarPoint
	Quizzes    []CandidateQuiz

	HasVocabulary bool
	HasGrammar    bool
	HasQuizzes    bool

	Invalid []string
	Dropped []string

	// Repaired is set when the reply only parsed after the repair pass.
	Repaired bool
}

// ParseResponse reads a model reply into a CandidateLesson. The reply is
// parsed strictly first; if that fails a single repair pass extracts the
// outermost object and collapses whitespace runs before a second parse.
// Anything still unparseable yields a *MalformedResponseError.
//
// Missing or null fields become empty strings and both snake_case and
// camelCase keys are accepted. Text fields holding any other type than a
// string are recorded in Invalid rather than coerced.
func ParseResponse(reply string) (*CandidateLesson, error) {
	raw := strings.TrimSpace(reply)
	repaired := false

	if !gjson.Valid(raw) {
		fixed, ok := repairJSON(raw)
		if !ok || !gjson.Valid(fixed) {
			return nil, &MalformedResponseError{Snippet: snippet(raw), Err: errInvalidJSON}
		}
		raw = fixed
		repaired = true
	}

	root := gjson.Parse(raw)
	if !root.IsObject() {
		return nil, &MalformedResponseError{Snippet: snippet(raw), Err: errNotObject}
	}

	p := &shapeReader{}
	c := &CandidateLesson{
		Title:     p.title(field(root, "title")),
		ContentJP: p.text(field(root, "content_jp", "contentJp", "contentJP"), "content_jp"),
		ContentEN: p.text(field(root, "content_en", "contentEn", "contentEN"), "content_en"),
		Repaired:  repaired,
	}

	if v := field(root, "vocabulary"); v.IsArray() {
		c.HasVocabulary = true
		c.Vocabulary = p.vocabulary(v)
	}
	if g := field(root, "grammar"); g.IsArray() {
		c.HasGrammar = true
		c.Grammar = p.grammar(g)
	}
	if q := field(root, "quizzes"); q.IsArray() {
		c.HasQuizzes = true
		c.Quizzes = p.quizzes(q)
	}

	c.Invalid = p.invalid
	c.Dropped = p.dropped
	return c, nil
}

// repairJSON applies the single repair pass. It reports false when the text
// does not contain an object at all.
func repairJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return "", false
	}
	s = s[start : end+1]
	s = newlineRun.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s), true
}

func snippet(s string) string {
	if len(s) <= snippetLength {
		return s
	}
	cut := snippetLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// field returns the first of keys present on obj.
func field(obj gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if r := obj.Get(k); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

// shapeReader reads string fields and collects the paths of values with the
// wrong type.
type shapeReader struct {
	invalid []string
	dropped []string
}

// text reads a string field. Missing and null values become "".
func (p *shapeReader) text(r gjson.Result, path string) string {
	switch r.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return strings.TrimSpace(r.Str)
	default:
		p.invalid = append(p.invalid, path)
		return ""
	}
}

func (p *shapeReader) title(r gjson.Result) CandidateTitle {
	switch {
	case r.Type == gjson.Null:
		return CandidateTitle{}
	case r.IsObject():
		return CandidateTitle{
			IsObject: true,
			JP:       p.text(field(r, "jp", "ja", "japanese"), "title.jp"),
			EN:       p.text(field(r, "en", "english"), "title.en"),
			Raw:      r.Raw,
		}
	case r.Type == gjson.String:
		return CandidateTitle{Text: strings.TrimSpace(r.Str), Raw: r.Raw}
	default:
		p.invalid = append(p.invalid, "title")
		return CandidateTitle{Raw: r.Raw}
	}
}

// objects calls fn with each object entry of list and its index. Other
// entries are recorded as dropped.
func (p *shapeReader) objects(list gjson.Result, noun string, fn func(i int, v gjson.Result)) {
	for i, v := range list.Array() {
		if !v.IsObject() {
			p.dropped = append(p.dropped, fmt.Sprintf("dropped %s %d: not an object", noun, i+1))
			continue
		}
		fn(i, v)
	}
}

func (p *shapeReader) vocabulary(list gjson.Result) []domain.VocabularyItem {
	items := make([]domain.VocabularyItem, 0, len(list.Array()))
	p.objects(list, "vocabulary item", func(i int, v gjson.Result) {
		at := func(name string) string { return fmt.Sprintf("vocabulary[%d].%s", i, name) }
		items = append(items, domain.VocabularyItem{
			Word:               p.text(field(v, "word"), at("word")),
			Reading:            p.text(field(v, "reading"), at("reading")),
			Meaning:            p.text(field(v, "meaning"), at("meaning")),
			Example:            p.text(field(v, "example"), at("example")),
			ExampleTranslation: p.text(field(v, "example_translation", "exampleTranslation"), at("example_translation")),
		})
	})
	return items
}

func (p *shapeReader) grammar(list gjson.Result) []domain.GrammarPoint {
	items := make([]domain.GrammarPoint, 0, len(list.Array()))
	p.objects(list, "grammar point", func(i int, v gjson.Result) {
		at := func(name string) string { return fmt.Sprintf("grammar[%d].%s", i, name) }
		items = append(items, domain.GrammarPoint{
			Pattern:            p.text(field(v, "pattern"), at("pattern")),
			Explanation:        p.text(field(v, "explanation"), at("explanation")),
			Example:            p.text(field(v, "example"), at("example")),
			ExampleTranslation: p.text(field(v, "example_translation", "exampleTranslation"), at("example_translation")),
		})
	})
	return items
}

func (p *shapeReader) quizzes(list gjson.Result) []CandidateQuiz {
	items := make([]CandidateQuiz, 0, len(list.Array()))
	p.objects(list, "quiz", func(i int, v gjson.Result) {
		at := func(name string) string { return fmt.Sprintf("quizzes[%d].%s", i, name) }
		rawType := p.text(field(v, "type"), at("type"))

		var options []string
		switch o := field(v, "options"); {
		case o.IsArray():
			for j, opt := range o.Array() {
				if opt.Type != gjson.String {
					p.invalid = append(p.invalid, fmt.Sprintf("quizzes[%d].options[%d]", i, j))
					continue
				}
				options = append(options, strings.TrimSpace(opt.Str))
			}
		case o.Type != gjson.Null:
			p.invalid = append(p.invalid, at("options"))
		}

		items = append(items, CandidateQuiz{
			QuizItem: domain.QuizItem{
				Type:          domain.ParseQuizType(rawType),
				Question:      p.text(field(v, "question"), at("question")),
				Options:       options,
				CorrectAnswer: answerIndex(field(v, "correct_answer", "correctAnswer")),
				Explanation:   p.text(field(v, "explanation"), at("explanation")),
				RelatedItem:   p.text(field(v, "related_item", "relatedItem"), at("related_item")),
			},
			RawType: rawType,
		})
	})
	return items
}

// answerIndex reads the correct answer index. Values that are missing or not
// integers yield -1 so the quiz fails the answer bound.
func answerIndex(r gjson.Result) int {
	switch r.Type {
	case gjson.Number:
		if r.Num != float64(int64(r.Num)) {
			return -1
		}
		return int(r.Int())
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(r.Str))
		if err != nil {
			return -1
		}
		return n
	default:
		return -1
	}
}
