package generation

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/todaku-reader/todaku-api/internal/domain"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var promptTemplates = template.Must(template.New("prompts").
	Option("missingkey=error").
	ParseFS(promptFS, "prompts/*.tmpl"))

// Comprehension quiz range requested from the model.
const (
	comprehensionMin = 3
	comprehensionMax = 4
)

var lengthHints = map[domain.Length]string{
	domain.LengthShort:  "about 200-300 Japanese characters",
	domain.LengthMedium: "about 400-600 Japanese characters",
	domain.LengthLong:   "about 800-1000 Japanese characters",
}

type promptData struct {
	WaniKaniLevel    int
	GenkiChapter     int
	TadokuLevel      string
	Topic            string
	Length           domain.Length
	LengthHint       string
	ComprehensionMin int
	ComprehensionMax int
}

// BuildPrompt renders the system and user instructions for a profile. It is a
// pure function: identical profiles always produce byte-identical prompts, so
// retries differ only by the model's own sampling.
func BuildPrompt(profile domain.DifficultyProfile) (Prompt, error) {
	profile = profile.WithDefaults()
	hint, ok := lengthHints[profile.Length]
	if !ok {
		return Prompt{}, fmt.Errorf("%w: unknown length %q", domain.ErrInvalidProfile, profile.Length)
	}

	data := promptData{
		WaniKaniLevel:    profile.WaniKaniLevel,
		GenkiChapter:     profile.GenkiChapter,
		TadokuLevel:      profile.TadokuLevel.String(),
		Topic:            profile.Topic,
		Length:           profile.Length,
		LengthHint:       hint,
		ComprehensionMin: comprehensionMin,
		ComprehensionMax: comprehensionMax,
	}

	system, err := render("system.tmpl", data)
	if err != nil {
		return Prompt{}, err
	}
	user, err := render("user.tmpl", data)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{System: system, User: user}, nil
}

func render(name string, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render prompt template %s: %w", name, err)
	}
	return buf.String(), nil
}
