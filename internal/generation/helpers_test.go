package generation

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/sjson"
	"github.com/todaku-reader/todaku-api/internal/domain"
)

// validReply returns the well-formed lesson fixture.
func validReply(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/lesson_valid.json")
	require.NoError(t, err)
	return string(data)
}

// mutateReply applies sjson edits to the fixture. A nil value deletes the path.
func mutateReply(t *testing.T, reply string, edits map[string]any) string {
	t.Helper()
	var err error
	for path, value := range edits {
		if value == nil {
			reply, err = sjson.Delete(reply, path)
		} else {
			reply, err = sjson.Set(reply, path, value)
		}
		require.NoError(t, err, "edit %s", path)
	}
	return reply
}

func scenarioProfile() domain.DifficultyProfile {
	return domain.DifficultyProfile{
		WaniKaniLevel: 5,
		GenkiChapter:  1,
		TadokuLevel:   domain.TadokuLevelFromInt(0),
		Topic:         "daily life",
		Length:        domain.LengthShort,
	}
}

type scriptedResult struct {
	reply string
	err   error
}

// scriptedGenerator replays results in order and records each prompt.
type scriptedGenerator struct {
	mu      sync.Mutex
	script  []scriptedResult
	prompts []Prompt
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	idx := len(g.prompts) - 1
	if idx >= len(g.script) {
		idx = len(g.script) - 1
	}
	r := g.script[idx]
	return r.reply, r.err
}

func (g *scriptedGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

func noDelayPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, Backoff: FixedBackoff(0)}
}
