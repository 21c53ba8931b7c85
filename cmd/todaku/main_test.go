package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todaku-reader/todaku-api/internal/platform/logger"
	"github.com/todaku-reader/todaku-api/internal/platform/openai"
	"github.com/todaku-reader/todaku-api/internal/platform/sqlstore"
)

func init() {
	color.NoColor = true
}

// fakeOpenAI serves chat completions whose content is the fixture lesson.
func fakeOpenAI(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()

	fixture, err := os.ReadFile(filepath.Join("..", "..", "internal", "generation", "testdata", "lesson_valid.json"))
	require.NoError(t, err)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.Choice{{
				Message:      openai.Message{Role: openai.RoleAssistant, Content: string(fixture)},
				FinishReason: "stop",
			}},
		})
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func setTestEnv(t *testing.T, baseURL, dbPath string) {
	t.Helper()
	t.Setenv("TODAKU_LLM_PROVIDER", "openai")
	t.Setenv("TODAKU_LLM_OPENAI_API_KEY", "sk-test-0000000000000000")
	t.Setenv("TODAKU_LLM_BASE_URL", baseURL)
	t.Setenv("TODAKU_GENERATION_RETRY_DELAY", "0s")
	t.Setenv("TODAKU_ANALYSIS_FILL_READINGS", "false")
	t.Setenv("TODAKU_DATABASE_DRIVER", "sqlite")
	t.Setenv("TODAKU_DATABASE_URL", dbPath)
	t.Setenv("TODAKU_SERVER_LOG_LEVEL", "error")
}

func TestGenerateCommandPrintsLesson(t *testing.T) {
	server, calls := fakeOpenAI(t)
	setTestEnv(t, server.URL, filepath.Join(t.TempDir(), "todaku.db"))

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"generate", "--topic", "train station", "--wanikani", "5", "--genki", "3", "--length", "short"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))

	var lesson map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &lesson))
	assert.NotEmpty(t, lesson["title"])
	assert.NotEmpty(t, lesson["content_jp"])
	assert.NotContains(t, lesson, "id", "unsaved lessons have no id")
	assert.Contains(t, stderr.String(), "attempt 1/3 started")
	assert.Contains(t, stderr.String(), "lesson ready after 1 attempt(s)")
}

func TestGenerateCommandSavesLesson(t *testing.T) {
	server, _ := fakeOpenAI(t)
	dbPath := filepath.Join(t.TempDir(), "todaku.db")
	setTestEnv(t, server.URL, dbPath)
	userID := uuid.New()

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"generate", "--topic", "train station", "--format", "yaml",
		"--save", "--user", userID.String(),
	})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, stdout.String(), "user_id: "+userID.String())
	assert.Contains(t, stderr.String(), "saved lesson")

	log, _ := logger.NewBufferLogger()
	db, err := openDatabase(context.Background(), loadTestDatabaseConfig(t), log)
	require.NoError(t, err)
	defer db.Close()

	lessons, err := sqlstore.NewLessonStore(db.db, db.dialect, log).ListByUser(context.Background(), userID, 10)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "train station", lessons[0].Profile.Topic)
}

func TestGenerateCommandRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing topic", args: []string{"generate"}},
		{name: "bad format", args: []string{"generate", "--topic", "x", "--format", "xml"}},
		{name: "save without user", args: []string{"generate", "--topic", "x", "--save"}},
		{name: "bad length", args: []string{"generate", "--topic", "x", "--length", "epic"}},
		{name: "negative genki", args: []string{"generate", "--topic", "x", "--genki", "-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCommand()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			assert.Error(t, cmd.ExecuteContext(context.Background()))
		})
	}
}

func TestMigrateCommands(t *testing.T) {
	server, _ := fakeOpenAI(t)
	setTestEnv(t, server.URL, filepath.Join(t.TempDir(), "todaku.db"))

	run := func(args ...string) string {
		var out bytes.Buffer
		cmd := newRootCommand()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		require.NoError(t, cmd.ExecuteContext(context.Background()))
		return out.String()
	}

	assert.Contains(t, run("migrate", "status"), "pending")
	assert.Contains(t, run("migrate", "up"), "applied 2 migration(s)")
	status := run("migrate", "status")
	assert.Contains(t, status, "applied")
	assert.NotContains(t, status, "pending")
	assert.Contains(t, run("migrate", "down"), "rolled back one migration")
	assert.Contains(t, run("migrate", "status"), "pending")
}

func TestServeRequiresJWTSecret(t *testing.T) {
	server, _ := fakeOpenAI(t)
	setTestEnv(t, server.URL, filepath.Join(t.TempDir(), "todaku.db"))
	t.Setenv("TODAKU_AUTH_JWT_SECRET", "")

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve"})
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}
