package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shantanugsharp/chatbot-be/internal/adapters/sqlite"
	"github.com/shantanugsharp/chatbot-be/internal/app"
	"github.com/shantanugsharp/chatbot-be/internal/config"
	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

const catalogJSON = `{"tracks":[
	{"trackCode":"T1","name":"Sunset Drive","displayTags":"upbeat","hasVocals":"true","isExplicit":"no"},
	{"trackCode":"T2","name":"Quiet Piano","displayTags":"calm","hasVocals":"false","isExplicit":"yes"},
	{"trackCode":"T3","name":"Night Club","displayTags":"dance","hasVocals":"true","isExplicit":"no"}
]}`

type stubProvider struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (s *stubProvider) Complete(_ context.Context, req domain.CompletionRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, req.Prompt)
	return s.reply, s.err
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

// run executes the command tree in an isolated working directory.
func run(t *testing.T, provider *stubProvider, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(config.ConfigPathEnvVar, "")

	factory := func(ctx context.Context, cfg *config.Config) (*app.App, error) {
		return app.NewWithProvider(ctx, cfg, provider), nil
	}
	cmd := NewRootCommand(factory)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestChat_REPL(t *testing.T) {
	catalog := writeFile(t, "tracks.json", catalogJSON)
	provider := &stubProvider{reply: "Try Sunset Drive"}

	out, err := run(t, provider, "\nstats\nneed upbeat music\nreset\nquit\nignored\n", "--catalog", catalog, "chat")
	require.NoError(t, err)

	assert.Contains(t, out, "is ready!")
	assert.Contains(t, out, "Please describe what kind of music you need!")
	assert.Contains(t, out, "Stats: 3 tracks loaded | 2 with vocals | 1 explicit")
	assert.Contains(t, out, "Try Sunset Drive")
	assert.Contains(t, out, freshStart)
	assert.Contains(t, out, goodbye)
	assert.Equal(t, 1, provider.calls())
}

func TestChat_ExitWords(t *testing.T) {
	for _, word := range []string{"quit", "EXIT", "bye", "q"} {
		t.Run(word, func(t *testing.T) {
			catalog := writeFile(t, "tracks.json", catalogJSON)
			provider := &stubProvider{reply: "ok"}

			out, err := run(t, provider, word+"\nhello\n", "--catalog", catalog, "chat")
			require.NoError(t, err)
			assert.Contains(t, out, goodbye)
			assert.Zero(t, provider.calls())
		})
	}
}

func TestChat_EOFEndsSession(t *testing.T) {
	catalog := writeFile(t, "tracks.json", catalogJSON)
	out, err := run(t, &stubProvider{reply: "ok"}, "hello", "--catalog", catalog, "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, goodbye)
}

func TestChat_FactoryError(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd := NewRootCommand(func(context.Context, *config.Config) (*app.App, error) {
		return nil, config.ErrMissingAPIKey
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"chat"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestAsk(t *testing.T) {
	catalog := writeFile(t, "tracks.json", catalogJSON)

	t.Run("success", func(t *testing.T) {
		provider := &stubProvider{reply: "Here you go"}
		out, err := run(t, provider, "", "--catalog", catalog, "ask", "need", "upbeat", "music")
		require.NoError(t, err)
		assert.Equal(t, "Here you go\n", out)
		require.Equal(t, 1, provider.calls())
		assert.Contains(t, provider.prompts[0], "USER REQUEST: need upbeat music")
	})

	t.Run("provider failure", func(t *testing.T) {
		out, err := run(t, &stubProvider{err: errors.New("down")}, "", "--catalog", catalog, "ask", "hello")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrProviderFailure)
		assert.Contains(t, out, domain.FallbackReply)
	})

	t.Run("blank", func(t *testing.T) {
		_, err := run(t, &stubProvider{reply: "ok"}, "", "--catalog", catalog, "ask", "  ")
		require.Error(t, err)
	})
}

func TestStats(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		out, err := run(t, &stubProvider{}, "", "--catalog", writeFile(t, "tracks.json", catalogJSON), "stats")
		require.NoError(t, err)
		assert.Equal(t, "Stats: 3 tracks loaded | 2 with vocals | 1 explicit\n", out)
	})

	t.Run("empty", func(t *testing.T) {
		out, err := run(t, &stubProvider{}, "", "--catalog", writeFile(t, "tracks.json", `{"tracks":[]}`), "stats")
		require.NoError(t, err)
		assert.Equal(t, "No tracks loaded\n", out)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, &stubProvider{}, "", "--catalog", filepath.Join(t.TempDir(), "absent.json"), "stats")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrLoadFailure)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantErr    bool
		wantOutput []string
	}{
		{
			name:       "object container",
			content:    catalogJSON,
			wantOutput: []string{`Layout: object["tracks"]`, "Tracks: 3"},
		},
		{
			name:       "bare array",
			content:    `[{"id":"1","title":"One"}]`,
			wantOutput: []string{"Layout: array", "Tracks: 1"},
		},
		{
			name:    "no tracks",
			content: `{"foo":"bar"}`,
			wantErr: true,
		},
		{
			name:    "malformed",
			content: `{"tracks": [`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "catalog.json", tc.content)
			out, err := run(t, &stubProvider{}, "", "validate", path)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrLoadFailure)
				return
			}
			require.NoError(t, err)
			for _, want := range tc.wantOutput {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestImportThenUseSQLiteCatalog(t *testing.T) {
	jsonPath := writeFile(t, "tracks.json", catalogJSON)
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	out, err := run(t, &stubProvider{}, "", "import", jsonPath, dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 tracks")

	db, err := sqlite.NewAdapter(dbPath)
	require.NoError(t, err)
	rows, err := db.LoadTable(context.Background(), "tracks")
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.Len(t, rows, 3)

	out, err = run(t, &stubProvider{}, "", "--catalog", dbPath, "stats")
	require.NoError(t, err)
	assert.Equal(t, "Stats: 3 tracks loaded | 2 with vocals | 1 explicit\n", out)
}

func TestImport_InvalidTable(t *testing.T) {
	jsonPath := writeFile(t, "tracks.json", catalogJSON)
	_, err := run(t, &stubProvider{}, "", "import", "--table", "bad name", jsonPath, filepath.Join(t.TempDir(), "c.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, sqlite.ErrInvalidTable)
}

func TestApplyCatalogFlag(t *testing.T) {
	var c config.CatalogConfig
	applyCatalogFlag(&c, "data/catalog.SQLite")
	assert.Equal(t, "sqlite", c.Source)
	applyCatalogFlag(&c, "tracks.json")
	assert.Equal(t, "json", c.Source)
	assert.Equal(t, "tracks.json", c.Path)
}
