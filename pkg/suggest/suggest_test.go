package suggest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/jsonimg/pkg/fileutil"
	"github.com/lucas-albers-lz4/jsonimg/pkg/testutil"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

// scripted returns its errors in order, then succeeds with fields.
type scripted struct {
	errs   []error
	fields []string
	calls  int
}

func (s *scripted) Suggest(context.Context, []string) ([]string, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return nil, s.errs[s.calls-1]
	}
	return s.fields, nil
}

func TestGeminiSuggest(t *testing.T) {
	gen := &fakeGenerator{reply: `{"imageFields":["photo","bogus","photo"]}`}
	g := NewGeminiWithGenerator(gen, "test-model")

	got, err := g.Suggest(context.Background(), []string{"title", "photo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"photo"}, got)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], `["photo","title"]`)
	assert.Equal(t, "Gemini:test-model", g.Name())
}

func TestGeminiSuggestNoKeysSkipsModel(t *testing.T) {
	gen := &fakeGenerator{}
	got, err := NewGeminiWithGenerator(gen, "m").Suggest(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, gen.prompts)
}

func TestGeminiSuggestErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewGeminiWithGenerator(&fakeGenerator{err: boom}, "m").Suggest(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, boom)

	_, err = NewGeminiWithGenerator(&fakeGenerator{reply: "not json"}, "m").Suggest(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr error
	}{
		{name: "wrapped", raw: `{"imageFields":["a","b"]}`, want: []string{"a", "b"}},
		{name: "wrapped empty", raw: `{"imageFields":[]}`, want: []string{}},
		{name: "wrapped missing field", raw: `{"other":1}`, want: []string{}},
		{name: "bare array", raw: ` ["a"] `, want: []string{"a"}},
		{name: "fenced", raw: "```json\n[\"a\"]\n```", want: []string{"a"}},
		{name: "empty", raw: "  ", wantErr: ErrEmptyResponse},
		{name: "garbage", raw: "sure, here you go", wantErr: ErrInvalidResponse},
		{name: "wrong element type", raw: `[1,2]`, wantErr: ErrInvalidResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFields(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsQuotaError(t *testing.T) {
	assert.True(t, IsQuotaError(errors.New("Error 429: Too Many Requests")))
	assert.True(t, IsQuotaError(errors.New("You exceeded your current Quota")))
	assert.True(t, IsQuotaError(errors.New("resource exhausted: limit EXCEEDED")))
	assert.False(t, IsQuotaError(errors.New("permission denied")))
	assert.False(t, IsQuotaError(nil))
}

func TestRetryDelay(t *testing.T) {
	d, ok := RetryDelay(errors.New(`429 details: [{"@type":"RetryInfo","retryDelay":"17s"}]`))
	require.True(t, ok)
	assert.Equal(t, 17*time.Second, d)

	d, ok = RetryDelay(errors.New(`retryDelay: 4s`))
	require.True(t, ok)
	assert.Equal(t, 4*time.Second, d)

	_, ok = RetryDelay(errors.New("429"))
	assert.False(t, ok)
	_, ok = RetryDelay(nil)
	assert.False(t, ok)
}

func TestResilient(t *testing.T) {
	quotaWithDelay := errors.New(`Error 429, quota exceeded, details: {"retryDelay":"5s"}`)
	quota := errors.New("Error 429 Too Many Requests")
	other := errors.New("internal error")

	tests := []struct {
		name       string
		errs       []error
		wantFields []string
		wantCalls  int
		wantSleeps []time.Duration
	}{
		{name: "success", wantFields: []string{"img"}, wantCalls: 1},
		{name: "quota then success", errs: []error{quotaWithDelay}, wantFields: []string{"img"}, wantCalls: 2, wantSleeps: []time.Duration{5 * time.Second}},
		{name: "quota twice degrades", errs: []error{quota, quota}, wantFields: []string{}, wantCalls: 2, wantSleeps: []time.Duration{30 * time.Second}},
		{name: "other error degrades", errs: []error{other}, wantFields: []string{}, wantCalls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer testutil.UseTestLogger(t)()

			next := &scripted{errs: tt.errs, fields: []string{"img"}}
			var sleeps []time.Duration
			r := NewResilient(next)
			r.Sleep = func(_ context.Context, d time.Duration) error {
				sleeps = append(sleeps, d)
				return nil
			}

			got, err := r.Suggest(context.Background(), []string{"img"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantFields, got)
			assert.Equal(t, tt.wantCalls, next.calls)
			assert.Equal(t, tt.wantSleeps, sleeps)
		})
	}
}

func TestResilientHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	next := &scripted{errs: []error{errors.New("429")}}
	r := NewResilient(next)
	r.DefaultDelay = time.Hour

	go cancel()
	_, err := r.Suggest(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCached(t *testing.T) {
	next := &scripted{fields: []string{"img"}}
	c, err := NewCached(next, 2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := c.Suggest(context.Background(), []string{"img", "title"})
		require.NoError(t, err)
		assert.Equal(t, []string{"img"}, got)
	}
	_, err = c.Suggest(context.Background(), []string{"title", "img"})
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, c.Len())

	_, err = c.Suggest(context.Background(), []string{"other"})
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedSkipsFailures(t *testing.T) {
	next := &scripted{errs: []error{errors.New("boom")}, fields: []string{"a"}}
	c, err := NewCached(next, 4)
	require.NoError(t, err)

	_, err = c.Suggest(context.Background(), []string{"a"})
	require.Error(t, err)
	got, err := c.Suggest(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, 2, next.calls)

	_, err = NewCached(next, 0)
	assert.ErrorIs(t, err, ErrInvalidCacheSize)
}

func TestStaticAndUnion(t *testing.T) {
	keys := []string{"cover", "hero", "title"}
	got, err := Static{Fields: []string{"hero", "missing", "cover", "hero"}}.Suggest(context.Background(), keys)
	require.NoError(t, err)
	assert.Equal(t, []string{"cover", "hero"}, got)

	u := Union{Static{Fields: []string{"hero"}}, Func(func(context.Context, []string) ([]string, error) {
		return []string{"title", "hero"}, nil
	})}
	got, err = u.Suggest(context.Background(), keys)
	require.NoError(t, err)
	assert.Equal(t, []string{"hero", "title"}, got)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, Config{})
	require.NoError(t, err)
	assert.IsType(t, None{}, s)

	s, err = New(ctx, Config{Provider: "none", Fields: []string{"hero"}})
	require.NoError(t, err)
	got, err := s.Suggest(ctx, []string{"hero", "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"hero"}, got)

	s, err = New(ctx, Config{Provider: "Static", Fields: []string{"x"}})
	require.NoError(t, err)
	assert.IsType(t, Static{}, s)

	_, err = New(ctx, Config{Provider: "gemini"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = New(ctx, Config{Provider: "openai"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestLoadHints(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "hints.yaml", []byte("fields:\n  - heroShot\n  - coverArt\n"), fileutil.ReadWriteUserReadOthers))
	require.NoError(t, afero.WriteFile(fs, "hints.json", []byte(`{"fields":["a"]}`), fileutil.ReadWriteUserReadOthers))
	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("fieldz: [a]\n"), fileutil.ReadWriteUserReadOthers))

	got, err := LoadHints(fs, "hints.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"heroShot", "coverArt"}, got)

	got, err = LoadHints(fs, "hints.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)

	_, err = LoadHints(fs, "bad.yaml")
	assert.Error(t, err)

	_, err = LoadHints(fs, "missing.yaml")
	assert.Error(t, err)
}
