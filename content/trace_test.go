package content_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/prior-it/mdxpress/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedSpan struct {
	Op          string
	Description string
	Status      sentry.SpanStatus
}

// traced runs fn inside a sampled transaction and returns the spans it recorded.
func traced(t *testing.T, fn func(ctx context.Context)) []recordedSpan {
	t.Helper()
	var (
		mu    sync.Mutex
		spans []recordedSpan
	)
	client, err := sentry.NewClient(sentry.ClientOptions{
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		BeforeSendTransaction: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			defer mu.Unlock()
			for _, span := range event.Spans {
				spans = append(spans, recordedSpan{span.Op, span.Description, span.Status})
			}
			return nil
		},
	})
	require.NoError(t, err)

	ctx := sentry.SetHubOnContext(context.Background(), sentry.NewHub(client, sentry.NewScope()))
	tx := sentry.StartTransaction(ctx, "content")
	fn(tx.Context())
	tx.Finish()

	mu.Lock()
	defer mu.Unlock()
	return spans
}

func TestStoreSpans(t *testing.T) {
	cfg := tests.ContentConfig()

	t.Run("ok: a read post is traced as ok", func(t *testing.T) {
		t.Parallel()
		store, _ := newStore(map[string]string{"hello": "# Hello"})
		spans := traced(t, func(ctx context.Context) {
			_, err := store.LoadBlogPost(ctx, "hello")
			require.NoError(t, err)
		})
		assert.Equal(t, []recordedSpan{
			{"file.read", filepath.Join(cfg.BlogDir, "hello.md"), sentry.SpanStatusOK},
		}, spans)
	})

	t.Run("ok: a missing post is traced as not found", func(t *testing.T) {
		t.Parallel()
		store, _ := newStore(nil)
		spans := traced(t, func(ctx context.Context) {
			_, err := store.LoadBlogPost(ctx, "missing")
			require.Error(t, err)
		})
		assert.Equal(t, []recordedSpan{
			{"file.read", filepath.Join(cfg.BlogDir, "missing.md"), sentry.SpanStatusNotFound},
		}, spans)
	})

	t.Run("ok: listing is traced as ok", func(t *testing.T) {
		t.Parallel()
		store, _ := newStore(map[string]string{"hello": "# Hello"})
		spans := traced(t, func(ctx context.Context) {
			_, err := store.ListBlogPosts(ctx)
			require.NoError(t, err)
		})
		assert.Equal(t, []recordedSpan{{"file.list", cfg.BlogDir, sentry.SpanStatusOK}}, spans)
	})

	t.Run("err: a failed listing is traced as an internal error", func(t *testing.T) {
		t.Parallel()
		store, fs := newStore(nil)
		require.NoError(t, fs.RemoveAll(cfg.BlogDir))
		spans := traced(t, func(ctx context.Context) {
			_, err := store.ListBlogPosts(ctx)
			require.Error(t, err)
		})
		assert.Equal(t, []recordedSpan{{"file.list", cfg.BlogDir, sentry.SpanStatusInternalError}}, spans)
	})

	t.Run("ok: reads work without a hub on the context", func(t *testing.T) {
		t.Parallel()
		store, _ := newStore(map[string]string{"hello": "# Hello"})
		_, err := store.LoadBlogPost(context.Background(), "hello")
		require.NoError(t, err)
	})
}
