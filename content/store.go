// Package content resolves request paths to files of the site's content tree.
//
// Every lookup is confined to its own directory: names are cleaned, joined under that directory and
// checked to still lie inside it. Anything that would escape resolves to core.ErrNotFound.
// Nothing is cached; every call reads storage again.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/prior-it/mdxpress/config"
	"github.com/prior-it/mdxpress/core"
	"github.com/spf13/afero"
)

type Store struct {
	fs  afero.Fs
	cfg config.ContentConfig
}

// NewStore creates a store that reads the content tree from fsys. All configured paths are
// interpreted relative to the root of fsys.
func NewStore(fsys afero.Fs, cfg config.ContentConfig) *Store {
	return &Store{fs: fsys, cfg: cfg}
}

// Open creates a store for the content tree on disk at cfg.Root.
func Open(cfg config.ContentConfig) *Store {
	return NewStore(afero.NewBasePathFs(afero.NewOsFs(), cfg.Root), cfg)
}

func (s *Store) Config() config.ContentConfig {
	return s.cfg
}

// LoadHomepage reads the homepage markup document.
func (s *Store) LoadHomepage(ctx context.Context) ([]byte, error) {
	name, err := resolve(".", s.cfg.Homepage)
	if err != nil {
		return nil, err
	}
	return s.readFile(ctx, name)
}

// ListBlogPosts returns one entry for every markup file in the blog directory, sorted by slug.
// Directories, files with another extension and names that are not valid slugs are skipped.
func (s *Store) ListBlogPosts(ctx context.Context) (entries []core.BlogIndexEntry, err error) {
	span := startSpan(ctx, "file.list", s.cfg.BlogDir)
	defer func() { finishSpan(span, err) }()

	infos, err := afero.ReadDir(s.fs, s.cfg.BlogDir)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot list blog directory %q: %w", core.ErrIO, s.cfg.BlogDir, err)
	}

	entries = make([]core.BlogIndexEntry, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if !strings.HasSuffix(info.Name(), s.cfg.Extension) {
			continue
		}
		entry, ok := core.NewBlogIndexEntry(info.Name(), s.cfg.Extension)
		if !ok {
			slog.DebugContext(ctx, "Skipping blog post with an invalid name", "file", info.Name())
			continue
		}
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b core.BlogIndexEntry) int {
		return strings.Compare(string(a.Slug), string(b.Slug))
	})
	span.SetData("count", len(entries))
	return entries, nil
}

// LoadBlogPost reads the markup document for slug from the blog directory.
func (s *Store) LoadBlogPost(ctx context.Context, slug string) ([]byte, error) {
	parsed, err := core.ParseSlug(slug)
	if err != nil {
		return nil, err
	}
	name, err := resolve(s.cfg.BlogDir, parsed.String()+s.cfg.Extension)
	if err != nil {
		return nil, err
	}
	return s.readFile(ctx, name)
}

// LoadStaticAsset reads the file at rel below the styles directory.
func (s *Store) LoadStaticAsset(ctx context.Context, rel string) ([]byte, error) {
	name, err := resolve(s.cfg.StylesDir, rel)
	if err != nil {
		return nil, err
	}
	return s.readFile(ctx, name)
}

// LoadTemplate reads the named HTML template from the views directory.
// Any failure, including a missing file, is reported as core.ErrIO.
func (s *Store) LoadTemplate(ctx context.Context, templateName string) (string, error) {
	name, err := resolve(s.cfg.ViewsDir, templateName)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	data, err := s.readFile(ctx, name)
	if err != nil {
		return "", fmt.Errorf("%w: cannot load template %q: %w", core.ErrIO, templateName, err)
	}
	return string(data), nil
}

// LoadHomeTemplate reads the configured homepage template.
func (s *Store) LoadHomeTemplate(ctx context.Context) (string, error) {
	return s.LoadTemplate(ctx, s.cfg.HomeTemplate)
}

// LoadBlogTemplate reads the configured blog template.
func (s *Store) LoadBlogTemplate(ctx context.Context) (string, error) {
	return s.LoadTemplate(ctx, s.cfg.BlogTemplate)
}

// readFile reads a regular file. Directories count as missing.
func (s *Store) readFile(ctx context.Context, name string) (data []byte, err error) {
	span := startSpan(ctx, "file.read", name)
	defer func() { finishSpan(span, err) }()

	info, err := s.fs.Stat(name)
	if err != nil {
		return nil, classify(name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", core.ErrNotFound, name)
	}
	data, err = afero.ReadFile(s.fs, name)
	if err != nil {
		return nil, classify(name, err)
	}
	span.SetData("bytes", len(data))
	return data, nil
}

func classify(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: cannot read %q: %w", core.ErrNotFound, name, err)
	}
	return fmt.Errorf("%w: cannot read %q: %w", core.ErrIO, name, err)
}

// resolve joins name below dir and verifies the result stays inside dir.
// A ".." segment is rejected outright; dots inside a segment are ordinary characters.
func resolve(dir string, name string) (string, error) {
	segments := strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' })
	if slices.Contains(segments, "..") || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%q: %w", name, core.ErrInvalidPath)
	}
	base := filepath.Clean(dir)
	full := filepath.Join(base, filepath.FromSlash(name))
	rel, err := filepath.Rel(base, full)
	if err != nil || filepath.IsAbs(rel) || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q escapes %q: %w", name, dir, core.ErrInvalidPath)
	}
	return full, nil
}

func startSpan(ctx context.Context, operation string, name string) *sentry.Span {
	return sentry.StartSpan(ctx, operation, sentry.WithDescription(name))
}

func finishSpan(span *sentry.Span, err error) {
	switch {
	case err == nil:
		span.Status = sentry.SpanStatusOK
	case errors.Is(err, core.ErrNotFound):
		span.Status = sentry.SpanStatusNotFound
	default:
		span.Status = sentry.SpanStatusInternalError
	}
	span.Finish()
}
