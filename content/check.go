package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prior-it/mdxpress/core"
	"github.com/spf13/afero"
)

const contentPlaceholder = "{{content}}"

// Problem is one thing that would make a page of the site fail or render incompletely.
type Problem struct {
	Path string
	Err  error
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s: %v", p.Path, p.Err)
}

func (p Problem) Unwrap() error {
	return p.Err
}

// Report is the result of a site check.
type Report struct {
	Posts    int
	Problems []Problem
}

func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Err joins all problems into a single error, or returns nil if the site is healthy.
func (r Report) Err() error {
	errs := make([]error, 0, len(r.Problems))
	for _, problem := range r.Problems {
		errs = append(errs, problem)
	}
	return errors.Join(errs...)
}

// Check loads and renders everything the site serves: the homepage, both templates and every blog
// post. It never stops at the first problem.
func Check(ctx context.Context, store *Store, renderer core.Renderer) Report {
	var report Report
	cfg := store.Config()
	fail := func(path string, err error) {
		report.Problems = append(report.Problems, Problem{Path: path, Err: err})
	}

	if source, err := store.LoadHomepage(ctx); err != nil {
		fail(cfg.Homepage, err)
	} else if _, err := core.ParseDocument(source, renderer, ""); err != nil {
		fail(cfg.Homepage, err)
	}

	for _, name := range []string{cfg.HomeTemplate, cfg.BlogTemplate} {
		template, err := store.LoadTemplate(ctx, name)
		if err != nil {
			fail(name, err)
			continue
		}
		if !strings.Contains(template, contentPlaceholder) {
			fail(name, fmt.Errorf("template has no %s placeholder", contentPlaceholder))
		}
	}

	entries, err := store.ListBlogPosts(ctx)
	if err != nil {
		fail(cfg.BlogDir, err)
	}
	for _, entry := range entries {
		path := entry.Slug.String() + cfg.Extension
		source, err := store.LoadBlogPost(ctx, entry.Slug.String())
		if err != nil {
			fail(path, err)
			continue
		}
		if _, err := core.ParseDocument(source, renderer, entry.Slug.String()); err != nil {
			fail(path, err)
			continue
		}
		report.Posts++
	}

	if ok, err := afero.DirExists(store.fs, cfg.StylesDir); err != nil || !ok {
		fail(cfg.StylesDir, fmt.Errorf("styles directory is missing: %w", core.ErrNotFound))
	}

	return report
}
