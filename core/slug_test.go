package core_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/prior-it/mdxpress/core"
	"github.com/prior-it/mdxpress/tests"
	"github.com/stretchr/testify/assert"
)

func FuzzSlug(f *testing.F) {
	for _, seed := range []string{"hello-world", "..", "../etc/passwd", "a/b", "", ".", "a..b", "%2e%2e"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, value string) {
		slug, err := core.ParseSlug(value)
		if err != nil {
			assert.True(t, errors.Is(err, core.ErrNotFound), "Invalid slugs should map to not found")
			assert.Empty(t, slug)
			return
		}
		assert.NotEqual(t, "..", string(slug))
		assert.NotEqual(t, ".", string(slug))
		assert.NotContains(t, string(slug), "/")
		assert.NotContains(t, string(slug), "\\")
	})
}

func TestSlug(t *testing.T) {
	t.Run("ok: regular slugs are accepted verbatim", func(t *testing.T) {
		t.Parallel()
		value := strings.ToLower(tests.Faker.LetterN(8)) + "-" + tests.Faker.LetterN(4)
		slug, err := core.ParseSlug(value)
		assert.Nil(t, err)
		assert.Equal(t, value, slug.String())
	})

	t.Run("ok: dots inside a name are not traversal", func(t *testing.T) {
		t.Parallel()
		for _, value := range []string{"v1..2", "..hidden", "trailing..", "release-1.2"} {
			slug, err := core.ParseSlug(value)
			assert.NoError(t, err, "%q should be a valid slug", value)
			assert.Equal(t, value, slug.String())
		}
	})

	t.Run("err: traversal and separators are rejected", func(t *testing.T) {
		t.Parallel()
		for _, value := range []string{
			"",
			".",
			"..",
			"../secret",
			"..\\secret",
			"a/../../b",
			"nested/post",
			"nul\x00byte",
		} {
			_, err := core.ParseSlug(value)
			assert.ErrorIs(t, err, core.ErrInvalidPath, "%q should not be a valid slug", value)
			assert.ErrorIs(t, err, core.ErrNotFound, "%q should resolve to not found", value)
		}
	})

	t.Run("ok: display name replaces separators with spaces", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "my first post", core.Slug("my-first-post").DisplayName())
		assert.Equal(t, "snake case post", core.Slug("snake_case_post").DisplayName())
		assert.Equal(t, "plain", core.Slug("plain").DisplayName())
	})
}

func TestBlogIndexEntry(t *testing.T) {
	t.Run("ok: extension is stripped once from the end", func(t *testing.T) {
		t.Parallel()
		entry, ok := core.NewBlogIndexEntry("hello-world.md", ".md")
		assert.True(t, ok)
		assert.Equal(t, core.Slug("hello-world"), entry.Slug)
		assert.Equal(t, "hello world", entry.DisplayName)

		entry, ok = core.NewBlogIndexEntry("notes.md.md", ".md")
		assert.True(t, ok)
		assert.Equal(t, core.Slug("notes.md"), entry.Slug)
	})

	t.Run("err: other extensions and bare extensions are skipped", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"draft.txt", "image.png", ".md", "README"} {
			_, ok := core.NewBlogIndexEntry(name, ".md")
			assert.False(t, ok, "%q should not be a blog post", name)
		}
	})
}
