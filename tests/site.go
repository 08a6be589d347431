package tests

import (
	"log"
	"math/rand/v2"
	"path/filepath"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/prior-it/mdxpress/config"
	"github.com/spf13/afero"
)

var Faker = gofakeit.New(rand.Uint64())

const (
	HomeTemplate = "<html><head><title>{{title}}</title></head><body class=\"home\">{{content}}</body></html>"
	BlogTemplate = "<html><head><title>{{title}}</title></head><body class=\"blog\">{{content}}</body></html>"
	Homepage     = "# Welcome\n\nThis is the *homepage*.\n"
	Stylesheet   = "body { color: black; }\n"
)

// ContentConfig returns the default content layout used by the fixtures.
func ContentConfig() config.ContentConfig {
	return config.Default().Content
}

// NewSite creates an in-memory content tree with a homepage, both templates, a stylesheet and the
// specified blog posts (slug -> markdown source).
func NewSite(posts map[string]string) afero.Fs {
	return fill(afero.NewMemMapFs(), posts)
}

// NewSiteOnDisk writes the same content tree as NewSite below root, which must exist.
func NewSiteOnDisk(root string, posts map[string]string) {
	fill(afero.NewBasePathFs(afero.NewOsFs(), root), posts)
}

func fill(fs afero.Fs, posts map[string]string) afero.Fs {
	cfg := ContentConfig()
	Write(fs, cfg.Homepage, Homepage)
	Write(fs, filepath.Join(cfg.ViewsDir, cfg.HomeTemplate), HomeTemplate)
	Write(fs, filepath.Join(cfg.ViewsDir, cfg.BlogTemplate), BlogTemplate)
	Write(fs, filepath.Join(cfg.StylesDir, "main.css"), Stylesheet)
	Check(fs.MkdirAll(cfg.BlogDir, 0o755))
	for slug, source := range posts {
		Write(fs, filepath.Join(cfg.BlogDir, slug+cfg.Extension), source)
	}
	return fs
}

// Write creates or replaces a file in fs, creating parent directories as needed.
func Write(fs afero.Fs, name string, content string) {
	Check(fs.MkdirAll(filepath.Dir(name), 0o755))
	Check(afero.WriteFile(fs, name, []byte(content), 0o644))
}

// Post returns a random markdown post with a leading heading, together with that heading.
func Post() (source string, title string) {
	title = Faker.Sentence(3)
	return "# " + title + "\n\n" + Faker.Sentence(12) + "\n", title
}

func Check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
