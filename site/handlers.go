package site

import (
	"errors"
	"net/http"
	"strings"

	"github.com/prior-it/mdxpress/core"
	"github.com/prior-it/mdxpress/server"
	"github.com/prior-it/mdxpress/view"
)

const (
	homepageFallbackTitle = "Homepage"
	blogPrefix            = "/blog/"
	stylesPrefix          = "/styles/"
	stylesContentType     = "text/css"
)

func Home(ex *server.Exchange, st *State) error {
	source, err := st.Store.LoadHomepage(ex.Context())
	if err != nil {
		return server.NewHTTPError(http.StatusInternalServerError, "Error loading homepage", err)
	}
	template, err := st.Store.LoadHomeTemplate(ex.Context())
	if err != nil {
		return errTemplate(err)
	}
	return renderDocument(ex, st, template, source, homepageFallbackTitle)
}

func BlogIndex(ex *server.Exchange, st *State) error {
	entries, err := st.Store.ListBlogPosts(ex.Context())
	if err != nil {
		return server.NewHTTPError(http.StatusInternalServerError, "Unable to read blog directory", err)
	}
	template, err := st.Store.LoadBlogTemplate(ex.Context())
	if err != nil {
		return errTemplate(err)
	}
	index, err := view.RenderString(ex.Context(), view.BlogIndex(entries))
	if err != nil {
		return server.NewHTTPError(http.StatusInternalServerError, "Error rendering page", err)
	}
	ex.RenderHTML(view.Render(template, view.NewContext(view.BlogIndexTitle, index, nil)))
	return nil
}

func BlogPost(ex *server.Exchange, st *State) error {
	slug, ok := strings.CutPrefix(ex.Path(), blogPrefix)
	if !ok {
		return server.NewHTTPError(http.StatusNotFound, "Blog post not found", core.ErrRouteNotMatched)
	}
	ex.LogString("slug", slug)

	source, err := st.Store.LoadBlogPost(ex.Context(), slug)
	if errors.Is(err, core.ErrNotFound) {
		return server.NewHTTPError(http.StatusNotFound, "Blog post not found", err)
	} else if err != nil {
		return server.NewHTTPError(http.StatusInternalServerError, "Error loading blog post", err)
	}
	template, err := st.Store.LoadBlogTemplate(ex.Context())
	if err != nil {
		return errTemplate(err)
	}
	return renderDocument(ex, st, template, source, slug)
}

// Styles serves files below the styles directory verbatim.
func Styles(ex *server.Exchange, st *State) error {
	rel, ok := strings.CutPrefix(ex.Path(), stylesPrefix)
	if !ok {
		return server.NewHTTPError(http.StatusNotFound, "File not found", core.ErrRouteNotMatched)
	}
	data, err := st.Store.LoadStaticAsset(ex.Context(), rel)
	if errors.Is(err, core.ErrNotFound) {
		return server.NewHTTPError(http.StatusNotFound, "File not found", err)
	} else if err != nil {
		return server.NewHTTPError(http.StatusInternalServerError, "Error loading file", err)
	}
	ex.Write(stylesContentType, data)
	return nil
}

func renderDocument(ex *server.Exchange, st *State, template string, source []byte, fallback string) error {
	doc, err := core.ParseDocument(source, st.Renderer, fallback)
	if err != nil {
		return server.NewHTTPError(http.StatusInternalServerError, "Error rendering page", err)
	}
	ex.RenderHTML(view.Render(template, view.NewContext(doc.Title, doc.HTML, doc.Meta)))
	return nil
}

func errTemplate(err error) error {
	return server.NewHTTPError(http.StatusInternalServerError, "Template loading error", err)
}
