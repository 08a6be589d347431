/*
Package server provides the HTTP server the site runs on.
Handlers take an application-specific state object (used for dependency injection) and an
[Exchange], which wraps the request and its response writer together with logging helpers.

Basic example:

	func main() {
		cfg, err := config.Load(os.DirFS("."))
		if err != nil {
			log.Fatal(err)
		}

		// Create server
		state := site.NewState(content.Open(cfg.Content), markdown.New(), slog.Default())
		s := server.New(state, cfg)

		// Attach middleware
		s.AttachDefaultMiddleware()

		// Attach routes
		s.Handle("/", Home)

		// Run server until SIGINT or SIGTERM
		if err := s.Start(context.Background(), nil); err != nil {
			log.Fatal(err)
		}
	}

	func Home(ex *server.Exchange, st *site.State) error {
		source, err := st.Store.LoadHomepage(ex.Context())
		if err != nil {
			return server.NewHTTPError(http.StatusInternalServerError, "Error loading homepage", err)
		}
		ex.RenderHTML(string(source))
		return nil
	}

A handler either writes a complete response or returns an error. Errors are turned into exactly
one status code and plain-text body by [DefaultErrorHandler]; only the public message of an
[HTTPError] ever reaches the client.
*/
package server
