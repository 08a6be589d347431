package site

import "github.com/prior-it/mdxpress/server"

// Routes registers every page of the site. Each route answers any HTTP method.
func Routes(s *server.Server[*State]) {
	s.Handle("/", Home)
	s.Handle("/blog", BlogIndex)
	s.Handle(blogPrefix+"*", BlogPost)
	s.Handle(stylesPrefix+"*", Styles)
}
