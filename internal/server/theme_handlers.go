package server

import "github.com/gofiber/fiber/v2"

// ThemesPage handles GET /themes/?q=
func (s *Server) ThemesPage(c *fiber.Ctx) error {
	q := c.Query("q")
	themes, err := s.themeService.Search(c.UserContext(), q)
	if err != nil {
		return pageError(c, err)
	}
	return s.render(c, pageThemes, fiber.Map{"themes": themes, "q": q})
}

// ActivityPage handles GET /activity/
func (s *Server) ActivityPage(c *fiber.Ctx) error {
	comments, err := s.commentService.Activity(c.UserContext())
	if err != nil {
		return pageError(c, err)
	}
	return s.render(c, pageActivity, fiber.Map{"room_comments": comments})
}
