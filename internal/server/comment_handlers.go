package server

import "github.com/gofiber/fiber/v2"

// DeleteComment handles GET (confirm) and POST (delete) /delete-comment/:id/
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := pageID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.Deletable(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return pageError(c, err)
	}

	if c.Method() == fiber.MethodPost {
		if _, err := s.commentService.Delete(c.UserContext(), actorFrom(c), id); err != nil {
			return pageError(c, err)
		}
		return redirectTo(c, "/")
	}

	return s.render(c, pageDelete, fiber.Map{"obj": comment})
}
