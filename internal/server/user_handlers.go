package server

import (
	"strconv"

	"roomboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ProfilePage handles GET /profile/:id/
func (s *Server) ProfilePage(c *fiber.Ctx) error {
	id, err := pageID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.Profile(c.UserContext(), id)
	if err != nil {
		return pageError(c, err)
	}
	return s.render(c, pageProfile, fiber.Map{
		"user":     profile.User,
		"rooms":    profile.Rooms,
		"comments": profile.Comments,
		"themes":   profile.Themes,
	})
}

// UpdateUser handles GET and POST /update-user/ for the logged-in user.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	user := currentUser(c)
	form := fiber.Map{"username": user.Username, "email": user.Email, "bio": user.Bio}
	data := fiber.Map{"form": form}

	if c.Method() == fiber.MethodPost {
		in := service.UpdateProfileInput{
			Username: c.FormValue("username"),
			Email:    c.FormValue("email"),
			Bio:      c.FormValue("bio"),
		}
		updated, err := s.userService.UpdateProfile(c.UserContext(), actorFrom(c), in)
		if err == nil {
			return redirectTo(c, "/profile/"+strconv.FormatUint(uint64(updated.ID), 10)+"/")
		}
		fields := formErrors(err)
		if fields == nil {
			return pageError(c, err)
		}
		data["form"] = fiber.Map{"username": in.Username, "email": in.Email, "bio": in.Bio}
		data["errors"] = fields
	}

	return s.render(c, pageUpdateUser, data)
}
