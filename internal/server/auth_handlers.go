package server

import (
	"errors"

	"roomboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LoginPage handles GET and POST /login/
func (s *Server) LoginPage(c *fiber.Ctx) error {
	if currentUser(c) != nil {
		return redirectTo(c, "/")
	}

	next := c.Query("next")
	if formNext := c.FormValue("next"); formNext != "" {
		next = formNext
	}
	data := fiber.Map{"page": "login", "next": next}

	if c.Method() == fiber.MethodPost {
		username := service.NormalizeUsername(c.FormValue("username"))
		user, err := s.authService.Authenticate(c.UserContext(), username, c.FormValue("password"))
		switch {
		case err == nil:
			if err := s.startSession(c, user); err != nil {
				return pageError(c, err)
			}
			return redirectTo(c, safeNext(next))
		case errors.Is(err, service.ErrUnknownUser), errors.Is(err, service.ErrBadCredentials):
			addNotice(c, err.Error())
			data["username"] = username
		default:
			return pageError(c, err)
		}
	}

	return s.render(c, pageLoginRegister, data)
}

// Logout handles GET and POST /logout/
func (s *Server) Logout(c *fiber.Ctx) error {
	s.endSession(c)
	return redirectTo(c, "/")
}

// RegisterPage handles GET and POST /register/
func (s *Server) RegisterPage(c *fiber.Ctx) error {
	data := fiber.Map{
		"page": "register",
		"form": fiber.Map{"username": "", "email": ""},
	}

	if c.Method() == fiber.MethodPost {
		in := service.RegisterInput{
			Username:  c.FormValue("username"),
			Email:     c.FormValue("email"),
			Password1: c.FormValue("password1"),
			Password2: c.FormValue("password2"),
		}
		user, err := s.authService.Register(c.UserContext(), in)
		if err == nil {
			if err := s.startSession(c, user); err != nil {
				return pageError(c, err)
			}
			return redirectTo(c, "/")
		}
		fields := formErrors(err)
		if fields == nil {
			return pageError(c, err)
		}
		addNotice(c, "An error occurred during registration")
		data["form"] = fiber.Map{"username": in.Username, "email": in.Email}
		data["errors"] = fields
	}

	return s.render(c, pageLoginRegister, data)
}
