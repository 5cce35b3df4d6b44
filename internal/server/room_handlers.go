package server

import (
	"strconv"

	"roomboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET /?q=
func (s *Server) Home(c *fiber.Ctx) error {
	q := c.Query("q")
	feed, err := s.roomService.Home(c.UserContext(), q)
	if err != nil {
		return pageError(c, err)
	}
	return s.render(c, pageHome, fiber.Map{
		"rooms":         feed.Rooms,
		"themes":        feed.Themes,
		"room_count":    feed.RoomCount,
		"room_comments": feed.RoomComments,
		"q":             feed.Query,
	})
}

// RoomPage handles GET /room/:id/ and comment submission via POST.
func (s *Server) RoomPage(c *fiber.Ctx) error {
	id, err := pageID(c, "id")
	if err != nil {
		return nil
	}

	data := fiber.Map{}
	if c.Method() == fiber.MethodPost {
		_, err := s.roomService.PostComment(c.UserContext(), actorFrom(c), id, c.FormValue("text"))
		if err == nil {
			return redirectTo(c, roomURL(id))
		}
		fields := formErrors(err)
		if fields == nil {
			return pageError(c, err)
		}
		data["errors"] = fields
		data["text"] = c.FormValue("text")
	}

	detail, err := s.roomService.Detail(c.UserContext(), id)
	if err != nil {
		return pageError(c, err)
	}
	data["room"] = detail.Room
	data["room_comments"] = detail.Comments
	data["participants"] = detail.Participants
	return s.render(c, pageRoom, data)
}

// CreateRoom handles GET and POST /create-room/
func (s *Server) CreateRoom(c *fiber.Ctx) error {
	themes, err := s.themeService.Search(c.UserContext(), "")
	if err != nil {
		return pageError(c, err)
	}
	data := fiber.Map{"themes": themes, "form": service.RoomInput{}}

	if c.Method() == fiber.MethodPost {
		in := roomForm(c)
		if _, err := s.roomService.Create(c.UserContext(), actorFrom(c), in); err != nil {
			fields := formErrors(err)
			if fields == nil {
				return pageError(c, err)
			}
			data["form"] = in
			data["errors"] = fields
			return s.render(c, pageRoomForm, data)
		}
		return redirectTo(c, "/")
	}

	return s.render(c, pageRoomForm, data)
}

// UpdateRoom handles GET and POST /update-room/:id/. Only the author gets past the checks.
func (s *Server) UpdateRoom(c *fiber.Ctx) error {
	id, err := pageID(c, "id")
	if err != nil {
		return nil
	}

	room, err := s.roomService.Editable(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return pageError(c, err)
	}
	themes, err := s.themeService.Search(c.UserContext(), "")
	if err != nil {
		return pageError(c, err)
	}
	data := fiber.Map{"themes": themes, "room": room, "form": service.FormFor(room)}

	if c.Method() == fiber.MethodPost {
		in := roomForm(c)
		if _, err := s.roomService.Update(c.UserContext(), actorFrom(c), id, in); err != nil {
			fields := formErrors(err)
			if fields == nil {
				return pageError(c, err)
			}
			data["form"] = in
			data["errors"] = fields
			return s.render(c, pageRoomForm, data)
		}
		return redirectTo(c, "/")
	}

	return s.render(c, pageRoomForm, data)
}

// DeleteRoom handles GET (confirm) and POST (delete) /delete-room/:id/
func (s *Server) DeleteRoom(c *fiber.Ctx) error {
	id, err := pageID(c, "id")
	if err != nil {
		return nil
	}

	room, err := s.roomService.Editable(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return pageError(c, err)
	}

	if c.Method() == fiber.MethodPost {
		if err := s.roomService.Delete(c.UserContext(), actorFrom(c), id); err != nil {
			return pageError(c, err)
		}
		return redirectTo(c, "/")
	}

	return s.render(c, pageDelete, fiber.Map{"obj": room})
}

func roomForm(c *fiber.Ctx) service.RoomInput {
	return service.RoomInput{
		Name:        c.FormValue("name"),
		Theme:       c.FormValue("theme"),
		Description: c.FormValue("description"),
	}
}

func roomURL(id uint) string {
	return "/room/" + strconv.FormatUint(uint64(id), 10) + "/"
}
