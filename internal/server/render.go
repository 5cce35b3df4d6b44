package server

import (
	"github.com/gofiber/fiber/v2"
)

// Page names handed to the Renderer.
const (
	pageLoginRegister = "login_register.html"
	pageHome          = "home.html"
	pageRoom          = "room.html"
	pageRoomForm      = "room_form.html"
	pageDelete        = "delete.html"
	pageProfile       = "profile.html"
	pageUpdateUser    = "update_user.html"
	pageThemes        = "themes.html"
	pageActivity      = "activity.html"
)

// Renderer turns a page name and its context into the response body.
type Renderer interface {
	Render(c *fiber.Ctx, page string, data fiber.Map) error
}

// JSONRenderer writes the page context as JSON: {"page": name, "data": context}.
type JSONRenderer struct{}

func (JSONRenderer) Render(c *fiber.Ctx, page string, data fiber.Map) error {
	return c.JSON(fiber.Map{
		"page": page,
		"data": data,
	})
}

// ViewsRenderer renders through the fiber.Views engine configured on the app.
type ViewsRenderer struct {
	Layout string
}

func (r ViewsRenderer) Render(c *fiber.Ctx, page string, data fiber.Map) error {
	if r.Layout != "" {
		return c.Render(page, data, r.Layout)
	}
	return c.Render(page, data)
}

// render adds the visitor and pending notices to data and hands it to the renderer.
func (s *Server) render(c *fiber.Ctx, page string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["current_user"] = currentUser(c)
	data["messages"] = notices(c)
	return s.renderer.Render(c, page, data)
}

// addNotice queues a one-off message for the page rendered by this request.
func addNotice(c *fiber.Ctx, msg string) {
	list, _ := c.Locals(localNotices).([]string)
	c.Locals(localNotices, append(list, msg))
}

func notices(c *fiber.Ctx) []string {
	list, _ := c.Locals(localNotices).([]string)
	if list == nil {
		return []string{}
	}
	return list
}
