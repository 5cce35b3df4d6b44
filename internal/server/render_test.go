package server

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"roomboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubViews is a fiber.Views engine that records what it was asked to render.
type stubViews struct {
	loaded  bool
	name    string
	layouts []string
	binding fiber.Map
}

func (v *stubViews) Load() error {
	v.loaded = true
	return nil
}

func (v *stubViews) Render(w io.Writer, name string, binding interface{}, layouts ...string) error {
	v.name = name
	v.layouts = layouts
	v.binding, _ = binding.(fiber.Map)
	_, err := fmt.Fprintf(w, "<h1>%s</h1>", name)
	return err
}

func TestWithViews_RendersTemplateWithLayout(t *testing.T) {
	views := &stubViews{}
	env := newTestEnv(t, WithViews(views, "layouts/main"))
	assert.True(t, views.loaded)

	session := env.register("alice")
	resp := env.get("/", session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), fiber.MIMETextHTML)
	assert.Equal(t, "<h1>home.html</h1>", readBody(t, resp))

	assert.Equal(t, pageHome, views.name)
	assert.Equal(t, []string{"layouts/main"}, views.layouts)
	require.NotNil(t, views.binding)
	assert.Contains(t, views.binding, "rooms")
	assert.Contains(t, views.binding, "messages")
	user, ok := views.binding["current_user"].(*models.User)
	require.True(t, ok)
	assert.Equal(t, "alice", user.Username)
}

func TestViewsRenderer_WithoutLayout(t *testing.T) {
	views := &stubViews{}
	env := newTestEnv(t, WithViews(views, ""))

	resp := env.get("/login/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, pageLoginRegister, views.name)
	assert.Empty(t, views.layouts)
}

// recordingRenderer captures the last page handed to it.
type recordingRenderer struct {
	pages []string
	data  fiber.Map
}

func (r *recordingRenderer) Render(c *fiber.Ctx, page string, data fiber.Map) error {
	r.pages = append(r.pages, page)
	r.data = data
	return c.SendString(page)
}

func TestWithRenderer_ReplacesJSON(t *testing.T) {
	rec := &recordingRenderer{}
	env := newTestEnv(t, WithRenderer(rec))

	resp := env.get("/themes/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, pageThemes, readBody(t, resp))
	assert.Equal(t, []string{pageThemes}, rec.pages)
	assert.Nil(t, rec.data["current_user"])
	assert.Equal(t, []string{}, rec.data["messages"])
}
