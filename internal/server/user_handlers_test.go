package server

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"roomboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilePage(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register("alice")
	env.createRoom(alice, "Chess Club", "Games")

	var user models.User
	require.NoError(t, env.db.Where("username = ?", "alice").First(&user).Error)

	page := decodePage(t, env.get(fmt.Sprintf("/profile/%d/", user.ID), ""))
	assert.Equal(t, pageProfile, page.Page)
	assert.Equal(t, "alice", field(page.Data["user"], "username"))
	assert.Len(t, list(page.Data["rooms"]), 1)
	assert.NotNil(t, page.Data["themes"])
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register("alice")
	env.register("bob")

	var user models.User
	require.NoError(t, env.db.Where("username = ?", "alice").First(&user).Error)

	page := decodePage(t, env.get("/update-user/", alice))
	assert.Equal(t, pageUpdateUser, page.Page)
	assert.Equal(t, "alice", field(page.Data["form"], "username"))

	t.Run("taken username", func(t *testing.T) {
		page := decodePage(t, env.post("/update-user/", url.Values{"username": {"bob"}}, alice))
		assert.NotNil(t, field(page.Data["errors"], "username"))
		assert.Equal(t, "bob", field(page.Data["form"], "username"))
	})

	t.Run("saves profile", func(t *testing.T) {
		resp := env.post("/update-user/", url.Values{
			"username": {"alice"},
			"email":    {"alice@example.com"},
			"bio":      {"plays the Sicilian"},
		}, alice)
		require.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, fmt.Sprintf("/profile/%d/", user.ID), resp.Header.Get("Location"))

		var saved models.User
		require.NoError(t, env.db.First(&saved, user.ID).Error)
		assert.Equal(t, "plays the Sicilian", saved.Bio)
		assert.Equal(t, "alice@example.com", saved.Email)
	})
}
