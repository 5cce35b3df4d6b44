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

func TestDeleteComment(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register("alice")
	bob := env.register("bob")
	roomID := env.createRoom(alice, "Chess Club", "Games")

	resp := env.post(fmt.Sprintf("/room/%d/", roomID), url.Values{"text": {"gg"}}, bob)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var comment models.Comment
	require.NoError(t, env.db.First(&comment).Error)
	path := fmt.Sprintf("/delete-comment/%d/", comment.ID)

	// Owning the room is not enough to remove someone else's comment.
	assert.Equal(t, http.StatusForbidden, env.get(path, alice).StatusCode)
	assert.Equal(t, http.StatusForbidden, env.post(path, nil, alice).StatusCode)

	page := decodePage(t, env.get(path, bob))
	assert.Equal(t, pageDelete, page.Page)
	assert.Equal(t, "gg", field(page.Data["obj"], "text"))

	var count int64
	env.db.Model(&models.Comment{}).Count(&count)
	require.Equal(t, int64(1), count)

	resp = env.post(path, nil, bob)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	env.db.Model(&models.Comment{}).Count(&count)
	assert.Zero(t, count)
	assert.Equal(t, http.StatusNotFound, env.post(path, nil, bob).StatusCode)
}
