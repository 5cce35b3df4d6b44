package policy

import (
	"testing"

	"roomboard/internal/models"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestCanModifyRoom(t *testing.T) {
	owned := &models.Room{ID: 1, AuthorID: uintPtr(7)}
	orphan := &models.Room{ID: 2}

	tests := []struct {
		name  string
		actor Actor
		room  *models.Room
		want  bool
	}{
		{"author", Actor{UserID: 7}, owned, true},
		{"other user", Actor{UserID: 8}, owned, false},
		{"anonymous", Actor{}, owned, false},
		{"orphaned room", Actor{UserID: 7}, orphan, false},
		{"missing room", Actor{UserID: 7}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModifyRoom(tt.actor, tt.room).Allowed())
		})
	}
}

func TestCanDeleteComment(t *testing.T) {
	comment := &models.Comment{ID: 3, AuthorID: 5}

	assert.True(t, CanDeleteComment(Actor{UserID: 5}, comment).Allowed())
	assert.False(t, CanDeleteComment(Actor{UserID: 6}, comment).Allowed())
	assert.False(t, CanDeleteComment(Actor{}, comment).Allowed())
	assert.False(t, CanDeleteComment(Actor{UserID: 5}, nil).Allowed())
}

func TestCanComment(t *testing.T) {
	room := &models.Room{ID: 1}

	assert.True(t, CanComment(Actor{UserID: 1}, room).Allowed())
	assert.False(t, CanComment(Actor{}, room).Allowed())
	assert.False(t, CanComment(Actor{UserID: 1}, nil).Allowed())
}
