package server

import (
	"time"

	"roomboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RoomResource is the JSON shape of a room in the API.
type RoomResource struct {
	ID           uint      `json:"id"`
	Author       *uint     `json:"author"`
	Theme        *uint     `json:"theme"`
	Name         string    `json:"name"`
	Participants []uint    `json:"participants"`
	Description  string    `json:"description"`
	UpdatedAt    time.Time `json:"updated_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewRoomResource serializes room, listing participants by id.
func NewRoomResource(room *models.Room) RoomResource {
	participants := make([]uint, 0, len(room.Participants))
	for _, p := range room.Participants {
		participants = append(participants, p.ID)
	}
	return RoomResource{
		ID:           room.ID,
		Author:       room.AuthorID,
		Theme:        room.ThemeID,
		Name:         room.Name,
		Participants: participants,
		Description:  room.Description,
		UpdatedAt:    room.UpdatedAt,
		CreatedAt:    room.CreatedAt,
	}
}

var apiRoutes = []string{
	"GET /api",
	"GET /api/rooms/",
	"GET /api/rooms/:id",
}

// APIRoutes handles GET /api/
// @Summary List API routes
// @Description Returns the available read-only endpoints
// @Tags api
// @Produce json
// @Success 200 {array} string
// @Router / [get]
func (s *Server) APIRoutes(c *fiber.Ctx) error {
	return c.JSON(apiRoutes)
}

// APIRooms handles GET /api/rooms/
// @Summary List rooms
// @Description Returns every room, most recently updated first
// @Tags rooms
// @Produce json
// @Success 200 {array} RoomResource
// @Failure 500 {object} models.ErrorResponse
// @Router /rooms/ [get]
func (s *Server) APIRooms(c *fiber.Ctx) error {
	rooms, err := s.roomService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	resources := make([]RoomResource, 0, len(rooms))
	for i := range rooms {
		resources = append(resources, NewRoomResource(&rooms[i]))
	}
	return c.JSON(resources)
}

// APIRoom handles GET /api/rooms/:id/
// @Summary Get room
// @Description Returns a single room by id
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} RoomResource
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /rooms/{id}/ [get]
func (s *Server) APIRoom(c *fiber.Ctx) error {
	id, err := apiID(c, "id")
	if err != nil {
		return nil
	}
	room, err := s.roomService.Get(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.JSON(NewRoomResource(room))
}
