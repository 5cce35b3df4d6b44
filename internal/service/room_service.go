package service

import (
	"context"
	"strings"

	"roomboard/internal/models"
	"roomboard/internal/policy"
	"roomboard/internal/repository"
	"roomboard/internal/validation"
)

// RoomService owns room search, editing and commenting.
type RoomService struct {
	roomRepo    repository.RoomRepository
	themeRepo   repository.ThemeRepository
	commentRepo repository.CommentRepository
}

// RoomInput is the room form.
type RoomInput struct {
	Name        string `json:"name"`
	Theme       string `json:"theme"`
	Description string `json:"description"`
}

// RoomDetail is everything the room page shows.
type RoomDetail struct {
	Room         *models.Room
	Comments     []models.Comment
	Participants []models.User
}

// HomeFeed is the result of a home page search.
type HomeFeed struct {
	Query        string
	Rooms        []models.Room
	Themes       []models.Theme
	RoomCount    int
	RoomComments []models.Comment
}

const homeThemeCount = 5

// NewRoomService wires a RoomService to its repositories.
func NewRoomService(
	roomRepo repository.RoomRepository,
	themeRepo repository.ThemeRepository,
	commentRepo repository.CommentRepository,
) *RoomService {
	return &RoomService{
		roomRepo:    roomRepo,
		themeRepo:   themeRepo,
		commentRepo: commentRepo,
	}
}

// FormFor returns the form values pre-populated from room.
func FormFor(room *models.Room) RoomInput {
	in := RoomInput{Name: room.Name, Description: room.Description}
	if room.Theme != nil {
		in.Theme = room.Theme.Title
	}
	return in
}

func validateRoom(in RoomInput) error {
	return fieldErrors(validation.ValidateRoom(in.Name, strings.TrimSpace(in.Theme)))
}

// Home runs the listing search for q.
func (s *RoomService) Home(ctx context.Context, q string) (*HomeFeed, error) {
	rooms, err := s.roomRepo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	themes, err := s.themeRepo.Recent(ctx, homeThemeCount)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByThemeTitle(ctx, q)
	if err != nil {
		return nil, err
	}
	return &HomeFeed{
		Query:        q,
		Rooms:        rooms,
		Themes:       themes,
		RoomCount:    len(rooms),
		RoomComments: comments,
	}, nil
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	return s.roomRepo.List(ctx)
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	return s.roomRepo.GetByID(ctx, id)
}

// Detail loads a room with its comments (newest first) and participants.
func (s *RoomService) Detail(ctx context.Context, id uint) (*RoomDetail, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	return &RoomDetail{
		Room:         room,
		Comments:     comments,
		Participants: room.Participants,
	}, nil
}

// Create resolves the theme by title and stores a room owned by actor.
func (s *RoomService) Create(ctx context.Context, actor policy.Actor, in RoomInput) (*models.Room, error) {
	if !actor.Authenticated() {
		return nil, notAllowed()
	}
	if err := validateRoom(in); err != nil {
		return nil, err
	}
	theme, err := s.themeRepo.GetOrCreate(ctx, in.Theme)
	if err != nil {
		return nil, err
	}

	authorID := actor.UserID
	room := &models.Room{
		AuthorID:    &authorID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	}
	if theme != nil {
		room.ThemeID = &theme.ID
		room.Theme = theme
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Editable loads a room and checks that actor may change it.
func (s *RoomService) Editable(ctx context.Context, actor policy.Actor, id uint) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyRoom(actor, room).Allowed() {
		return nil, notAllowed()
	}
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, actor policy.Actor, id uint, in RoomInput) (*models.Room, error) {
	room, err := s.Editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateRoom(in); err != nil {
		return room, err
	}
	theme, err := s.themeRepo.GetOrCreate(ctx, in.Theme)
	if err != nil {
		return nil, err
	}

	room.Name = strings.TrimSpace(in.Name)
	room.Description = in.Description
	room.Theme = theme
	room.ThemeID = nil
	if theme != nil {
		room.ThemeID = &theme.ID
	}
	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if _, err := s.Editable(ctx, actor, id); err != nil {
		return err
	}
	return s.roomRepo.Delete(ctx, id)
}

// PostComment stores a comment from actor and adds actor to the room's participants.
// Blank text is stored as the default placeholder.
func (s *RoomService) PostComment(ctx context.Context, actor policy.Actor, roomID uint, text string) (*models.Comment, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !policy.CanComment(actor, room).Allowed() {
		return nil, notAllowed()
	}
	if err := validation.ValidateCommentText(text); err != nil {
		return nil, models.NewFieldValidationError(map[string][]string{"text": {err.Error()}})
	}
	if strings.TrimSpace(text) == "" {
		text = models.DefaultCommentText
	}

	comment := &models.Comment{
		AuthorID: actor.UserID,
		RoomID:   room.ID,
		Text:     text,
	}
	if err := s.roomRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
