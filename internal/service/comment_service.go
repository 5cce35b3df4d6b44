package service

import (
	"context"

	"roomboard/internal/models"
	"roomboard/internal/policy"
	"roomboard/internal/repository"
)

// CommentService serves the activity feed and comment deletion.
type CommentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService returns a CommentService backed by commentRepo.
func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// Activity returns every comment, newest first.
func (s *CommentService) Activity(ctx context.Context) ([]models.Comment, error) {
	return s.commentRepo.ListAll(ctx)
}

// Deletable loads a comment and checks that actor may delete it.
func (s *CommentService) Deletable(ctx context.Context, actor policy.Actor, id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanDeleteComment(actor, comment).Allowed() {
		return nil, notAllowed()
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor policy.Actor, id uint) (*models.Comment, error) {
	comment, err := s.Deletable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return comment, nil
}
