package service

import (
	"errors"
	"strings"

	"issue-tracker/internal/dto"
	"issue-tracker/internal/model"
	"issue-tracker/internal/repository"
	"issue-tracker/internal/store"
	"issue-tracker/pkg/constants"
	pkgErrors "issue-tracker/pkg/errors"
)

type CommentService interface {
	Create(actor *dto.AuthUser, taskID, content string) (*model.Comment, error)
	Update(actor *dto.AuthUser, id, content string) (*dto.CommentUpdateResponse, error)
	Delete(actor *dto.AuthUser, id string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
}

func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
	}
}

func (s *commentService) Create(actor *dto.AuthUser, taskID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pkgErrors.ErrValidation.WithMessage("Comment content is required")
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrNotFound.WithMessage("Task not found")
		}
		return nil, err
	}

	userName := actor.Name
	if user, err := s.userRepo.FindByID(actor.ID); err == nil {
		userName = user.Name
	}

	comment := &model.Comment{
		ID:        store.NewID(constants.IDPrefixComment),
		TaskID:    taskID,
		UserID:    actor.ID,
		UserName:  userName,
		Content:   content,
		CreatedAt: store.Now(),
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) Update(actor *dto.AuthUser, id, content string) (*dto.CommentUpdateResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pkgErrors.ErrValidation.WithMessage("Comment content is required")
	}

	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrNotFound.WithMessage("Comment not found")
		}
		return nil, err
	}

	// 编辑仅限作者本人, 管理角色也不行
	if comment.UserID != actor.ID {
		return nil, pkgErrors.ErrForbidden.WithMessage("You can only edit your own comments")
	}

	now := store.Now()
	comment.Content = content
	comment.IsEdited = true
	comment.UpdatedAt = &now

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	return &dto.CommentUpdateResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		IsEdited:  comment.IsEdited,
		UpdatedAt: comment.UpdatedAt,
	}, nil
}

func (s *commentService) Delete(actor *dto.AuthUser, id string) error {
	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return pkgErrors.ErrNotFound.WithMessage("Comment not found")
		}
		return err
	}

	// 删除: 作者本人或 TEAM_LEAD/ADMIN
	if comment.UserID != actor.ID && !isPrivileged(actor) {
		return pkgErrors.ErrForbidden.WithMessage("You can only delete your own comments")
	}

	return s.commentRepo.Delete(id)
}
