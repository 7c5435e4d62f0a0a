package repository

import (
	"issue-tracker/internal/model"
	"issue-tracker/internal/store"
	pkgErrors "issue-tracker/pkg/errors"
)

// CommentRepository 评论数据访问
// 评论是唯一支持硬删除的实体
type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(id string) (*model.Comment, error)
	Update(comment *model.Comment) error
	Delete(id string) error
	ListByTask(taskID string) []*model.Comment
	List() []*model.Comment
}

type commentRepository struct {
	store *store.Store
}

func NewCommentRepository(s *store.Store) CommentRepository {
	return &commentRepository{store: s}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	r.store.Lock()
	defer r.store.Unlock()

	clone := *comment
	r.store.Comments[comment.ID] = &clone
	r.store.CommentOrder = append(r.store.CommentOrder, comment.ID)
	return nil
}

func (r *commentRepository) FindByID(id string) (*model.Comment, error) {
	r.store.RLock()
	defer r.store.RUnlock()

	comment, ok := r.store.Comments[id]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	clone := *comment
	return &clone, nil
}

func (r *commentRepository) Update(comment *model.Comment) error {
	r.store.Lock()
	defer r.store.Unlock()

	if _, ok := r.store.Comments[comment.ID]; !ok {
		return pkgErrors.ErrRecordNotFound
	}
	clone := *comment
	r.store.Comments[comment.ID] = &clone
	return nil
}

func (r *commentRepository) Delete(id string) error {
	r.store.Lock()
	defer r.store.Unlock()

	if _, ok := r.store.Comments[id]; !ok {
		return pkgErrors.ErrRecordNotFound
	}
	delete(r.store.Comments, id)
	for i, cid := range r.store.CommentOrder {
		if cid == id {
			r.store.CommentOrder = append(r.store.CommentOrder[:i], r.store.CommentOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *commentRepository) ListByTask(taskID string) []*model.Comment {
	r.store.RLock()
	defer r.store.RUnlock()

	var comments []*model.Comment
	for _, id := range r.store.CommentOrder {
		if r.store.Comments[id].TaskID == taskID {
			clone := *r.store.Comments[id]
			comments = append(comments, &clone)
		}
	}
	return comments
}

func (r *commentRepository) List() []*model.Comment {
	r.store.RLock()
	defer r.store.RUnlock()

	comments := make([]*model.Comment, 0, len(r.store.CommentOrder))
	for _, id := range r.store.CommentOrder {
		clone := *r.store.Comments[id]
		comments = append(comments, &clone)
	}
	return comments
}
