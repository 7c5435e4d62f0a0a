package repository

import (
	"strings"

	"issue-tracker/internal/model"
	"issue-tracker/internal/store"
	pkgErrors "issue-tracker/pkg/errors"
)

// UserRepository 用户数据访问
// 读操作返回副本, 写操作整体替换; service 层不会拿到存储内部的指针
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	List() []*model.User
}

type userRepository struct {
	store *store.Store
}

func NewUserRepository(s *store.Store) UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) Create(user *model.User) error {
	r.store.Lock()
	defer r.store.Unlock()

	clone := *user
	r.store.Users[user.ID] = &clone
	r.store.UserOrder = append(r.store.UserOrder, user.ID)
	return nil
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	r.store.RLock()
	defer r.store.RUnlock()

	user, ok := r.store.Users[id]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	r.store.RLock()
	defer r.store.RUnlock()

	for _, id := range r.store.UserOrder {
		if strings.EqualFold(r.store.Users[id].Email, email) {
			clone := *r.store.Users[id]
			return &clone, nil
		}
	}
	return nil, pkgErrors.ErrRecordNotFound
}

func (r *userRepository) Update(user *model.User) error {
	r.store.Lock()
	defer r.store.Unlock()

	if _, ok := r.store.Users[user.ID]; !ok {
		return pkgErrors.ErrRecordNotFound
	}
	clone := *user
	r.store.Users[user.ID] = &clone
	return nil
}

func (r *userRepository) List() []*model.User {
	r.store.RLock()
	defer r.store.RUnlock()

	users := make([]*model.User, 0, len(r.store.UserOrder))
	for _, id := range r.store.UserOrder {
		clone := *r.store.Users[id]
		users = append(users, &clone)
	}
	return users
}
