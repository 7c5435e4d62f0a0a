package repository

import (
	"issue-tracker/internal/model"
	"issue-tracker/internal/store"
	pkgErrors "issue-tracker/pkg/errors"
)

// TaskRepository 任务数据访问
type TaskRepository interface {
	Create(task *model.Task) error
	FindByID(id string) (*model.Task, error)
	Update(task *model.Task) error
	List() []*model.Task
}

type taskRepository struct {
	store *store.Store
}

func NewTaskRepository(s *store.Store) TaskRepository {
	return &taskRepository{store: s}
}

func (r *taskRepository) Create(task *model.Task) error {
	r.store.Lock()
	defer r.store.Unlock()

	clone := *task
	r.store.Tasks[task.ID] = &clone
	r.store.TaskOrder = append(r.store.TaskOrder, task.ID)
	return nil
}

func (r *taskRepository) FindByID(id string) (*model.Task, error) {
	r.store.RLock()
	defer r.store.RUnlock()

	task, ok := r.store.Tasks[id]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	clone := *task
	return &clone, nil
}

func (r *taskRepository) Update(task *model.Task) error {
	r.store.Lock()
	defer r.store.Unlock()

	if _, ok := r.store.Tasks[task.ID]; !ok {
		return pkgErrors.ErrRecordNotFound
	}
	clone := *task
	r.store.Tasks[task.ID] = &clone
	return nil
}

func (r *taskRepository) List() []*model.Task {
	r.store.RLock()
	defer r.store.RUnlock()

	tasks := make([]*model.Task, 0, len(r.store.TaskOrder))
	for _, id := range r.store.TaskOrder {
		clone := *r.store.Tasks[id]
		tasks = append(tasks, &clone)
	}
	return tasks
}
