package repository

import (
	"issue-tracker/internal/model"
	"issue-tracker/internal/store"
)

// HistoryRepository 任务变更记录访问, 仅追加
type HistoryRepository interface {
	Append(records ...*model.TaskHistory) error
	ListByTask(taskID string) []*model.TaskHistory
	List() []*model.TaskHistory
}

type historyRepository struct {
	store *store.Store
}

func NewHistoryRepository(s *store.Store) HistoryRepository {
	return &historyRepository{store: s}
}

func (r *historyRepository) Append(records ...*model.TaskHistory) error {
	r.store.Lock()
	defer r.store.Unlock()

	for _, record := range records {
		clone := *record
		r.store.History = append(r.store.History, &clone)
	}
	return nil
}

func (r *historyRepository) ListByTask(taskID string) []*model.TaskHistory {
	r.store.RLock()
	defer r.store.RUnlock()

	var records []*model.TaskHistory
	for _, h := range r.store.History {
		if h.TaskID == taskID {
			clone := *h
			records = append(records, &clone)
		}
	}
	return records
}

func (r *historyRepository) List() []*model.TaskHistory {
	r.store.RLock()
	defer r.store.RUnlock()

	records := make([]*model.TaskHistory, 0, len(r.store.History))
	for _, h := range r.store.History {
		clone := *h
		records = append(records, &clone)
	}
	return records
}
