package service

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"issue-tracker/internal/dto"
	"issue-tracker/internal/model"
	"issue-tracker/internal/repository"
	"issue-tracker/internal/store"
	"issue-tracker/pkg/constants"
)

const recentActivityLimit = 5

type DashboardService interface {
	Stats(actor *dto.AuthUser) (*dto.DashboardStats, error)
}

type dashboardService struct {
	taskRepo    repository.TaskRepository
	commentRepo repository.CommentRepository
	historyRepo repository.HistoryRepository
}

func NewDashboardService(taskRepo repository.TaskRepository, commentRepo repository.CommentRepository, historyRepo repository.HistoryRepository) DashboardService {
	return &dashboardService{
		taskRepo:    taskRepo,
		commentRepo: commentRepo,
		historyRepo: historyRepo,
	}
}

func (s *dashboardService) Stats(actor *dto.AuthUser) (*dto.DashboardStats, error) {
	tasks := s.taskRepo.List()
	now := store.Now()
	weekAgo := now.AddDate(0, 0, -7)

	userTasks := lo.Filter(tasks, func(t *model.Task, _ int) bool { return t.AssigneeID == actor.ID })

	userStats := dto.UserStats{
		AssignedTasks: len(userTasks),
		CompletedThisWeek: lo.CountBy(userTasks, func(t *model.Task) bool {
			return t.Status == constants.TaskStatusDone && !t.UpdatedAt.Before(weekAgo)
		}),
		InProgress: lo.CountBy(userTasks, func(t *model.Task) bool {
			return t.Status == constants.TaskStatusInProgress
		}),
		Overdue: lo.CountBy(userTasks, func(t *model.Task) bool {
			return t.DueDate != nil && t.Status != constants.TaskStatusDone && t.DueDate.Before(now)
		}),
	}

	var teamTasks []*model.Task
	if actor.TeamID != "" {
		teamTasks = lo.Filter(tasks, func(t *model.Task, _ int) bool { return t.TeamID == actor.TeamID })
	}
	countStatus := func(status string) int {
		return lo.CountBy(teamTasks, func(t *model.Task) bool { return t.Status == status })
	}
	teamStats := dto.TeamStats{
		TotalTasks: len(teamTasks),
		Todo:       countStatus(constants.TaskStatusTodo),
		InProgress: countStatus(constants.TaskStatusInProgress),
		InReview:   countStatus(constants.TaskStatusInReview),
		Done:       countStatus(constants.TaskStatusDone),
	}

	activity := s.recentActivity(actor, tasks, userTasks)

	return &dto.DashboardStats{
		UserStats:      userStats,
		TeamStats:      teamStats,
		RecentActivity: activity,
	}, nil
}

// recentActivity 汇总最近动态: 最新的任务指派, 他人在我任务下的评论,
// 以及我任务的状态变化; 合并后按时间倒序取前几条
func (s *dashboardService) recentActivity(actor *dto.AuthUser, tasks, userTasks []*model.Task) []dto.RecentActivity {
	taskByID := lo.KeyBy(tasks, func(t *model.Task) string { return t.ID })
	userTaskIDs := lo.SliceToMap(userTasks, func(t *model.Task) (string, struct{}) { return t.ID, struct{}{} })

	activity := make([]dto.RecentActivity, 0, recentActivityLimit*2)

	assignments := append([]*model.Task(nil), userTasks...)
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].CreatedAt.After(assignments[j].CreatedAt) })
	for _, t := range lo.Subset(assignments, 0, 3) {
		activity = append(activity, dto.RecentActivity{
			Type:      dto.ActivityTaskAssigned,
			Message:   fmt.Sprintf("You were assigned to '%s'", t.Title),
			Timestamp: t.CreatedAt,
		})
	}

	comments := lo.Filter(s.commentRepo.List(), func(c *model.Comment, _ int) bool {
		_, mine := userTaskIDs[c.TaskID]
		return mine && c.UserID != actor.ID
	})
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.After(comments[j].CreatedAt) })
	for _, c := range lo.Subset(comments, 0, 3) {
		activity = append(activity, dto.RecentActivity{
			Type:      dto.ActivityCommentAdded,
			Message:   fmt.Sprintf("New comment on '%s'", taskTitle(taskByID, c.TaskID)),
			Timestamp: c.CreatedAt,
		})
	}

	statusChanges := lo.Filter(s.historyRepo.List(), func(h *model.TaskHistory, _ int) bool {
		_, mine := userTaskIDs[h.TaskID]
		return mine && h.FieldChanged == constants.FieldStatus
	})
	sort.Slice(statusChanges, func(i, j int) bool { return statusChanges[i].CreatedAt.After(statusChanges[j].CreatedAt) })
	for _, h := range lo.Subset(statusChanges, 0, 2) {
		newValue := ""
		if h.NewValue != nil {
			newValue = *h.NewValue
		}
		activity = append(activity, dto.RecentActivity{
			Type:      dto.ActivityStatusChanged,
			Message:   fmt.Sprintf("Task '%s' status changed to %s", taskTitle(taskByID, h.TaskID), newValue),
			Timestamp: h.CreatedAt,
		})
	}

	sort.Slice(activity, func(i, j int) bool { return activity[i].Timestamp.After(activity[j].Timestamp) })
	if len(activity) > recentActivityLimit {
		activity = activity[:recentActivityLimit]
	}
	return activity
}

func taskTitle(taskByID map[string]*model.Task, id string) string {
	if t, ok := taskByID[id]; ok {
		return t.Title
	}
	return "Unknown task"
}
