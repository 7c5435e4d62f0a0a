package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"issue-tracker/internal/dto"
	"issue-tracker/internal/model"
	"issue-tracker/internal/repository"
	"issue-tracker/internal/store"
	"issue-tracker/pkg/constants"
	pkgErrors "issue-tracker/pkg/errors"
)

type TaskService interface {
	List(query *dto.TaskListQuery) ([]*model.Task, error)
	Create(actor *dto.AuthUser, req *dto.TaskCreateRequest) (*model.Task, error)
	Get(id string) (*dto.TaskDetailResponse, error)
	Update(actor *dto.AuthUser, id string, req *dto.TaskUpdateRequest) (*dto.TaskUpdateResponse, error)
}

type taskService struct {
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	teamRepo    repository.TeamRepository
	commentRepo repository.CommentRepository
	historyRepo repository.HistoryRepository
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	teamRepo repository.TeamRepository,
	commentRepo repository.CommentRepository,
	historyRepo repository.HistoryRepository,
) TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		commentRepo: commentRepo,
		historyRepo: historyRepo,
	}
}

func (s *taskService) List(query *dto.TaskListQuery) ([]*model.Task, error) {
	tasks := s.taskRepo.List()

	if query.TeamID != "" {
		tasks = lo.Filter(tasks, func(t *model.Task, _ int) bool { return t.TeamID == query.TeamID })
	}
	if query.AssigneeID != "" {
		tasks = lo.Filter(tasks, func(t *model.Task, _ int) bool { return t.AssigneeID == query.AssigneeID })
	}
	if query.Status != "" {
		tasks = lo.Filter(tasks, func(t *model.Task, _ int) bool { return t.Status == query.Status })
	}
	if query.Priority != "" {
		tasks = lo.Filter(tasks, func(t *model.Task, _ int) bool { return t.Priority == query.Priority })
	}
	if query.Search != "" {
		term := strings.ToLower(query.Search)
		tasks = lo.Filter(tasks, func(t *model.Task, _ int) bool {
			return strings.Contains(strings.ToLower(t.Title), term) ||
				strings.Contains(strings.ToLower(t.Description), term)
		})
	}

	return tasks, nil
}

func (s *taskService) Create(actor *dto.AuthUser, req *dto.TaskCreateRequest) (*model.Task, error) {
	team, err := s.teamRepo.FindByID(req.TeamID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrValidation.WithMessage("Invalid team_id")
		}
		return nil, err
	}

	var assignee *model.User
	if req.AssigneeID != "" {
		assignee, err = s.userRepo.FindByID(req.AssigneeID)
		if err != nil || !assignee.IsActive {
			return nil, pkgErrors.ErrValidation.WithMessage("Invalid assignee_id")
		}
	}

	reporterName := actor.Name
	if reporter, err := s.userRepo.FindByID(actor.ID); err == nil {
		reporterName = reporter.Name
	}

	now := store.Now()
	task := &model.Task{
		ID:             store.NewID(constants.IDPrefixTask),
		Title:          req.Title,
		Description:    req.Description,
		Status:         constants.TaskStatusTodo, // 所有任务从 TODO 开始
		Priority:       req.Priority,
		ReporterID:     actor.ID,
		ReporterName:   reporterName,
		TeamID:         team.ID,
		TeamName:       team.Name,
		EstimatedHours: req.EstimatedHours,
		DueDate:        req.DueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if assignee != nil {
		task.AssigneeID = assignee.ID
		task.AssigneeName = assignee.Name
		task.AssigneeEmail = assignee.Email
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *taskService) Get(id string) (*dto.TaskDetailResponse, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrNotFound.WithMessage("Task not found")
		}
		return nil, err
	}

	comments := s.commentRepo.ListByTask(id)
	if comments == nil {
		comments = []*model.Comment{}
	}
	history := s.historyRepo.ListByTask(id)
	if history == nil {
		history = []*model.TaskHistory{}
	}

	return &dto.TaskDetailResponse{
		Task:     *task,
		Comments: comments,
		History:  history,
	}, nil
}

// fieldChange 一次更新调用中单个字段的计划变更
// 校验阶段只收集变更, 全部通过后才统一落盘并写变更记录
type fieldChange struct {
	field    string
	oldValue *string
	newValue *string
	apply    func(t *model.Task)
}

// Update 任务字段更新, 状态转换按规则表校验
// 字段按声明顺序校验: status, priority, assignee, estimated_hours,
// actual_hours, due_date; 任一校验失败则整个调用无副作用
func (s *taskService) Update(actor *dto.AuthUser, id string, req *dto.TaskUpdateRequest) (*dto.TaskUpdateResponse, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrNotFound.WithMessage("Task not found")
		}
		return nil, err
	}

	privileged := isPrivileged(actor)
	isAssignee := task.AssigneeID != "" && task.AssigneeID == actor.ID

	if !isAssignee && !privileged {
		return nil, pkgErrors.ErrForbidden.WithMessage("You can only update tasks assigned to you")
	}

	var changes []*fieldChange

	// status: 与当前值相同不是转换, 不产生变更记录
	if req.Status != nil && *req.Status != task.Status {
		from, to := task.Status, *req.Status
		if !transitionAllowed(privileged, from, to) {
			return nil, pkgErrors.InvalidTransition(from, to)
		}
		changes = append(changes, &fieldChange{
			field:    constants.FieldStatus,
			oldValue: strPtr(from),
			newValue: strPtr(to),
			apply:    func(t *model.Task) { t.Status = to },
		})
	}

	if req.Priority != nil && *req.Priority != task.Priority {
		if !privileged {
			return nil, pkgErrors.ErrForbidden.WithMessage(privilegedOnlyFields[constants.FieldPriority])
		}
		newPriority := *req.Priority
		changes = append(changes, &fieldChange{
			field:    constants.FieldPriority,
			oldValue: strPtr(task.Priority),
			newValue: strPtr(newPriority),
			apply:    func(t *model.Task) { t.Priority = newPriority },
		})
	}

	if req.AssigneeID != nil && *req.AssigneeID != task.AssigneeID {
		if !privileged {
			return nil, pkgErrors.ErrForbidden.WithMessage(privilegedOnlyFields[constants.FieldAssignee])
		}
		var assignee *model.User
		if *req.AssigneeID != "" {
			assignee, err = s.userRepo.FindByID(*req.AssigneeID)
			if err != nil || !assignee.IsActive {
				return nil, pkgErrors.ErrValidation.WithMessage("Invalid assignee_id")
			}
		}
		change := &fieldChange{
			field:    constants.FieldAssignee,
			oldValue: optStr(task.AssigneeName),
		}
		if assignee != nil {
			change.newValue = strPtr(assignee.Name)
			change.apply = func(t *model.Task) {
				t.AssigneeID = assignee.ID
				t.AssigneeName = assignee.Name
				t.AssigneeEmail = assignee.Email
			}
		} else {
			change.apply = func(t *model.Task) {
				t.AssigneeID = ""
				t.AssigneeName = ""
				t.AssigneeEmail = ""
			}
		}
		changes = append(changes, change)
	}

	// 工时字段任何有权限的调用者都可修改, 无额外校验
	if req.EstimatedHours != nil && !floatEqual(req.EstimatedHours, task.EstimatedHours) {
		newHours := *req.EstimatedHours
		changes = append(changes, &fieldChange{
			field:    constants.FieldEstimatedHours,
			oldValue: floatStr(task.EstimatedHours),
			newValue: floatStr(&newHours),
			apply:    func(t *model.Task) { t.EstimatedHours = &newHours },
		})
	}

	if req.ActualHours != nil && !floatEqual(req.ActualHours, task.ActualHours) {
		newHours := *req.ActualHours
		changes = append(changes, &fieldChange{
			field:    constants.FieldActualHours,
			oldValue: floatStr(task.ActualHours),
			newValue: floatStr(&newHours),
			apply:    func(t *model.Task) { t.ActualHours = &newHours },
		})
	}

	if req.DueDate != nil && !timeEqual(req.DueDate, task.DueDate) {
		if !privileged {
			return nil, pkgErrors.ErrForbidden.WithMessage(privilegedOnlyFields[constants.FieldDueDate])
		}
		newDue := *req.DueDate
		changes = append(changes, &fieldChange{
			field:    constants.FieldDueDate,
			oldValue: timeStr(task.DueDate),
			newValue: timeStr(&newDue),
			apply:    func(t *model.Task) { t.DueDate = &newDue },
		})
	}

	// 校验全部通过后才开始落盘; updated_at 无论几个字段变化只刷新一次
	if len(changes) > 0 {
		for _, change := range changes {
			change.apply(task)
		}
		task.UpdatedAt = store.Now()

		if err := s.taskRepo.Update(task); err != nil {
			return nil, err
		}

		actorName := actor.Name
		if u, err := s.userRepo.FindByID(actor.ID); err == nil {
			actorName = u.Name
		}

		records := lo.Map(changes, func(change *fieldChange, _ int) *model.TaskHistory {
			return &model.TaskHistory{
				ID:           store.NewID(constants.IDPrefixHistory),
				TaskID:       task.ID,
				UserID:       actor.ID,
				UserName:     actorName,
				FieldChanged: change.field,
				OldValue:     change.oldValue,
				NewValue:     change.newValue,
				CreatedAt:    task.UpdatedAt,
			}
		})
		if err := s.historyRepo.Append(records...); err != nil {
			return nil, err
		}
	}

	return &dto.TaskUpdateResponse{
		ID:             task.ID,
		Title:          task.Title,
		Status:         task.Status,
		Priority:       task.Priority,
		AssigneeID:     task.AssigneeID,
		AssigneeName:   task.AssigneeName,
		EstimatedHours: task.EstimatedHours,
		ActualHours:    task.ActualHours,
		DueDate:        task.DueDate,
		UpdatedAt:      task.UpdatedAt,
	}, nil
}

func strPtr(s string) *string {
	return &s
}

// optStr 空串视为缺失 (如任务尚无受派人)
func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func floatStr(f *float64) *string {
	if f == nil {
		return nil
	}
	s := strconv.FormatFloat(*f, 'f', -1, 64)
	return &s
}

func timeStr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func floatEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
