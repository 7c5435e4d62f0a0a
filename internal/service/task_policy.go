package service

import (
	"github.com/samber/lo"

	"issue-tracker/internal/dto"
	"issue-tracker/pkg/constants"
)

// 任务状态机与字段权限的声明式规则表。
// 状态转换按调用者类别区分: 普通受派人只能推进自己的任务到评审为止,
// TEAM_LEAD/ADMIN 额外拥有评审通过/打回以及重新打开已完成任务的权限。

// assigneeTransitions 受派人 (非特权角色) 允许的状态转换
var assigneeTransitions = map[string][]string{
	constants.TaskStatusTodo:       {constants.TaskStatusInProgress},
	constants.TaskStatusInProgress: {constants.TaskStatusInReview, constants.TaskStatusTodo},
}

// privilegedTransitions TEAM_LEAD/ADMIN 允许的状态转换
var privilegedTransitions = map[string][]string{
	constants.TaskStatusTodo:       {constants.TaskStatusInProgress},
	constants.TaskStatusInProgress: {constants.TaskStatusInReview, constants.TaskStatusTodo},
	constants.TaskStatusInReview:   {constants.TaskStatusDone, constants.TaskStatusInProgress},
	constants.TaskStatusDone:       {constants.TaskStatusInProgress},
}

// transitionAllowed 判断从 from 到 to 的转换对该类调用者是否合法
func transitionAllowed(privileged bool, from, to string) bool {
	table := assigneeTransitions
	if privileged {
		table = privilegedTransitions
	}
	return lo.Contains(table[from], to)
}

// privilegedOnlyFields 只有 TEAM_LEAD/ADMIN 可修改的任务字段;
// 受派人即便对自己的任务也不能改这些
var privilegedOnlyFields = map[string]string{
	constants.FieldPriority: "Only admin or team lead can change task priority",
	constants.FieldAssignee: "Only admin or team lead can change task assignee",
	constants.FieldDueDate:  "Only admin or team lead can change task due date",
}

// isPrivileged 判断角色是否属于特权类 (TEAM_LEAD/ADMIN)
func isPrivileged(actor *dto.AuthUser) bool {
	return actor.Role == constants.RoleAdmin || actor.Role == constants.RoleTeamLead
}
