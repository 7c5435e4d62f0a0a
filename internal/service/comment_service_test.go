package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issue-tracker/pkg/constants"
	pkgErrors "issue-tracker/pkg/errors"
)

func TestCommentCreate(t *testing.T) {
	env := newTestEnv()
	lead := env.addUser("Lead", "lead@test.com", constants.RoleTeamLead, "")
	team := env.addTeam("Backend", lead.ID)
	member := env.addUser("Member", "member@test.com", constants.RoleUser, team.ID)
	task := env.addTask("t", constants.TaskStatusTodo, member.ID, lead.ID, team.ID)

	comment, err := env.commentSvc.Create(asActor(member), task.ID, "  looks good  ")
	require.NoError(t, err)
	assert.Equal(t, "looks good", comment.Content)
	assert.Equal(t, member.Name, comment.UserName)
	assert.False(t, comment.IsEdited)
	assert.Nil(t, comment.UpdatedAt)

	// 空白内容拒绝
	_, err = env.commentSvc.Create(asActor(member), task.ID, "   ")
	requireAppError(t, err, pkgErrors.CodeValidationError, "Comment content is required")

	// 任务不存在
	_, err = env.commentSvc.Create(asActor(member), "task_missing", "hello")
	requireAppError(t, err, pkgErrors.CodeNotFound, "Task not found")
}

func TestCommentUpdateAuthorOnly(t *testing.T) {
	env := newTestEnv()
	lead := env.addUser("Lead", "lead@test.com", constants.RoleTeamLead, "")
	team := env.addTeam("Backend", lead.ID)
	member := env.addUser("Member", "member@test.com", constants.RoleUser, team.ID)
	task := env.addTask("t", constants.TaskStatusTodo, member.ID, lead.ID, team.ID)

	comment, err := env.commentSvc.Create(asActor(member), task.ID, "original")
	require.NoError(t, err)

	// 编辑仅限作者, 管理角色也不行
	_, err = env.commentSvc.Update(asActor(lead), comment.ID, "edited")
	requireAppError(t, err, pkgErrors.CodeForbidden, "You can only edit your own comments")

	resp, err := env.commentSvc.Update(asActor(member), comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", resp.Content)
	assert.True(t, resp.IsEdited)
	assert.NotNil(t, resp.UpdatedAt)
}

func TestCommentDelete(t *testing.T) {
	env := newTestEnv()
	lead := env.addUser("Lead", "lead@test.com", constants.RoleTeamLead, "")
	team := env.addTeam("Backend", lead.ID)
	member := env.addUser("Member", "member@test.com", constants.RoleUser, team.ID)
	other := env.addUser("Other", "other@test.com", constants.RoleUser, team.ID)
	task := env.addTask("t", constants.TaskStatusTodo, member.ID, lead.ID, team.ID)

	// 作者本人可删除
	c1, _ := env.commentSvc.Create(asActor(member), task.ID, "one")
	require.NoError(t, env.commentSvc.Delete(asActor(member), c1.ID))
	assert.Empty(t, env.commentRepo.ListByTask(task.ID))

	// TEAM_LEAD/ADMIN 可删除他人评论
	c2, _ := env.commentSvc.Create(asActor(member), task.ID, "two")
	require.NoError(t, env.commentSvc.Delete(asActor(lead), c2.ID))

	// 其他普通用户不可
	c3, _ := env.commentSvc.Create(asActor(member), task.ID, "three")
	err := env.commentSvc.Delete(asActor(other), c3.ID)
	requireAppError(t, err, pkgErrors.CodeForbidden, "You can only delete your own comments")

	// 已删除的评论再删报 NOT_FOUND
	require.NoError(t, env.commentSvc.Delete(asActor(member), c3.ID))
	err = env.commentSvc.Delete(asActor(member), c3.ID)
	requireAppError(t, err, pkgErrors.CodeNotFound, "Comment not found")
}
