package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issue-tracker/internal/pkg/config"
	"issue-tracker/internal/pkg/logger"
	"issue-tracker/internal/store"
)

// envelope 统一响应信封
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Message    string `json:"message"`
	Pagination *struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

type testServer struct {
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Auth: config.AuthConfig{
			JWT: config.JWTConfig{
				Secret:             "test-secret",
				AccessTokenExpire:  3600,
				RefreshTokenExpire: 7200,
			},
		},
		Seed: config.SeedConfig{
			AdminEmail:    "admin@company.com",
			AdminName:     "Admin User",
			AdminPassword: "admin123",
		},
	}
	config.GlobalConfig = cfg
	require.NoError(t, logger.Init(&config.LogConfig{Level: "error", Format: "console", Output: "stdout"}))

	st := store.New()
	require.NoError(t, st.Seed(&cfg.Seed))

	return &testServer{engine: Setup(cfg, st, logger.Log)}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, &env
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, "login %s: %s", email, w.Body.String())
	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func unmarshalData(t *testing.T, env *envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func TestHealthAndWelcome(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, env = s.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	// 未匹配路由返回统一的 404 信封
	w, env = s.do(t, http.MethodGet, "/api/nonexistent", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Equal(t, "Endpoint not found", env.Error.Message)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	w, env = s.do(t, http.MethodGet, "/api/users", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, env.Error)

	// 错误密码
	w, env = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "admin@company.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}

// 完整业务流程: 建负责人 → 建团队 → 建成员 → 建任务 → 状态流转 → 变更记录
func TestTaskWorkflow(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, "admin@company.com", "admin123")

	// 管理员创建负责人
	w, env := s.do(t, http.MethodPost, "/api/users", adminToken, gin.H{
		"email":    "lead@company.com",
		"name":     "Team Lead",
		"password": "lead1234",
		"role":     "TEAM_LEAD",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var lead struct {
		ID string `json:"id"`
	}
	unmarshalData(t, env, &lead)

	// 创建团队, 负责人自动归入, member_count = 1
	w, env = s.do(t, http.MethodPost, "/api/teams", adminToken, gin.H{
		"name":         "Backend",
		"team_lead_id": lead.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var team struct {
		ID          string `json:"id"`
		MemberCount int    `json:"member_count"`
	}
	unmarshalData(t, env, &team)
	assert.Equal(t, 1, team.MemberCount)

	// 加入一名成员, member_count = 2
	w, env = s.do(t, http.MethodPost, "/api/users", adminToken, gin.H{
		"email":    "dev@company.com",
		"name":     "Developer",
		"password": "dev12345",
		"role":     "USER",
		"team_id":  team.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var dev struct {
		ID string `json:"id"`
	}
	unmarshalData(t, env, &dev)

	w, env = s.do(t, http.MethodGet, "/api/teams", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var teams []struct {
		ID          string `json:"id"`
		MemberCount int    `json:"member_count"`
	}
	unmarshalData(t, env, &teams)
	require.Len(t, teams, 1)
	assert.Equal(t, 2, teams[0].MemberCount)

	leadToken := s.login(t, "lead@company.com", "lead1234")
	devToken := s.login(t, "dev@company.com", "dev12345")

	// 普通用户不能建任务
	w, env = s.do(t, http.MethodPost, "/api/tasks", devToken, gin.H{
		"title": "x", "description": "y", "priority": "LOW", "team_id": team.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	// 负责人建任务, 初始状态必为 TODO
	w, env = s.do(t, http.MethodPost, "/api/tasks", leadToken, gin.H{
		"title":       "Fix login bug",
		"description": "Session expires too early",
		"priority":    "HIGH",
		"assignee_id": dev.ID,
		"team_id":     team.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var task struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	unmarshalData(t, env, &task)
	assert.Equal(t, "TODO", task.Status)

	taskURL := fmt.Sprintf("/api/tasks/%s", task.ID)

	// 受派人: TODO → IN_PROGRESS
	w, env = s.do(t, http.MethodPut, taskURL, devToken, gin.H{"status": "IN_PROGRESS"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 受派人不能直接 DONE
	w, env = s.do(t, http.MethodPut, taskURL, devToken, gin.H{"status": "DONE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)
	var details struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	assert.Equal(t, "IN_PROGRESS", details.From)
	assert.Equal(t, "DONE", details.To)

	// 受派人提交评审, 负责人通过
	w, _ = s.do(t, http.MethodPut, taskURL, devToken, gin.H{"status": "IN_REVIEW"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodPut, taskURL, leadToken, gin.H{"status": "DONE"})
	require.Equal(t, http.StatusOK, w.Code)

	// 详情携带完整的变更记录
	w, env = s.do(t, http.MethodGet, taskURL, devToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Status  string `json:"status"`
		History []struct {
			FieldChanged string  `json:"field_changed"`
			OldValue     *string `json:"old_value"`
			NewValue     *string `json:"new_value"`
		} `json:"history"`
	}
	unmarshalData(t, env, &detail)
	assert.Equal(t, "DONE", detail.Status)
	require.Len(t, detail.History, 3)
	require.NotNil(t, detail.History[0].OldValue)
	assert.Equal(t, "TODO", *detail.History[0].OldValue)
	require.NotNil(t, detail.History[2].NewValue)
	assert.Equal(t, "DONE", *detail.History[2].NewValue)
}

func TestUserEndpointsRBAC(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, "admin@company.com", "admin123")

	w, env := s.do(t, http.MethodPost, "/api/users", adminToken, gin.H{
		"email":    "user@company.com",
		"name":     "Plain User",
		"password": "user1234",
		"role":     "USER",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	unmarshalData(t, env, &created)

	userToken := s.login(t, "user@company.com", "user1234")

	// 普通用户不能建用户
	w, env = s.do(t, http.MethodPost, "/api/users", userToken, gin.H{
		"email": "x@company.com", "name": "X", "password": "x", "role": "USER",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	// 重复邮箱
	w, env = s.do(t, http.MethodPost, "/api/users", adminToken, gin.H{
		"email":    "user@company.com",
		"name":     "Dup",
		"password": "whatever1",
		"role":     "USER",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", env.Error.Code)

	// 请求体校验失败走 VALIDATION_ERROR
	w, env = s.do(t, http.MethodPost, "/api/users", adminToken, gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	// 列表携带分页信息
	w, env = s.do(t, http.MethodGet, "/api/users?page=1&limit=1", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.Limit)
	assert.Equal(t, 2, env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.TotalPages)

	// /api/auth/me 返回存储中的最新信息
	w, env = s.do(t, http.MethodGet, "/api/auth/me", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Email string `json:"email"`
	}
	unmarshalData(t, env, &me)
	assert.Equal(t, "user@company.com", me.Email)
}

func TestCommentEndpoints(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, "admin@company.com", "admin123")

	// 准备: 负责人 + 团队 + 任务
	_, env := s.do(t, http.MethodPost, "/api/users", adminToken, gin.H{
		"email": "lead@company.com", "name": "Lead", "password": "lead1234", "role": "TEAM_LEAD",
	})
	var lead struct {
		ID string `json:"id"`
	}
	unmarshalData(t, env, &lead)

	_, env = s.do(t, http.MethodPost, "/api/teams", adminToken, gin.H{
		"name": "Backend", "team_lead_id": lead.ID,
	})
	var team struct {
		ID string `json:"id"`
	}
	unmarshalData(t, env, &team)

	leadToken := s.login(t, "lead@company.com", "lead1234")
	_, env = s.do(t, http.MethodPost, "/api/tasks", leadToken, gin.H{
		"title": "t", "description": "d", "priority": "LOW", "team_id": team.ID,
	})
	var task struct {
		ID string `json:"id"`
	}
	unmarshalData(t, env, &task)

	// 发表评论
	w, env := s.do(t, http.MethodPost, fmt.Sprintf("/api/tasks/%s/comments", task.ID), leadToken, gin.H{"content": "first"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var comment struct {
		ID string `json:"id"`
	}
	unmarshalData(t, env, &comment)

	// 非作者 (即使是管理员) 不能编辑
	w, env = s.do(t, http.MethodPut, fmt.Sprintf("/api/comments/%s", comment.ID), adminToken, gin.H{"content": "hack"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	// 作者编辑, is_edited 置位
	w, env = s.do(t, http.MethodPut, fmt.Sprintf("/api/comments/%s", comment.ID), leadToken, gin.H{"content": "edited"})
	require.Equal(t, http.StatusOK, w.Code)
	var edited struct {
		IsEdited bool `json:"is_edited"`
	}
	unmarshalData(t, env, &edited)
	assert.True(t, edited.IsEdited)

	// 管理员可以删除他人评论
	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/comments/%s", comment.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 已删除评论再访问报 404
	w, env = s.do(t, http.MethodPut, fmt.Sprintf("/api/comments/%s", comment.ID), leadToken, gin.H{"content": "again"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, "admin@company.com", "admin123")

	w, env := s.do(t, http.MethodGet, "/api/dashboard/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		UserStats struct {
			AssignedTasks int `json:"assigned_tasks"`
		} `json:"user_stats"`
		TeamStats struct {
			TotalTasks int `json:"total_tasks"`
		} `json:"team_stats"`
		RecentActivity []struct {
			Type string `json:"type"`
		} `json:"recent_activity"`
	}
	unmarshalData(t, env, &stats)
	assert.Zero(t, stats.UserStats.AssignedTasks)
	assert.NotNil(t, stats.RecentActivity)
}
