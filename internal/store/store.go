package store

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"issue-tracker/internal/model"
	"issue-tracker/internal/pkg/config"
	"issue-tracker/internal/pkg/crypto"
	"issue-tracker/pkg/constants"
)

// Store 进程级内存存储
// 单实例, 进程生命周期, 不做持久化; 重启即丢失全部数据。
// Go 的 HTTP 服务是并发的, 因此由内嵌的 RWMutex 保证读写安全,
// repository 层的每个操作都在持锁状态下完成。
type Store struct {
	sync.RWMutex

	Users    map[string]*model.User
	Teams    map[string]*model.Team
	Tasks    map[string]*model.Task
	Comments map[string]*model.Comment
	History  []*model.TaskHistory

	// 插入顺序, 保证列表输出稳定
	UserOrder    []string
	TeamOrder    []string
	TaskOrder    []string
	CommentOrder []string
}

// New 创建空存储
func New() *Store {
	return &Store{
		Users:    make(map[string]*model.User),
		Teams:    make(map[string]*model.Team),
		Tasks:    make(map[string]*model.Task),
		Comments: make(map[string]*model.Comment),
	}
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID 生成标识符, 格式: <prefix>_<unix毫秒>_<9位base36随机串>
func NewID(prefix string) string {
	var sb strings.Builder
	for i := 0; i < 9; i++ {
		sb.WriteByte(idAlphabet[rand.Intn(len(idAlphabet))])
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), sb.String())
}

// Now 统一时间戳 (UTC)
func Now() time.Time {
	return time.Now().UTC()
}

// Seed 写入初始管理员账号
func (s *Store) Seed(cfg *config.SeedConfig) error {
	hash, err := crypto.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("哈希初始管理员密码失败: %w", err)
	}

	now := Now()
	admin := &model.User{
		ID:           NewID(constants.IDPrefixUser),
		Email:        cfg.AdminEmail,
		Name:         cfg.AdminName,
		PasswordHash: hash,
		Role:         constants.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.Lock()
	defer s.Unlock()
	s.Users[admin.ID] = admin
	s.UserOrder = append(s.UserOrder, admin.ID)

	return nil
}
