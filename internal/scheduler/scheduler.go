package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"issue-tracker/internal/pkg/config"
	"issue-tracker/internal/pkg/logger"
	"issue-tracker/internal/service"
)

// Scheduler 调度器
type Scheduler struct {
	cron           *cron.Cron
	logger         *zap.Logger
	consistencySvc service.ConsistencyService
	cronSchedules  map[string]cron.EntryID // 存储任务ID，便于管理
}

// NewScheduler 创建调度器
func NewScheduler(zapLogger *zap.Logger, consistencySvc service.ConsistencyService) *Scheduler {
	// 创建 cron 实例（带秒级支持）, cron 自身的日志走统一输出
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.PrintfLogger(logger.GetWriter())))

	return &Scheduler{
		cron:           c,
		logger:         zapLogger,
		consistencySvc: consistencySvc,
		cronSchedules:  make(map[string]cron.EntryID),
	}
}

// Start 启动调度器
func (s *Scheduler) Start(cfg *config.Config) error {
	log := s.logger.Sugar()

	log.Info("启动定时任务调度器...")

	// cron 表达式格式: 秒 分 时 日 月 周
	cronExpr := cfg.Scheduler.ReconcileCron
	if cronExpr == "" {
		cronExpr = "0 */5 * * * *" // 默认: 每5分钟
		log.Warn("未配置scheduler.reconcile_cron，使用默认值", zap.String("cron", cronExpr))
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		log.Info("执行定时任务: 数据一致性校准")
		if err := s.consistencySvc.ReconcileAll(); err != nil {
			log.Errorf("一致性校准任务执行失败: %v", err)
		}
	})

	if err != nil {
		log.Errorf("注册一致性校准任务失败: cron=%v err=%v", cronExpr, err)
		return err
	}

	s.cronSchedules["reconcile_all"] = entryID
	log.Infof("一致性校准任务已注册: %s entry_id=%d", cronExpr, entryID)

	// 启动 cron
	s.cron.Start()
	log.Info("定时任务调度器启动成功")

	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.logger.Info("正在停止定时任务调度器...")

	// 停止 cron（等待正在执行的任务完成）
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("定时任务调度器已停止")
}

// TriggerReconcile 手动触发一致性校准（用于测试或手动触发）
func (s *Scheduler) TriggerReconcile() error {
	s.logger.Info("手动触发一致性校准")
	return s.consistencySvc.ReconcileAll()
}
