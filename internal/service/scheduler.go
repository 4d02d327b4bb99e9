package service

import (
	"aio-webcare/internal/conf"
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type SchedulerService struct {
	Cron     *cron.Cron
	Refresh  *RefreshService
	Backup   *BackupService
	interval time.Duration
}

func NewSchedulerService(refresh *RefreshService, backup *BackupService, cfg conf.RefreshConfig) *SchedulerService {
	// 使用標準 parser (支援 5 個欄位: 分 時 日 月 週)
	c := cron.New()
	interval := cfg.Interval
	if interval < time.Minute {
		interval = 5 * time.Minute
	}
	return &SchedulerService{
		Cron:     c,
		Refresh:  refresh,
		Backup:   backup,
		interval: interval,
	}
}

// Start 啟動排程
func (s *SchedulerService) Start() {
	// 1. 定期輪詢所有網站的更新狀態 (儀表板數據來源)
	spec := fmt.Sprintf("@every %s", s.interval)
	_, err := s.Cron.AddFunc(spec, func() {
		logrus.Info("[Cron] 開始定期刷新網站狀態...")
		// 這裡需要 Context，我們建立一個背景的
		if err := s.Refresh.RefreshAll(context.Background()); err != nil {
			logrus.Errorf("[Cron] 刷新失敗: %v", err)
		}
	})
	if err != nil {
		logrus.Error(err)
	}

	// 2. 每天凌晨 03:00 自動備份 (有開 auto_backup 的網站)
	_, err = s.Cron.AddFunc("0 3 * * *", func() {
		logrus.Info("[Cron] 開始自動備份...")
		s.Backup.RunScheduled(context.Background())
	})
	if err != nil {
		logrus.Error(err)
	}

	s.Cron.Start()
	logrus.Infof("自動排程服務已啟動 (每 %s 刷新, 每日 03:00 備份)", s.interval)
}

// Stop 停止排程
func (s *SchedulerService) Stop() {
	s.Cron.Stop()
}
