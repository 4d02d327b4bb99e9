package service

import (
	"aio-webcare/internal/domain"
	"aio-webcare/internal/repository"
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BackupService struct {
	Sites   repository.WebsiteRepository
	Backups repository.BackupRepository
	WRM     *WRMClient
}

func NewBackupService(sites repository.WebsiteRepository, backups repository.BackupRepository, wrm *WRMClient) *BackupService {
	return &BackupService{Sites: sites, Backups: backups, WRM: wrm}
}

// Run 對單一網站執行備份，先開一筆 running 紀錄，結束再補狀態
func (s *BackupService) Run(ctx context.Context, siteID primitive.ObjectID, triggeredBy string) (primitive.ObjectID, error) {
	site, err := s.Sites.GetByID(ctx, siteID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	backupID, err := s.Backups.Create(ctx, domain.Backup{
		WebsiteID:   site.ID,
		TriggeredBy: triggeredBy,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}

	result, err := s.WRM.TriggerBackup(ctx, *site)
	if err != nil {
		logrus.Errorf("備份失敗 %s: %v", site.Name, err)
		s.Backups.Finish(ctx, backupID, domain.BackupFailed, 0, err.Error())
		return backupID, err
	}

	if !result.Success {
		s.Backups.Finish(ctx, backupID, domain.BackupFailed, 0, result.Message)
		return backupID, nil
	}

	logrus.Infof("備份完成 %s (%d bytes)", site.Name, result.SizeBytes)
	s.Backups.Finish(ctx, backupID, domain.BackupDone, result.SizeBytes, "")
	return backupID, nil
}

// RunScheduled 掃一輪有開自動備份的網站 (排程用)
func (s *BackupService) RunScheduled(ctx context.Context) {
	websites, err := s.Sites.ListAll(ctx)
	if err != nil {
		logrus.Errorf("無法獲取網站列表: %v", err)
		return
	}

	count := 0
	for _, site := range websites {
		if !site.AutoBackup {
			continue
		}
		if _, err := s.Run(ctx, site.ID, "schedule"); err == nil {
			count++
		}
	}
	logrus.Infof("排程備份完成，共 %d 個網站", count)
}
