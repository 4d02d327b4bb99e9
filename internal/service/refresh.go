package service

import (
	"aio-webcare/internal/conf"
	"aio-webcare/internal/domain"
	"aio-webcare/internal/repository"
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const statsCacheKey = "dashboard_stats"

// RefreshService 負責整批刷新：併發抓每個網站的狀態，全部結束後統一彙整
type RefreshService struct {
	Repo     repository.WebsiteRepository
	WRM      *WRMClient
	Notifier *NotifierService
	Cache    *TTLCache

	concurrency int
	cacheTTL    time.Duration
}

func NewRefreshService(repo repository.WebsiteRepository, wrm *WRMClient, notifier *NotifierService, cache *TTLCache, cfg conf.RefreshConfig, wrmCfg conf.WRMConfig) *RefreshService {
	concurrency := wrmCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &RefreshService{
		Repo:        repo,
		WRM:         wrm,
		Notifier:    notifier,
		Cache:       cache,
		concurrency: concurrency,
		cacheTTL:    ttl,
	}
}

// siteResult 單一網站的抓取結果 (錯誤也要記下來，不能讓它炸掉整批)
type siteResult struct {
	site    domain.Website
	updates domain.UpdateStatus
	err     error
}

// RefreshAll 啟動併發刷新
// 一個網站抓失敗不影響其他網站；全部結束 (成功或失敗) 才做彙整
func (s *RefreshService) RefreshAll(ctx context.Context) error {
	websites, err := s.Repo.ListAll(ctx)
	if err != nil {
		return err
	}

	logrus.Infof("開始刷新 %d 個網站...", len(websites))

	// WaitGroup + Channel 控制併發 (Worker Pool 模式)
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency) // 限制同時連線數，避免把自己頻寬塞爆

	var mu sync.Mutex
	results := make([]siteResult, 0, len(websites))

	for _, site := range websites {
		wg.Add(1)
		sem <- struct{}{} // 搶票

		go func(target domain.Website) {
			defer wg.Done()
			defer func() { <-sem }() // 還票

			result := s.refreshOne(ctx, target)

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(site)
	}

	wg.Wait()

	// 中途被取消就整批丟掉，不能把做一半的結果寫進快取
	if ctx.Err() != nil {
		logrus.Warn("刷新被取消，丟棄這一批結果")
		return ctx.Err()
	}

	// 彙整：只用這一批完整的結果，整個物件一次換掉
	sites := make([]domain.Website, 0, len(results))
	statuses := make(map[string]domain.UpdateStatus, len(results))
	for _, r := range results {
		sites = append(sites, r.site)
		if r.err == nil {
			statuses[r.site.ID.Hex()] = r.updates
		}
	}

	stats := ComputeStats(sites, statuses)
	s.Cache.Put(statsCacheKey, stats, s.cacheTTL)

	logrus.Infof("刷新完成：%d 個待更新，%d 個網站需要關注",
		stats.TotalPendingUpdates, len(stats.SitesNeedingAttention))
	return nil
}

// refreshOne 單一網站的刷新邏輯
func (s *RefreshService) refreshOne(ctx context.Context, site domain.Website) siteResult {
	logrus.Debugf("Refreshing: %s", site.Name)

	// 1. 抓完整快照 (外掛/佈景主題/漏洞)，存回 wp_data
	rawStatus, statusErr := s.WRM.FetchStatus(ctx, site)
	if statusErr != nil {
		logrus.Warnf("連線失敗 %s: %v", site.URL, statusErr)
		site.ConnectionStatus = domain.ConnDisconnected
	} else {
		site.ConnectionStatus = domain.ConnConnected
		site.WPData = string(rawStatus)
	}

	// 2. 抓更新狀態
	updates, updErr := s.WRM.FetchUpdates(ctx, site)
	if updErr != nil {
		logrus.Warnf("無法獲取 %s 的更新狀態: %v", site.URL, updErr)
	}

	// 3. 判斷健康狀態
	site.HealthStatus = deriveHealth(site, updates)

	// 4. 寫回資料庫
	if err := s.Repo.UpdateSyncResult(ctx, site); err != nil {
		logrus.Errorf("更新資料庫失敗 %s: %v", site.Name, err)
	}

	// 5. 需要的話發告警
	s.Notifier.CheckAndNotify(ctx, site, updates)

	return siteResult{site: site, updates: updates, err: updErr}
}

// deriveHealth 有漏洞就是 critical，有待更新就是 warning，其他是 good
func deriveHealth(site domain.Website, updates domain.UpdateStatus) string {
	if parsed, ok := site.ParseWPData(); ok && len(parsed.Vulnerabilities) > 0 {
		return domain.HealthCritical
	}
	if updates.PendingCount() > 0 {
		return domain.HealthWarning
	}
	if site.ConnectionStatus != domain.ConnConnected {
		return domain.HealthWarning
	}
	return domain.HealthGood
}

// GetStats 先看快取，沒有就現場重算一次
func (s *RefreshService) GetStats(ctx context.Context) (domain.MaintenanceStats, error) {
	if cached, ok := s.Cache.Get(statsCacheKey); ok {
		return cached.(domain.MaintenanceStats), nil
	}

	if err := s.RefreshAll(ctx); err != nil {
		return domain.MaintenanceStats{}, err
	}

	if cached, ok := s.Cache.Get(statsCacheKey); ok {
		return cached.(domain.MaintenanceStats), nil
	}
	// 理論上不會走到這裡 (RefreshAll 成功一定有寫快取)
	return domain.MaintenanceStats{}, nil
}

// GetUpdates 單一網站的更新狀態，一樣先看快取
func (s *RefreshService) GetUpdates(ctx context.Context, site domain.Website) domain.UpdateStatus {
	key := "updates:" + site.ID.Hex()
	if cached, ok := s.Cache.Get(key); ok {
		return cached.(domain.UpdateStatus)
	}

	updates, err := s.WRM.FetchUpdates(ctx, site)
	if err != nil {
		logrus.Warnf("無法獲取 %s 的更新狀態: %v", site.URL, err)
		return domain.UpdateStatus{Shape: domain.ShapeUnknown}
	}

	s.Cache.Put(key, updates, s.cacheTTL)
	return updates
}
