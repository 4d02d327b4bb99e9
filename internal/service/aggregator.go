package service

import (
	"aio-webcare/internal/domain"
	"time"
)

// ComputeStats 把所有網站的更新狀態彙整成儀表板數據
//
// 這是純函式：同樣的輸入保證同樣的輸出，順序不影響結果。
// statuses 的 key 是網站 ID (hex)，某個網站抓失敗就不會在 map 裡，
// 視為 "沒有已知更新"，不能影響其他網站的加總。
func ComputeStats(websites []domain.Website, statuses map[string]domain.UpdateStatus) domain.MaintenanceStats {
	stats := domain.MaintenanceStats{
		TotalWebsites:         len(websites),
		SitesNeedingAttention: []string{},
		GeneratedAt:           time.Now(),
	}

	for _, site := range websites {
		id := site.ID.Hex()

		// 1. 待更新數量 (拿不到狀態就是 0)
		pending := 0
		if status, ok := statuses[id]; ok {
			pending = status.PendingCount()
		}
		stats.TotalPendingUpdates += pending

		// 2. 外掛/佈景主題統計 (wp_data 壞掉就全部算 0，不報錯)
		hasVulns := false
		if parsed, ok := site.ParseWPData(); ok {
			stats.TotalPlugins += len(parsed.Plugins)
			stats.TotalThemes += len(parsed.Themes)
			for _, p := range parsed.Plugins {
				if p.Active {
					stats.ActivePlugins++
				}
			}
			hasVulns = len(parsed.Vulnerabilities) > 0
		}

		// 3. 需要關注：有待更新 或 有安全漏洞
		if pending > 0 || hasVulns {
			stats.SitesNeedingAttention = append(stats.SitesNeedingAttention, id)
		}
	}

	return stats
}
