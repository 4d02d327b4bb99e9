package domain

import "time"

// MaintenanceStats 儀表板總覽數據
// 每次重新整理都是整包重算，不會累加上一輪的結果 (避免重複計算)
type MaintenanceStats struct {
	TotalWebsites         int      `json:"total_websites"`
	TotalPlugins          int      `json:"total_plugins"`
	ActivePlugins         int      `json:"active_plugins"`
	TotalThemes           int      `json:"total_themes"`
	TotalPendingUpdates   int      `json:"total_pending_updates"`
	SitesNeedingAttention []string `json:"sites_needing_attention"` // 網站 ID 列表

	GeneratedAt time.Time `json:"generated_at"`
}

// NeedsAttention 判斷某個網站是否在需要關注的名單裡
func (s MaintenanceStats) NeedsAttention(id string) bool {
	for _, v := range s.SitesNeedingAttention {
		if v == id {
			return true
		}
	}
	return false
}
