package domain

import (
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// 定義常數避免打錯字
const (
	ConnConnected    = "connected"
	ConnDisconnected = "disconnected" // 無法連線/金鑰錯誤
	ConnError        = "error"

	HealthGood     = "good"
	HealthWarning  = "warning"
	HealthCritical = "critical"
)

type Website struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	URL  string             `bson:"url" json:"url"`

	// WRM 連線資訊 (每個網站有自己的 API Key)
	WRMAPIKey string `bson:"wrm_api_key" json:"wrmApiKey"`

	// 監控設定
	IsIgnored  bool `bson:"is_ignored" json:"is_ignored"`   // 開關檢查按鈕
	AutoBackup bool `bson:"auto_backup" json:"auto_backup"` // 每日自動備份

	// 網站狀態
	ConnectionStatus string `bson:"connection_status" json:"connectionStatus"`
	HealthStatus     string `bson:"health_status" json:"healthStatus"`
	ThumbnailURL     string `bson:"thumbnail_url" json:"thumbnailUrl"`

	// WRM 回報的原始資料 (JSON 字串，可能是壞的，解析時要防禦)
	WPData string `bson:"wp_data" json:"wpData"`

	// 系統欄位
	LastSync  time.Time `bson:"last_sync" json:"lastSync"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	// 告警防騷擾用
	LastAlertTime time.Time `bson:"last_alert_time" json:"-"`
}

// WPData 解析後的結構 (WRM plugin 回報的內容)
type WPDataParsed struct {
	Plugins         []PluginInfo    `json:"plugins"`
	Themes          []ThemeInfo     `json:"themes"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
	SystemInfo      SystemInfo      `json:"systemInfo"`
}

type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	Active          bool   `json:"active"`
	UpdateAvailable bool   `json:"update_available"`
}

type ThemeInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	Active          bool   `json:"active"`
	UpdateAvailable bool   `json:"update_available"`
}

type Vulnerability struct {
	Title    string `json:"title"`
	Severity string `json:"severity"`
	Plugin   string `json:"plugin,omitempty"`
}

type SystemInfo struct {
	WPVersion  string `json:"wp_version"`
	PHPVersion string `json:"php_version"`
	SSLEnabled bool   `json:"ssl_enabled"`
}

// ParseWPData 防禦性解析 wp_data 字串
// 壞掉的 JSON 一律視為 "沒有資料"，絕對不能讓整個統計掛掉
func (w *Website) ParseWPData() (WPDataParsed, bool) {
	var parsed WPDataParsed
	raw := strings.TrimSpace(w.WPData)
	if raw == "" {
		return parsed, false
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return WPDataParsed{}, false
	}
	return parsed, true
}
