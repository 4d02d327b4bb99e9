package service

import (
	"aio-webcare/internal/domain"
	"aio-webcare/internal/repository"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type NotifierService struct {
	Sites    repository.WebsiteRepository
	Settings repository.SettingsRepository
}

func NewNotifierService(sites repository.WebsiteRepository, settings repository.SettingsRepository) *NotifierService {
	return &NotifierService{Sites: sites, Settings: settings}
}

// WebhookPayload 定義通用的訊息格式 (相容 Slack/Teams/Discord)
type WebhookPayload struct {
	Text string `json:"text"` // Slack, Discord 常用
}

// SendTestMessage 發送測試訊息
func (n *NotifierService) SendTestMessage(ctx context.Context, webhookURL string) error {
	return n.send(webhookURL, "🔔 這是一條來自 AIO Webcare 的測試告警訊息！")
}

// CheckAndNotify 檢查並發送告警 (核心邏輯)
func (n *NotifierService) CheckAndNotify(ctx context.Context, site domain.Website, updates domain.UpdateStatus) {
	// 1. 判斷是否需要告警
	// 條件：有安全漏洞 OR 有待更新 OR 連不上 (且不是被忽略的)
	// 且距離上次告警超過 24 小時 (防騷擾)
	if site.IsIgnored {
		return
	}

	pending := updates.PendingCount()
	hasVulns := false
	if parsed, ok := site.ParseWPData(); ok {
		hasVulns = len(parsed.Vulnerabilities) > 0
	}

	shouldNotify := false
	if pending > 0 || hasVulns {
		shouldNotify = true
	}
	if site.ConnectionStatus == domain.ConnDisconnected {
		shouldNotify = true
	}

	if !shouldNotify {
		return
	}

	// 2. 防騷擾檢查 (24小時內不重複發)
	if time.Since(site.LastAlertTime) < 24*time.Hour {
		return
	}

	// 3. 獲取 Webhook URL
	settings, err := n.Settings.Get(ctx)
	if err != nil || !settings.WebhookEnabled || settings.WebhookURL == "" {
		return // 沒設定 URL 就不發
	}

	// 4. 組裝訊息
	msg := fmt.Sprintf("⚠️ [網站告警] 網站: %s (%s) \n連線狀態: %s \n待更新項目: %d 個 \n安全漏洞: %v",
		site.Name, site.URL, site.ConnectionStatus, pending, hasVulns)

	// 5. 發送
	logrus.Infof("正在發送告警: %s", site.Name)
	if err := n.send(settings.WebhookURL, msg); err == nil {
		// 發送成功才更新 LastAlertTime
		n.Sites.UpdateAlertTime(ctx, site.ID)
	} else {
		logrus.Errorf("發送告警失敗: %v", err)
	}
}

// 底層發送邏輯
func (n *NotifierService) send(url, message string) error {
	payload := WebhookPayload{Text: message}
	jsonBytes, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(jsonBytes))
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook 回應錯誤代碼: %d", resp.StatusCode)
	}
	return nil
}
