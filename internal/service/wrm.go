package service

import (
	"aio-webcare/internal/conf"
	"aio-webcare/internal/domain"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// WRMClient 跟每個網站上的 WRM plugin (WordPress Remote Manager) 溝通
// 每個網站有自己的 API Key，走 X-WRM-API-Key header 認證
type WRMClient struct {
	httpClient *http.Client
	maxRetries uint
}

func NewWRMClient(cfg conf.WRMConfig) *WRMClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.MaxRetries
	if retries == 0 {
		retries = 3
	}
	return &WRMClient{
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: retries,
	}
}

// BackupResult WRM 端回報的備份結果
type BackupResult struct {
	Success   bool   `json:"success"`
	SizeBytes int64  `json:"size_bytes"`
	Message   string `json:"message"`
}

// FetchUpdates 抓單一網站的更新狀態
// 網路錯誤和 5xx 會用指數退避重試，4xx (金鑰錯誤之類) 直接放棄
func (c *WRMClient) FetchUpdates(ctx context.Context, site domain.Website) (domain.UpdateStatus, error) {
	body, err := c.get(ctx, site, "/wp-json/wrm/v1/updates")
	if err != nil {
		return domain.UpdateStatus{Shape: domain.ShapeUnknown}, err
	}
	// 解析失敗不是錯誤，回傳 unknown 形狀讓上層當 0 處理
	return domain.ParseUpdateStatus(body), nil
}

// FetchStatus 抓網站的完整快照 (外掛、佈景主題、漏洞、系統資訊)
// 回傳原始 JSON，由呼叫端決定要不要存進 wp_data
func (c *WRMClient) FetchStatus(ctx context.Context, site domain.Website) ([]byte, error) {
	return c.get(ctx, site, "/wp-json/wrm/v1/status")
}

// TriggerBackup 請 WRM 端開始備份 (同步等它做完)
func (c *WRMClient) TriggerBackup(ctx context.Context, site domain.Website) (*BackupResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, site, "/wp-json/wrm/v1/backup")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("WRM 備份回應錯誤代碼: %d", resp.StatusCode)
	}

	var result BackupResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *WRMClient) newRequest(ctx context.Context, method string, site domain.Website, path string) (*http.Request, error) {
	url := strings.TrimRight(site.URL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-WRM-API-Key", site.WRMAPIKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// get 帶重試的 GET (backoff: 網路錯誤/5xx 重試，4xx 是 Permanent 不重試)
func (c *WRMClient) get(ctx context.Context, site domain.Website, path string) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := c.newRequest(ctx, http.MethodGet, site, path)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("WRM 回應錯誤代碼: %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			// 金鑰錯誤或路徑不存在，重試也沒用
			return nil, backoff.Permanent(fmt.Errorf("WRM 回應錯誤代碼: %d", resp.StatusCode))
		}

		return io.ReadAll(resp.Body)
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxRetries),
	)
}
