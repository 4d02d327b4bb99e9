package service

import (
	"aio-webcare/internal/conf"
	"aio-webcare/internal/domain"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *WRMClient {
	return NewWRMClient(conf.WRMConfig{
		Timeout:    2 * time.Second,
		MaxRetries: 3,
	})
}

func TestWRMClient_FetchUpdates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wrm/v1/updates", r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("X-WRM-API-Key"))
		w.Write([]byte(`{"count": {"total": 4}}`))
	}))
	defer server.Close()

	site := domain.Website{URL: server.URL, WRMAPIKey: "secret-key"}

	updates, err := testClient().FetchUpdates(context.Background(), site)
	require.NoError(t, err)
	assert.Equal(t, domain.ShapeSummary, updates.Shape)
	assert.Equal(t, 4, updates.PendingCount())
}

func TestWRMClient_FetchUpdates_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	site := domain.Website{URL: server.URL}

	// 格式不對不是錯誤，回 unknown 讓上層當 0
	updates, err := testClient().FetchUpdates(context.Background(), site)
	require.NoError(t, err)
	assert.Equal(t, domain.ShapeUnknown, updates.Shape)
}

func TestWRMClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"count": {"total": 1}}`))
	}))
	defer server.Close()

	site := domain.Website{URL: server.URL}

	updates, err := testClient().FetchUpdates(context.Background(), site)
	require.NoError(t, err)
	assert.Equal(t, 1, updates.PendingCount())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls)) // 失敗一次後重試成功
}

func TestWRMClient_NoRetryOnAuthError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	site := domain.Website{URL: server.URL, WRMAPIKey: "wrong-key"}

	_, err := testClient().FetchUpdates(context.Background(), site)
	assert.Error(t, err)
	// 401 是金鑰問題，重試也沒用
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestWRMClient_TriggerBackup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wp-json/wrm/v1/backup", r.URL.Path)
		w.Write([]byte(`{"success": true, "size_bytes": 1048576}`))
	}))
	defer server.Close()

	site := domain.Website{URL: server.URL}

	result, err := testClient().TriggerBackup(context.Background(), site)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(1048576), result.SizeBytes)
}

func TestWRMClient_TrailingSlashURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wrm/v1/updates", r.URL.Path) // 不會出現 //
		w.Write([]byte(`{"count": {"total": 0}}`))
	}))
	defer server.Close()

	site := domain.Website{URL: server.URL + "/"}

	_, err := testClient().FetchUpdates(context.Background(), site)
	require.NoError(t, err)
}
