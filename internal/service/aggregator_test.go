package service

import (
	"aio-webcare/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newSite(wpData string) domain.Website {
	return domain.Website{
		ID:     primitive.NewObjectID(),
		Name:   "test-site",
		URL:    "https://example.com",
		WPData: wpData,
	}
}

func TestComputeStats_MixedShapes(t *testing.T) {
	// 網站 1 回 summary 形狀，網站 2 回 detailed 形狀
	site1 := newSite("")
	site2 := newSite("")

	statuses := map[string]domain.UpdateStatus{
		site1.ID.Hex(): {Shape: domain.ShapeSummary, Total: 3},
		site2.ID.Hex(): {
			Shape: domain.ShapeDetailed,
			PluginUpdates: []domain.PendingUpdate{
				{Name: "woocommerce"},
				{Name: "yoast-seo"},
			},
			ThemeUpdates:    []domain.PendingUpdate{},
			CoreNeedsUpdate: true,
		},
	}

	stats := ComputeStats([]domain.Website{site1, site2}, statuses)

	// 3 + (2 + 0 + 1) = 6
	assert.Equal(t, 6, stats.TotalPendingUpdates)
	assert.ElementsMatch(t, []string{site1.ID.Hex(), site2.ID.Hex()}, stats.SitesNeedingAttention)
	assert.Equal(t, 2, stats.TotalWebsites)
}

func TestComputeStats_MalformedWPData(t *testing.T) {
	site := newSite("{invalid json")

	stats := ComputeStats([]domain.Website{site}, map[string]domain.UpdateStatus{})

	assert.Equal(t, 0, stats.TotalPendingUpdates)
	assert.Empty(t, stats.SitesNeedingAttention)
	assert.Equal(t, 0, stats.TotalPlugins)
	assert.Equal(t, 0, stats.TotalThemes)
}

func TestComputeStats_MissingStatusDoesNotAffectOthers(t *testing.T) {
	siteOK := newSite("")
	siteMissing := newSite("")

	statuses := map[string]domain.UpdateStatus{
		siteOK.ID.Hex(): {Shape: domain.ShapeSummary, Total: 2},
		// siteMissing 抓失敗，不在 map 裡
	}

	stats := ComputeStats([]domain.Website{siteOK, siteMissing}, statuses)

	assert.Equal(t, 2, stats.TotalPendingUpdates)
	assert.ElementsMatch(t, []string{siteOK.ID.Hex()}, stats.SitesNeedingAttention)
}

func TestComputeStats_PluginAndThemeTotals(t *testing.T) {
	site := newSite(`{
		"plugins": [
			{"name": "woocommerce", "active": true},
			{"name": "akismet", "active": false},
			{"name": "jetpack", "active": true}
		],
		"themes": [
			{"name": "twentytwentyfour", "active": true}
		],
		"vulnerabilities": []
	}`)

	stats := ComputeStats([]domain.Website{site}, map[string]domain.UpdateStatus{})

	assert.Equal(t, 3, stats.TotalPlugins)
	assert.Equal(t, 2, stats.ActivePlugins)
	assert.Equal(t, 1, stats.TotalThemes)
	assert.Empty(t, stats.SitesNeedingAttention) // 沒更新也沒漏洞
}

func TestComputeStats_VulnerabilityFlagsAttention(t *testing.T) {
	site := newSite(`{
		"plugins": [],
		"themes": [],
		"vulnerabilities": [{"title": "SQL injection in contact form", "severity": "high"}]
	}`)

	// 沒有任何待更新，但有漏洞一樣要列入關注名單
	stats := ComputeStats([]domain.Website{site}, map[string]domain.UpdateStatus{})

	assert.Equal(t, 0, stats.TotalPendingUpdates)
	assert.ElementsMatch(t, []string{site.ID.Hex()}, stats.SitesNeedingAttention)
	assert.True(t, stats.NeedsAttention(site.ID.Hex()))
}

func TestComputeStats_OrderIndependent(t *testing.T) {
	site1 := newSite(`{"plugins": [{"name": "a", "active": true}], "themes": []}`)
	site2 := newSite("")
	site3 := newSite("{broken")

	statuses := map[string]domain.UpdateStatus{
		site1.ID.Hex(): {Shape: domain.ShapeSummary, Total: 1},
		site2.ID.Hex(): {Shape: domain.ShapeDetailed, CoreNeedsUpdate: true},
	}

	forward := ComputeStats([]domain.Website{site1, site2, site3}, statuses)
	reversed := ComputeStats([]domain.Website{site3, site2, site1}, statuses)

	assert.Equal(t, forward.TotalPendingUpdates, reversed.TotalPendingUpdates)
	assert.Equal(t, forward.TotalPlugins, reversed.TotalPlugins)
	assert.ElementsMatch(t, forward.SitesNeedingAttention, reversed.SitesNeedingAttention)
}

func TestComputeStats_Idempotent(t *testing.T) {
	site := newSite(`{"plugins": [{"name": "a", "active": true}], "themes": [{"name": "t", "active": true}]}`)
	statuses := map[string]domain.UpdateStatus{
		site.ID.Hex(): {Shape: domain.ShapeSummary, Total: 5},
	}
	websites := []domain.Website{site}

	first := ComputeStats(websites, statuses)
	second := ComputeStats(websites, statuses)

	// 純函式：跑兩次結果一樣，不會把上一次的加總累積進來
	assert.Equal(t, first.TotalPendingUpdates, second.TotalPendingUpdates)
	assert.Equal(t, first.TotalPlugins, second.TotalPlugins)
	assert.Equal(t, first.ActivePlugins, second.ActivePlugins)
	assert.ElementsMatch(t, first.SitesNeedingAttention, second.SitesNeedingAttention)
}

func TestComputeStats_NeverNegative(t *testing.T) {
	site := newSite("")
	statuses := map[string]domain.UpdateStatus{
		// summary 裡塞負數 (後端壞掉的情況)，不能讓總數變負
		site.ID.Hex(): {Shape: domain.ShapeSummary, Total: -5},
	}

	stats := ComputeStats([]domain.Website{site}, statuses)
	assert.GreaterOrEqual(t, stats.TotalPendingUpdates, 0)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, nil)

	require.NotNil(t, stats.SitesNeedingAttention)
	assert.Equal(t, 0, stats.TotalWebsites)
	assert.Equal(t, 0, stats.TotalPendingUpdates)
}
