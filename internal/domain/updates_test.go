package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUpdateStatus_SummaryShape(t *testing.T) {
	status := ParseUpdateStatus([]byte(`{"count": {"total": 7}}`))

	assert.Equal(t, ShapeSummary, status.Shape)
	assert.Equal(t, 7, status.PendingCount())
}

func TestParseUpdateStatus_DetailedShape(t *testing.T) {
	status := ParseUpdateStatus([]byte(`{
		"updates": {
			"plugins": [{"name": "woocommerce", "new_version": "8.5.1"}],
			"themes": [{"name": "astra"}, {"name": "oceanwp"}],
			"core": {"needs_update": true}
		}
	}`))

	assert.Equal(t, ShapeDetailed, status.Shape)
	assert.Len(t, status.PluginUpdates, 1)
	assert.Len(t, status.ThemeUpdates, 2)
	assert.True(t, status.CoreNeedsUpdate)
	assert.Equal(t, 4, status.PendingCount()) // 1 + 2 + 1
}

func TestParseUpdateStatus_SummaryTakesPrecedence(t *testing.T) {
	// 兩種形狀同時出現時以 summary 為準，不做混合加總
	status := ParseUpdateStatus([]byte(`{
		"count": {"total": 2},
		"updates": {"plugins": [{"name": "a"}, {"name": "b"}, {"name": "c"}], "themes": [], "core": {"needs_update": false}}
	}`))

	assert.Equal(t, ShapeSummary, status.Shape)
	assert.Equal(t, 2, status.PendingCount())
}

func TestParseUpdateStatus_UnknownShape(t *testing.T) {
	cases := []string{
		`{"foo": "bar"}`,
		`{}`,
		`{invalid json`,
		``,
		`[1,2,3]`,
	}

	for _, raw := range cases {
		status := ParseUpdateStatus([]byte(raw))
		assert.Equal(t, ShapeUnknown, status.Shape, "payload: %s", raw)
		assert.Equal(t, 0, status.PendingCount())
	}
}

func TestPendingCount_DetailedCoreOnly(t *testing.T) {
	status := UpdateStatus{Shape: ShapeDetailed, CoreNeedsUpdate: true}
	assert.Equal(t, 1, status.PendingCount())
}

func TestParseWPData_Defensive(t *testing.T) {
	cases := []struct {
		name   string
		wpData string
		wantOK bool
	}{
		{"正常資料", `{"plugins": [{"name": "a"}], "themes": []}`, true},
		{"壞掉的 JSON", `{invalid json`, false},
		{"空字串", ``, false},
		{"只有空白", `   `, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			site := Website{WPData: tc.wpData}
			parsed, ok := site.ParseWPData()
			assert.Equal(t, tc.wantOK, ok)
			if !ok {
				// 失敗時一定是零值，上層直接當 0 加總
				assert.Empty(t, parsed.Plugins)
				assert.Empty(t, parsed.Vulnerabilities)
			}
		})
	}
}
