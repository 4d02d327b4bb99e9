package domain

import "encoding/json"

// UpdateStatus 的兩種形狀 (WRM 新舊版本回傳不一樣)
const (
	ShapeSummary  = "summary"  // { count: { total } }
	ShapeDetailed = "detailed" // { updates: { plugins, themes, core } }
	ShapeUnknown  = "unknown"  // 抓不到或格式不對
)

// UpdateStatus 統一後的標籤聯集 (tagged variant)
// Shape 決定哪些欄位有效，使用前一定要先看 Shape，不要亂猜
type UpdateStatus struct {
	Shape string `json:"shape"`

	// ShapeSummary 時有效
	Total int `json:"total,omitempty"`

	// ShapeDetailed 時有效
	PluginUpdates   []PendingUpdate `json:"plugin_updates,omitempty"`
	ThemeUpdates    []PendingUpdate `json:"theme_updates,omitempty"`
	CoreNeedsUpdate bool            `json:"core_needs_update,omitempty"`
}

type PendingUpdate struct {
	Name       string `json:"name"`
	Slug       string `json:"slug,omitempty"`
	NewVersion string `json:"new_version,omitempty"`
}

// PendingCount 這個網站有幾個待更新項目
// summary 形狀直接用 count.total，detailed 形狀自己加總，兩者不混用
func (u UpdateStatus) PendingCount() int {
	switch u.Shape {
	case ShapeSummary:
		if u.Total < 0 {
			return 0
		}
		return u.Total
	case ShapeDetailed:
		n := len(u.PluginUpdates) + len(u.ThemeUpdates)
		if u.CoreNeedsUpdate {
			n++
		}
		return n
	default:
		return 0
	}
}

// rawUpdatePayload 對應 WRM 的原始回傳 (兩種形狀都收得下)
type rawUpdatePayload struct {
	Count *struct {
		Total int `json:"total"`
	} `json:"count"`
	Updates *struct {
		Plugins []PendingUpdate `json:"plugins"`
		Themes  []PendingUpdate `json:"themes"`
		Core    struct {
			NeedsUpdate bool `json:"needs_update"`
		} `json:"core"`
	} `json:"updates"`
}

// ParseUpdateStatus 把原始 JSON 轉成標籤聯集
// 規則：有 count 就當 summary (優先)，有 updates 就當 detailed，都沒有就 unknown
// 壞掉的 JSON 也回傳 unknown，不回錯誤
func ParseUpdateStatus(data []byte) UpdateStatus {
	var raw rawUpdatePayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return UpdateStatus{Shape: ShapeUnknown}
	}

	if raw.Count != nil {
		return UpdateStatus{Shape: ShapeSummary, Total: raw.Count.Total}
	}

	if raw.Updates != nil {
		return UpdateStatus{
			Shape:           ShapeDetailed,
			PluginUpdates:   raw.Updates.Plugins,
			ThemeUpdates:    raw.Updates.Themes,
			CoreNeedsUpdate: raw.Updates.Core.NeedsUpdate,
		}
	}

	return UpdateStatus{Shape: ShapeUnknown}
}
