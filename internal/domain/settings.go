package domain

type Settings struct {
	// Webhook 告警設定
	WebhookEnabled bool   `bson:"webhook_enabled" json:"webhook_enabled"`
	WebhookURL     string `bson:"webhook_url" json:"webhook_url"`

	// 白牌 (White-Label) 品牌設定
	BrandName     string `bson:"brand_name" json:"brand_name"`
	LogoURL       string `bson:"logo_url" json:"logo_url"`
	AccentColor   string `bson:"accent_color" json:"accent_color"`
	HidePoweredBy bool   `bson:"hide_powered_by" json:"hide_powered_by"`
}
