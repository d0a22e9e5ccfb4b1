package request

// ClientInfo 由 handler 从请求中提取，不来自请求体
type ClientInfo struct {
	UserID       string
	SessionToken string
	UserAgent    string
	IpAddress    string
}

type SettingsRequest struct {
	TwoFactorEnabled         *bool `json:"two_factor_enabled"`
	LoginNotifications       *bool `json:"login_notifications"`
	SuspiciousActivityAlerts *bool `json:"suspicious_activity_alerts"`
	SessionTimeoutMinutes    *int  `json:"session_timeout_minutes"`
}

type CaptchaRequest struct {
	Token string `json:"token"`
}
