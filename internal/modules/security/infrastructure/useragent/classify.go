package useragent

import "strings"

const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceUnknown = "unknown"

	BrowserUnknown = "Unknown"
)

// rule 命中任一 needle 且不含任何 without 时生效
type rule struct {
	name    string
	needles []string
	without []string
}

// 按顺序匹配，先命中者生效；平板必须排在移动端之前。
// Android 手机 UA 带 mobile，不带 mobile 的 Android UA 是平板
var deviceRules = []rule{
	{DeviceTablet, []string{"ipad", "tablet", "playbook", "silk"}, nil},
	{DeviceTablet, []string{"android"}, []string{"mobile"}},
	{DeviceMobile, []string{"mobile", "iphone", "ipod", "android", "blackberry", "windows phone", "opera mini"}, nil},
	{DeviceDesktop, []string{"windows", "macintosh", "mac os x", "linux", "x11", "cros"}, nil},
}

// Edge 与 Opera 的 UA 同时包含 chrome，Chrome 的 UA 同时包含 safari
var browserRules = []rule{
	{"Firefox", []string{"firefox", "fxios"}, nil},
	{"Edge", []string{"edg/", "edge/", "edga/", "edgios/"}, nil},
	{"Opera", []string{"opr/", "opera"}, nil},
	{"Chrome", []string{"chrome/", "crios/", "chromium/"}, nil},
	{"Safari", []string{"safari/"}, nil},
}

// Classify 从 User-Agent 推断设备类型与浏览器，无法识别时返回 unknown
func Classify(ua string) (device string, browser string) {
	s := strings.ToLower(ua)
	return match(s, deviceRules, DeviceUnknown), match(s, browserRules, BrowserUnknown)
}

func match(s string, rules []rule, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	for _, r := range rules {
		if containsAny(s, r.needles) && !containsAny(s, r.without) {
			return r.name
		}
	}
	return fallback
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
