package devicecontext

import "strings"

// DeviceUnknown is returned when no classification keyword matches.
const DeviceUnknown = "Unknown Device"

// deviceClass pairs a label with the user-agent keywords that select it.
type deviceClass struct {
	label    string
	keywords []string
}

// Classification order matters: phones advertise both "Mobile" and an OS
// keyword, and Android user agents also contain "Linux", so the more specific
// classes are checked first.
var deviceClasses = []deviceClass{
	{label: "Mobile", keywords: []string{"mobile", "iphone", "android"}},
	{label: "Tablet", keywords: []string{"tablet", "ipad", "kindle", "silk"}},
	{label: "Windows", keywords: []string{"windows"}},
	{label: "Mac", keywords: []string{"macintosh", "mac os"}},
	{label: "Linux", keywords: []string{"linux", "x11"}},
}

// ClassifyDevice maps a user-agent string to a coarse device label by
// case-insensitive substring matching. Best-effort labeling only.
func ClassifyDevice(userAgent string) string {
	if userAgent == "" {
		return DeviceUnknown
	}

	lower := strings.ToLower(userAgent)
	for _, class := range deviceClasses {
		for _, keyword := range class.keywords {
			if strings.Contains(lower, keyword) {
				return class.label
			}
		}
	}

	return DeviceUnknown
}
