package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

type UserAgent struct {
	Browser    string
	OS         string
	DeviceType string
}

// ParseUserAgent recognises the common browsers, operating systems and
// device classes. Anything else is reported as "Other".
func ParseUserAgent(ua string) UserAgent {
	s := strings.ToLower(ua)

	var out UserAgent

	switch {
	case strings.Contains(s, "edg/") || strings.Contains(s, "edge/"):
		out.Browser = "Edge"
	case strings.Contains(s, "opr/") || strings.Contains(s, "opera/"):
		out.Browser = "Opera"
	case strings.Contains(s, "chrome/"):
		out.Browser = "Chrome"
	case strings.Contains(s, "firefox/"):
		out.Browser = "Firefox"
	case strings.Contains(s, "safari/") && !strings.Contains(s, "chrome"):
		out.Browser = "Safari"
	default:
		out.Browser = "Other"
	}

	// iOS and Android UAs also mention "mac os x" and "linux"
	switch {
	case strings.Contains(s, "iphone") || strings.Contains(s, "ipad"):
		out.OS = "iOS"
	case strings.Contains(s, "android"):
		out.OS = "Android"
	case strings.Contains(s, "windows"):
		out.OS = "Windows"
	case strings.Contains(s, "mac os x") || strings.Contains(s, "macos"):
		out.OS = "macOS"
	case strings.Contains(s, "linux"):
		out.OS = "Linux"
	default:
		out.OS = "Other"
	}

	switch {
	case strings.Contains(s, "ipad") || strings.Contains(s, "tablet"):
		out.DeviceType = "tablet"
	case strings.Contains(s, "mobile") || strings.Contains(s, "iphone"):
		out.DeviceType = "mobile"
	default:
		out.DeviceType = "desktop"
	}

	return out
}

type Referrer struct {
	Domain      string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	UTMTerm     string
	UTMContent  string
}

// ParseReferrer extracts the host and utm_* parameters. An empty or
// unparseable referrer yields the zero value.
func ParseReferrer(ref string) Referrer {
	if ref == "" {
		return Referrer{}
	}

	u, err := url.Parse(ref)
	if err != nil {
		return Referrer{}
	}

	q := u.Query()

	return Referrer{
		Domain:      u.Host,
		UTMSource:   q.Get("utm_source"),
		UTMMedium:   q.Get("utm_medium"),
		UTMCampaign: q.Get("utm_campaign"),
		UTMTerm:     q.Get("utm_term"),
		UTMContent:  q.Get("utm_content"),
	}
}

// HashIP returns the hex sha256 of ip so addresses are never stored raw.
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}

// ValidSessionID returns id in canonical form, or "" if it is not a UUID in
// the 8-4-4-4-12 layout.
func ValidSessionID(id string) string {
	if len(id) != 36 {
		return ""
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return ""
	}

	return parsed.String()
}

// PrimaryLanguage is the first tag of an Accept-Language header.
func PrimaryLanguage(acceptLanguage string) string {
	first, _, _ := strings.Cut(acceptLanguage, ",")
	tag, _, _ := strings.Cut(first, ";")
	return strings.TrimSpace(tag)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
