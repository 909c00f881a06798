// internal/common/validation/input.go
package validation

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DefaultImageMIMEType is assumed when a data URL or caller omits the type.
const DefaultImageMIMEType = "image/jpeg"

var (
	mimeTypePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9!#$&^_.+-]*/[a-zA-Z0-9][a-zA-Z0-9!#$&^_.+-]*$`)
	dataURLPattern  = regexp.MustCompile(`^data:([^;,]*)(;[^,]*)?,(.*)$`)
)

// NormalizeURL trims raw and prefixes https:// when no scheme is given.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("url is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url has no host")
	}
	return u.String(), nil
}

// ValidateMIMEType reports whether s looks like type/subtype.
func ValidateMIMEType(s string) bool {
	return mimeTypePattern.MatchString(s)
}

// ParseDataURL splits "data:<mime>;base64,<payload>" into its MIME type and payload.
// Input without the data: prefix is returned as-is with the default MIME type.
func ParseDataURL(raw string) (mimeType, payload string, err error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "data:") {
		return DefaultImageMIMEType, raw, nil
	}

	m := dataURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", "", fmt.Errorf("malformed data url")
	}
	mimeType = m[1]
	if mimeType == "" {
		mimeType = DefaultImageMIMEType
	}
	if !strings.Contains(m[2], "base64") {
		return "", "", fmt.Errorf("data url is not base64 encoded")
	}
	return mimeType, m[3], nil
}

// DecodeBase64Image decodes standard or URL-safe base64 image payloads. The bytes
// are not inspected.
func DecodeBase64Image(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, fmt.Errorf("image payload is empty")
	}
	if data, err := base64.StdEncoding.DecodeString(payload); err == nil {
		return data, nil
	}
	if data, err := base64.RawStdEncoding.DecodeString(payload); err == nil {
		return data, nil
	}
	data, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("image payload is not valid base64: %w", err)
	}
	return data, nil
}
