package validation

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// SourceURLValidator checks the base URL the feed files are served from.
type SourceURLValidator struct {
	// AllowLocalhost permits sources on loopback hosts (local dev servers).
	AllowLocalhost bool
	// AllowPrivateIPs permits RFC 1918 / link-local addresses.
	AllowPrivateIPs bool
	MaxLength       int
}

func NewSourceURLValidator() *SourceURLValidator {
	return &SourceURLValidator{
		AllowLocalhost:  true,
		AllowPrivateIPs: false,
		MaxLength:       2048,
	}
}

// ValidateAndNormalize returns the parsed base URL with a trailing slash so
// relative resource paths resolve below it.
func (v *SourceURLValidator) ValidateAndNormalize(input string) (*url.URL, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}
	if len(input) > v.MaxLength {
		return nil, fmt.Errorf("URL too long (max %d characters)", v.MaxLength)
	}
	if strings.ContainsAny(input, "<>\"'`") {
		return nil, fmt.Errorf("URL contains invalid characters")
	}

	u, err := url.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("URL must use http or https protocol")
	}
	if u.Host == "" {
		return nil, fmt.Errorf("URL must have a valid hostname")
	}
	if err := v.validateHost(u.Hostname()); err != nil {
		return nil, err
	}
	if strings.Contains(u.Path, "..") {
		return nil, fmt.Errorf("directory traversal patterns not allowed in URL path")
	}

	u.RawQuery = ""
	u.Fragment = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

func (v *SourceURLValidator) validateHost(hostname string) error {
	if isLocalhost(hostname) {
		if !v.AllowLocalhost {
			return fmt.Errorf("localhost URLs are not permitted")
		}
		return nil
	}
	if !v.AllowPrivateIPs {
		if ip := net.ParseIP(hostname); ip != nil && (ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()) {
			return fmt.Errorf("private IP addresses are not permitted")
		}
	}
	return nil
}

func isLocalhost(hostname string) bool {
	if hostname == "localhost" || strings.HasSuffix(hostname, ".localhost") {
		return true
	}
	ip := net.ParseIP(hostname)
	return ip != nil && ip.IsLoopback()
}
