// Utilities for importing a browser session from a copied cURL command.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	curlHeaderRe = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	curlCookieRe = regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
)

// csrfCookieName is the cookie carrying the CSRF secret the upload form echoes back in X-CSRFToken.
const csrfCookieName = "csrftoken"

// CurlHeaders represents parsed headers and cookies from a cURL command.
type CurlHeaders struct {
	Headers map[string]string
	Cookie  string
}

// Session is the cookie/CSRF token pair replayed on upload requests.
type Session struct {
	Cookie    string
	CSRFToken string
}

// ParseCurlFile reads a file containing a cURL command and extracts headers.
func ParseCurlFile(filepath string) (*CurlHeaders, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(string(content))
}

// ParseCurlCommand parses a cURL command string and extracts headers.
//
// Cookies given with -b take precedence over a Cookie header.
func ParseCurlCommand(curlCmd string) (*CurlHeaders, error) {
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)
	var headerCookie string

	for _, match := range curlHeaderRe.FindAllStringSubmatch(curlCmd, -1) {
		line := firstNonEmpty(match[1], match[2])
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if strings.EqualFold(key, "cookie") {
			if headerCookie == "" {
				headerCookie = value
			}
			continue
		}
		headers[key] = value
	}

	cookie := headerCookie
	if m := curlCookieRe.FindStringSubmatch(curlCmd); m != nil {
		cookie = firstNonEmpty(m[1], m[2])
	}

	if len(headers) == 0 && cookie == "" {
		return nil, fmt.Errorf("%w: no headers found in curl command", ErrInvalidInput)
	}

	return &CurlHeaders{Headers: headers, Cookie: cookie}, nil
}

// Session extracts the cookie and CSRF token.
//
// An explicit X-CSRFToken header wins over the csrftoken cookie value.
func (c *CurlHeaders) Session() (*Session, error) {
	if c.Cookie == "" {
		return nil, ErrMissingSession
	}

	s := &Session{Cookie: c.Cookie}
	for key, value := range c.Headers {
		if strings.EqualFold(key, "x-csrftoken") {
			s.CSRFToken = value
		}
	}

	if s.CSRFToken == "" {
		s.CSRFToken = CookieValue(c.Cookie, csrfCookieName)
	}

	if s.CSRFToken == "" {
		return nil, fmt.Errorf("%w: no %s cookie or X-CSRFToken header", ErrMissingSession, csrfCookieName)
	}

	return s, nil
}

// CookieValue returns the value of name within a "k=v; k2=v2" cookie string.
func CookieValue(cookie, name string) string {
	for part := range strings.SplitSeq(cookie, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && k == name {
			return v
		}
	}
	return ""
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
