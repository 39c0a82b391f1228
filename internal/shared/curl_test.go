package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseCurlCommand(t *testing.T) {
	tt := []struct {
		name        string
		curlCmd     string
		wantHeaders map[string]string
		wantCookie  string
		wantErr     bool
	}{
		{
			name:    "single header with single quotes",
			curlCmd: `curl -H 'Accept: application/json' https://photos.example.com`,
			wantHeaders: map[string]string{
				"Accept": "application/json",
			},
		},
		{
			name:    "single header with double quotes",
			curlCmd: `curl -H "Accept: application/json" https://photos.example.com`,
			wantHeaders: map[string]string{
				"Accept": "application/json",
			},
		},
		{
			name:        "cookie in -b flag",
			curlCmd:     `curl -b 'sessionid=abc123' https://photos.example.com`,
			wantHeaders: map[string]string{},
			wantCookie:  "sessionid=abc123",
		},
		{
			name:    "cookie header is excluded from regular headers",
			curlCmd: `curl -H 'Cookie: sessionid=abc123' -H 'X-CSRFToken: tok' https://photos.example.com`,
			wantHeaders: map[string]string{
				"X-CSRFToken": "tok",
			},
			wantCookie: "sessionid=abc123",
		},
		{
			name: "multiline curl with backslashes",
			curlCmd: `curl -H 'Accept: application/json' \
-H 'X-Requested-With: XMLHttpRequest' \
https://photos.example.com/?page=2`,
			wantHeaders: map[string]string{
				"Accept":           "application/json",
				"X-Requested-With": "XMLHttpRequest",
			},
		},
		{
			name:        "-b cookie takes precedence over -H cookie",
			curlCmd:     `curl -H 'Cookie: old=value' -b 'new=value' https://photos.example.com`,
			wantHeaders: map[string]string{},
			wantCookie:  "new=value",
		},
		{
			name:    "no headers or cookies",
			curlCmd: `curl https://photos.example.com`,
			wantErr: true,
		},
		{
			name:    "empty command",
			curlCmd: "",
			wantErr: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseCurlCommand(tc.curlCmd)

			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseCurlCommand() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}

			if len(result.Headers) != len(tc.wantHeaders) {
				t.Errorf("ParseCurlCommand() headers count = %v, want %v", len(result.Headers), len(tc.wantHeaders))
			}
			for key, want := range tc.wantHeaders {
				if got := result.Headers[key]; got != want {
					t.Errorf("ParseCurlCommand() header[%s] = %v, want %v", key, got, want)
				}
			}
			if result.Cookie != tc.wantCookie {
				t.Errorf("ParseCurlCommand() cookie = %v, want %v", result.Cookie, tc.wantCookie)
			}
		})
	}
}

func TestParseCurlFile(t *testing.T) {
	t.Run("successful file parse", func(t *testing.T) {
		curlFile := filepath.Join(t.TempDir(), "curl.sh")
		curlCmd := `curl -b 'csrftoken=abc; sessionid=xyz' https://photos.example.com/upload/`
		if err := os.WriteFile(curlFile, []byte(curlCmd), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		result, err := ParseCurlFile(curlFile)
		if err != nil {
			t.Fatalf("ParseCurlFile() error = %v", err)
		}
		if result.Cookie != "csrftoken=abc; sessionid=xyz" {
			t.Errorf("ParseCurlFile() cookie = %q", result.Cookie)
		}
	})

	t.Run("file does not exist", func(t *testing.T) {
		if _, err := ParseCurlFile("/nonexistent/file.sh"); err == nil {
			t.Error("ParseCurlFile() expected error for nonexistent file")
		}
	})
}

func TestCurlHeadersSession(t *testing.T) {
	t.Run("token from cookie", func(t *testing.T) {
		h := &CurlHeaders{Headers: map[string]string{}, Cookie: "sessionid=xyz; csrftoken=abc"}
		s, err := h.Session()
		if err != nil {
			t.Fatalf("Session() error = %v", err)
		}
		if s.CSRFToken != "abc" {
			t.Errorf("expected token abc, got %q", s.CSRFToken)
		}
		if s.Cookie != h.Cookie {
			t.Errorf("expected cookie to be carried over, got %q", s.Cookie)
		}
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		h := &CurlHeaders{Headers: map[string]string{"x-csrftoken": "fromheader"}, Cookie: "csrftoken=abc"}
		s, err := h.Session()
		if err != nil {
			t.Fatalf("Session() error = %v", err)
		}
		if s.CSRFToken != "fromheader" {
			t.Errorf("expected header token, got %q", s.CSRFToken)
		}
	})

	t.Run("missing cookie", func(t *testing.T) {
		h := &CurlHeaders{Headers: map[string]string{"X-CSRFToken": "tok"}}
		if _, err := h.Session(); !errors.Is(err, ErrMissingSession) {
			t.Errorf("expected ErrMissingSession, got %v", err)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		h := &CurlHeaders{Headers: map[string]string{}, Cookie: "sessionid=xyz"}
		if _, err := h.Session(); !errors.Is(err, ErrMissingSession) {
			t.Errorf("expected ErrMissingSession, got %v", err)
		}
	})
}
