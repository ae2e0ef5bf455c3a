package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/tipmark/pkg/errors"
	"github.com/matzehuels/tipmark/pkg/pipeline"
)

func newTestRouter() http.Handler {
	c := newTestCLI()
	return c.router(c.newRunner(), pipeline.SurfaceEstimate)
}

func TestServeHealthz(t *testing.T) {
	srv := httptest.NewServer(newTestRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["version"] == "" {
		t.Errorf("missing version in %v", body)
	}
}

func TestServeRender(t *testing.T) {
	srv := httptest.NewServer(newTestRouter())
	defer srv.Close()

	tests := []struct {
		name        string
		query       string
		body        string
		contentType string
		wantStatus  int
		wantType    string
		wantBody    string
	}{
		{"svg", "", penguins, "application/toml", http.StatusOK, "image/svg+xml", `aria-label="tip"`},
		{"json", "?format=json", penguins, "application/toml", http.StatusOK, "application/json", `"orientation"`},
		{"json document", "?format=json", `{"tip":{"anchor":"top-left"},"channels":[{"key":"name","field":"name"}],"data":[{"name":"a"}]}`, "application/json", http.StatusOK, "application/json", `"top-left"`},
		{"bad format", "?format=pdf", penguins, "application/toml", http.StatusBadRequest, "application/json", `"INVALID_OPTION"`},
		{"bad document", "", "width = [", "application/toml", http.StatusBadRequest, "application/json", `"INVALID_FORMAT"`},
		{"bad anchor", "", `{"tip":{"anchor":"middle"}}`, "application/json", http.StatusBadRequest, "application/json", `"INVALID_ANCHOR"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/render"+tt.query, tt.contentType, strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			data, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.wantStatus, data)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantType)
			}
			if !strings.Contains(string(data), tt.wantBody) {
				t.Errorf("body missing %q:\n%s", tt.wantBody, data)
			}
		})
	}
}

func TestServeRenderMethod(t *testing.T) {
	srv := httptest.NewServer(newTestRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/render")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestServeCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := newTestCLI()

	for _, target := range []string{"local", t.TempDir()} {
		cc, err := c.serveCache(context.Background(), target)
		if err != nil {
			t.Fatalf("serveCache(%q): %v", target, err)
		}
		cc.Close()
	}

	_, err := c.serveCache(context.Background(), "redis://host:notaport/0")
	if code := errors.GetCode(err); code != errors.ErrCodeInvalidOption {
		t.Errorf("bad redis url: code = %q, want %q", code, errors.ErrCodeInvalidOption)
	}
}
