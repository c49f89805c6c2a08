package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/abhisek/afmlab/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	const latest = `{"tag_name":"v1.2.0","html_url":"https://example.com/v1.2.0"}`

	tests := []struct {
		name    string
		version string
		want    bool
	}{
		{"older", "v1.1.9", true},
		{"older without prefix", "1.0.0", true},
		{"same", "v1.2.0", false},
		{"newer", "v1.3.0", false},
		{"prerelease of same", "v1.2.0-rc.1", true},
		{"dev build", DevVersion, false},
		{"garbage", "nightly", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := releaseServer(t, http.StatusOK, latest)
			c := NewChecker(WithBaseURL(server.URL))

			res, err := c.Check(context.Background(), &CheckInput{Version: tt.version})
			require.NoError(t, err)
			assert.Equal(t, "v1.2.0", res.LatestVersion)
			assert.Equal(t, "https://example.com/v1.2.0", res.ReleaseURL)
			assert.Equal(t, tt.want, res.UpdateAvailable)
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"bad json", http.StatusOK, `{`},
		{"bad tag", http.StatusOK, `{"tag_name":"latest"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := releaseServer(t, tt.status, tt.body)
			_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
			require.Error(t, err)
		})
	}
}

func TestCheck_CustomRepo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/someone/fork/releases/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"tag_name":"v0.2.0"}`))
	}))
	defer server.Close()

	c := NewChecker(WithBaseURL(server.URL), WithRepo("someone", "fork"))
	res, err := c.Check(context.Background(), &CheckInput{Version: "v0.1.0"})
	require.NoError(t, err)
	assert.True(t, res.UpdateAvailable)
}
