package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetNameFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"darwin", "amd64", "afmlab_Darwin_all.tar.gz", false},
		{"darwin", "arm64", "afmlab_Darwin_all.tar.gz", false},
		{"linux", "amd64", "afmlab_Linux_x86_64.tar.gz", false},
		{"linux", "arm64", "afmlab_Linux_arm64.tar.gz", false},
		{"linux", "386", "afmlab_Linux_i386.tar.gz", false},
		{"windows", "amd64", "afmlab_Windows_x86_64.zip", false},
		{"freebsd", "amd64", "", true},
		{"linux", "mips", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := assetNameFor(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChecksums(t *testing.T) {
	got := parseChecksums([]byte("abc123  afmlab_Darwin_all.tar.gz\nbadline\n  \nfoo bar baz\ndef456  afmlab_Linux_x86_64.tar.gz\n"))
	assert.Equal(t, map[string]string{
		"afmlab_Darwin_all.tar.gz":   "abc123",
		"afmlab_Linux_x86_64.tar.gz": "def456",
	}, got)
	assert.Empty(t, parseChecksums(nil))
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("payload")
	sum := sha256.Sum256(data)
	require.NoError(t, verifyChecksum(data, hex.EncodeToString(sum[:])))
	assert.ErrorIs(t, verifyChecksum(data, strings.Repeat("0", 64)), ErrChecksum)
}

func TestExtractBinary(t *testing.T) {
	content := []byte("binary")

	got, err := extractBinary(buildTarGz(t, "dist/afmlab", content), "afmlab_Linux_x86_64.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	got, err = extractBinary(buildZip(t, "afmlab.exe", content), "afmlab_Windows_x86_64.zip")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = extractBinary(buildTarGz(t, "README.md", content), "afmlab_Linux_x86_64.tar.gz")
	assert.ErrorContains(t, err, "not found")
}

func TestUpdate(t *testing.T) {
	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		t.Skipf("no release asset for this platform: %v", err)
	}

	newBinary := []byte("new afmlab")
	var archive []byte
	if strings.HasSuffix(asset, ".zip") {
		archive = buildZip(t, "afmlab.exe", newBinary)
	} else {
		archive = buildTarGz(t, "afmlab", newBinary)
	}
	sum := sha256.Sum256(archive)
	goodSums := fmt.Sprintf("%s  %s\n", hex.EncodeToString(sum[:]), asset)

	newServer := func(t *testing.T, tag, checksums string, serveAssets bool) *httptest.Server {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/repos/abhisek/afmlab/releases/latest":
				_, _ = fmt.Fprintf(w, `{"tag_name":%q}`, tag)
			case "/abhisek/afmlab/releases/download/" + tag + "/" + asset:
				if serveAssets {
					_, _ = w.Write(archive)
					return
				}
				w.WriteHeader(http.StatusNotFound)
			case "/abhisek/afmlab/releases/download/" + tag + "/checksums.txt":
				_, _ = w.Write([]byte(checksums))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		t.Cleanup(server.Close)
		return server
	}

	t.Run("happy path", func(t *testing.T) {
		execPath := filepath.Join(t.TempDir(), "afmlab")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0755))

		server := newServer(t, "v2.0.0", goodSums, true)
		c := NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)

		var stages []string
		err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, newBinary, got)
		assert.Equal(t, []string{StageCheck, StageDownload, StageVerify, StageExtract, StageApply, StageDone}, stages)
	})

	t.Run("dev build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: DevVersion}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		server := newServer(t, "v1.0.0", goodSums, true)
		err := NewChecker(WithBaseURL(server.URL)).Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		server := newServer(t, "v2.0.0", strings.Repeat("0", 64)+"  "+asset+"\n", true)
		c := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
		err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("download failure", func(t *testing.T) {
		server := newServer(t, "v2.0.0", goodSums, false)
		c := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
		err := c.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorContains(t, err, "download archive")
	})
}

func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Typeflag: tar.TypeReg,
		Size:     int64(len(content)),
		Mode:     0755,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func buildZip(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
