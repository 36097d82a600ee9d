package selfupdate

import (
	"archive/tar"
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"darwin", "arm64", "gradewise_Darwin_all.tar.gz", false},
		{"darwin", "amd64", "gradewise_Darwin_all.tar.gz", false},
		{"linux", "amd64", "gradewise_Linux_x86_64.tar.gz", false},
		{"linux", "386", "gradewise_Linux_i386.tar.gz", false},
		{"windows", "arm64", "gradewise_Windows_arm64.zip", false},
		{"freebsd", "amd64", "", true},
		{"linux", "mips", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := assetFor("gradewise", tt.goos, tt.goarch)
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
	got := parseChecksums([]byte("abc123  a.tar.gz\nbadline\n  \nfoo  bar  baz\ndef456  b.zip\n"))
	assert.Equal(t, map[string]string{"a.tar.gz": "abc123", "b.zip": "def456"}, got)
	assert.Empty(t, parseChecksums(nil))
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("hello world")
	sum := sha256.Sum256(data)

	assert.NoError(t, verifyChecksum(data, hex.EncodeToString(sum[:])))
	assert.ErrorIs(t, verifyChecksum(data, "00"), ErrChecksum)
}

func TestExtractBinary(t *testing.T) {
	content := []byte("#!/bin/sh\necho gradewise")

	got, err := extractBinary(buildTarGz(t, "dist/gradewise", content), "gradewise_Linux_x86_64.tar.gz", "gradewise")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = extractBinary(buildTarGz(t, "README.md", content), "gradewise_Linux_x86_64.tar.gz", "gradewise")
	assert.ErrorContains(t, err, "not found")
}

func TestReplaceFileKeepsMode(t *testing.T) {
	target := filepath.Join(t.TempDir(), "gradewise")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	require.NoError(t, replaceFile(target, []byte("new")))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCheck(t *testing.T) {
	srv := releaseServer(t, "v1.4.0", nil, "")
	c := NewChecker(WithBaseURL(srv.URL))

	res, err := c.Check(context.Background(), "1.3.9")
	require.NoError(t, err)
	assert.True(t, res.UpdateAvailable)
	assert.Equal(t, "v1.4.0", res.Latest.Tag)

	res, err = c.Check(context.Background(), "v1.4.0")
	require.NoError(t, err)
	assert.False(t, res.UpdateAvailable)

	_, err = c.Check(context.Background(), "not-a-version")
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("archive fixture is tar.gz")
	}
	content := []byte("new-gradewise-binary")
	archive := buildTarGz(t, "gradewise", content)
	sum := sha256.Sum256(archive)

	t.Run("happy path", func(t *testing.T) {
		execPath := filepath.Join(t.TempDir(), "gradewise")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0o755))

		srv := releaseServer(t, "v2.0.0", archive, hex.EncodeToString(sum[:]))
		c := NewChecker(
			WithBaseURL(srv.URL),
			WithDownloadBaseURL(srv.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)

		var stages []string
		err := c.Update(context.Background(), "v1.0.0", "", func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.Equal(t, []string{StageCheck, StageDownload, StageVerify, StageExtract, StageApply, StageDone}, stages)
	})

	t.Run("dev build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), DevVersion, "", nil)
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		srv := releaseServer(t, "v1.0.0", nil, "")
		err := NewChecker(WithBaseURL(srv.URL)).Update(context.Background(), "v1.0.0", "", nil)
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		srv := releaseServer(t, "v2.0.0", archive, "0000")
		c := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL))
		err := c.Update(context.Background(), "v1.0.0", "", nil)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("download failure", func(t *testing.T) {
		srv := releaseServer(t, "v2.0.0", nil, "")
		c := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL))
		err := c.Update(context.Background(), "v1.0.0", "", nil)
		assert.ErrorContains(t, err, "download archive")
	})
}

// releaseServer fakes the GitHub API and download host. A nil archive makes
// asset downloads return 404.
func releaseServer(t *testing.T, tag string, archive []byte, checksum string) *httptest.Server {
	t.Helper()
	asset, err := assetFor("gradewise", runtime.GOOS, runtime.GOARCH)
	require.NoError(t, err)
	download := "/abhisek/gradewise/releases/download/" + tag + "/"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/abhisek/gradewise/releases/latest":
			fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://example.com/%s"}`, tag, tag)
		case archive != nil && r.URL.Path == download+asset:
			_, _ = w.Write(archive)
		case archive != nil && r.URL.Path == download+"checksums.txt":
			fmt.Fprintf(w, "%s  %s\n", checksum, asset)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Size:     int64(len(content)),
		Mode:     0o755,
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}
