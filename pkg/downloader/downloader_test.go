package downloader

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// mp4Header 最小的 mp4 ftyp 文件头，足够通过类型识别
func mp4Header() []byte {
	return []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
		'm', 'p', '4', '2', 0x00, 0x00, 0x00, 0x00,
		'm', 'p', '4', '2', 'i', 's', 'o', 'm',
	}
}

func TestDownloadDirect(t *testing.T) {
	payload := append(mp4Header(), bytes.Repeat([]byte{0x00}, 2048)...)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewMediaDownloader()

	got, err := d.Download(context.Background(), srv.URL+"/clip.mp4", dir, "video")
	require.NoError(t, err)
	require.Equal(t, dir, filepath.Dir(got))
	require.True(t, strings.HasPrefix(filepath.Base(got), "video_"))
	require.Equal(t, ".mp4", filepath.Ext(got))

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	require.Equal(t, payload, data)
}

func TestDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	d := NewMediaDownloader()

	_, err := d.Download(context.Background(), srv.URL+"/missing.mp4", t.TempDir(), "video")
	require.ErrorIs(t, err, ErrDownload)
	require.Contains(t, err.Error(), "404")
}

func TestDownloadNotMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not a media file</html>"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewMediaDownloader()

	_, err := d.Download(context.Background(), srv.URL+"/fake.mp4", dir, "video")
	require.ErrorIs(t, err, ErrDownload)

	// 识别失败时不能留下任何文件
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestDownloadUniqueNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(mp4Header())
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewMediaDownloader()

	got1, err := d.Download(context.Background(), srv.URL+"/a.mp4", dir, "video")
	require.NoError(t, err)
	got2, err := d.Download(context.Background(), srv.URL+"/b.mp4", dir, "video")
	require.NoError(t, err)
	require.NotEqual(t, got1, got2)
}
