package downloader

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/h2non/filetype"
	"github.com/pkg/errors"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// MediaDownloader 直链媒体下载器
type MediaDownloader struct {
	httpClient *http.Client
}

// NewMediaDownloader 创建直链下载器
func NewMediaDownloader() *MediaDownloader {
	return &MediaDownloader{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Download 下载直链媒体到 destDir 并返回本地路径。
// 先读文件头识别类型，内容必须是视频或音频，剩余字节流式写盘。
func (d *MediaDownloader) Download(ctx context.Context, mediaURL, destDir, label string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", errors.Wrapf(ErrDownload, "create dest dir: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", errors.Wrapf(ErrDownload, "create request: %v", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(ErrDownload, "fetch %s: %v", mediaURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Wrapf(ErrDownload, "fetch %s: status %d", mediaURL, resp.StatusCode)
	}

	header := make([]byte, 262)
	n, err := io.ReadFull(resp.Body, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", errors.Wrapf(ErrDownload, "read response: %v", err)
	}
	header = header[:n]

	if !filetype.IsVideo(header) && !filetype.IsAudio(header) {
		return "", errors.Wrapf(ErrDownload, "%s is not a video or audio file", mediaURL)
	}

	ext := guessURLExt(mediaURL)
	if ext == "" {
		if kind, matchErr := filetype.Match(header); matchErr == nil && kind.Extension != "" {
			ext = "." + kind.Extension
		}
	}

	filePath := filepath.Join(destDir, generateFileName(mediaURL, label, ext))

	f, err := os.Create(filePath)
	if err != nil {
		return "", errors.Wrapf(ErrDownload, "create file: %v", err)
	}
	defer f.Close()

	if _, err := f.Write(header); err != nil {
		os.Remove(filePath)
		return "", errors.Wrapf(ErrDownload, "write file: %v", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(filePath)
		return "", errors.Wrapf(ErrDownload, "write file: %v", err)
	}

	return filePath, nil
}

// generateFileName 用 URL 哈希 + 时间戳生成唯一文件名
func generateFileName(mediaURL, label, ext string) string {
	hash := sha256.Sum256([]byte(mediaURL))
	shortHash := fmt.Sprintf("%x", hash)[:16]
	return fmt.Sprintf("%s_%s_%d%s", label, shortHash, time.Now().Unix(), ext)
}
