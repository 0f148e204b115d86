package downloader

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ytDLPBin 页面提取工具
const ytDLPBin = "yt-dlp"

// Extractor 托管页面下载器，委托 yt-dlp 定位并下载页面里
// 质量最好的直链媒体流。
type Extractor struct{}

// NewExtractor 创建页面提取下载器
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract 从托管页面下载媒体并返回本地路径
func (e *Extractor) Extract(ctx context.Context, pageURL, destDir, label string) (string, error) {
	if _, err := exec.LookPath(ytDLPBin); err != nil {
		return "", errors.Wrapf(ErrExtraction, "%s not found on PATH", ytDLPBin)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", errors.Wrapf(ErrExtraction, "create dest dir: %v", err)
	}

	outputTemplate := filepath.Join(destDir, label+".%(ext)s")
	cmd := exec.CommandContext(ctx, ytDLPBin,
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"--print", "after_move:filepath",
		"--output", outputTemplate,
		pageURL,
	)

	out, err := cmd.Output()
	if err != nil {
		detail := err.Error()
		if exitErr, ok := err.(*exec.ExitError); ok {
			if stderr := strings.TrimSpace(string(exitErr.Stderr)); stderr != "" {
				detail = stderr
			}
		}
		return "", errors.Wrapf(ErrExtraction, "%s: %s", pageURL, detail)
	}

	// --print 每下载一个条目输出一行最终路径，只取第一行
	filePath := strings.TrimSpace(strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)[0])
	if filePath == "" {
		return "", errors.Wrapf(ErrExtraction, "%s: no media stream located", pageURL)
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", errors.Wrapf(ErrExtraction, "%s: downloaded file missing", pageURL)
	}

	return filePath, nil
}
