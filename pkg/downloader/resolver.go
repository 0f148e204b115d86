package downloader

import (
	"context"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// SourceKind 媒体引用的分类结果。每个引用只分类一次，
// 之后只走对应的一种解析策略，策略之间没有回退链。
type SourceKind int

const (
	// KindLocal 本地文件路径
	KindLocal SourceKind = iota

	// KindDirectMedia 直链媒体 URL（URL 的 path 以已知媒体扩展名结尾）
	KindDirectMedia

	// KindHostedPage 托管页面 URL，需要页面提取才能拿到媒体流
	KindHostedPage
)

// directMediaExts 可直接 HTTP 下载的媒体扩展名
var directMediaExts = map[string]bool{
	".mp4": true, ".mov": true, ".mkv": true, ".avi": true, ".webm": true,
	".mp3": true, ".wav": true, ".m4a": true, ".aac": true, ".flac": true,
	".ogg": true, ".opus": true,
}

// Classify 把媒体引用分类为本地路径/直链媒体/托管页面
func Classify(reference string) SourceKind {
	lower := strings.ToLower(reference)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return KindLocal
	}
	if directMediaExts[guessURLExt(reference)] {
		return KindDirectMedia
	}
	return KindHostedPage
}

// guessURLExt 从 URL 的 path 部分取扩展名，忽略 query
func guessURLExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(path.Ext(u.Path))
}

// Resolver 把媒体引用（URL 或本地路径）解析成本地文件
type Resolver struct {
	downloader *MediaDownloader
	extractor  *Extractor
}

// NewResolver 创建解析器
func NewResolver() *Resolver {
	return &Resolver{
		downloader: NewMediaDownloader(),
		extractor:  NewExtractor(),
	}
}

// Resolve 解析引用并返回本地文件路径。
// destDir 是本次请求独立的 scratch 目录，label 用于生成文件名（video/audio）。
// 每次调用最多向 destDir 写入一个文件；本地路径原样返回，不做复制，
// 所以对同一个本地引用的解析是幂等的。
func (r *Resolver) Resolve(ctx context.Context, reference, destDir, label string) (string, error) {
	if reference == "" {
		return "", errors.Errorf("%s reference is empty", label)
	}

	if u, err := url.Parse(reference); err == nil && len(u.Scheme) > 1 &&
		u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "file" {
		return "", errors.Errorf("unsupported URL scheme: %s", u.Scheme)
	}

	switch Classify(reference) {
	case KindLocal:
		localPath := strings.TrimPrefix(reference, "file://")
		if _, err := os.Stat(localPath); err != nil {
			return "", errors.Wrapf(ErrNotFound, "local path %s", localPath)
		}
		return localPath, nil

	case KindDirectMedia:
		return r.downloader.Download(ctx, reference, destDir, label)

	default:
		return r.extractor.Extract(ctx, reference, destDir, label)
	}
}
