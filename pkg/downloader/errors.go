package downloader

import "github.com/pkg/errors"

// 解析/下载阶段的错误类别，调用方用 errors.Is 判断。
var (
	// ErrNotFound 本地路径不存在
	ErrNotFound = errors.New("local media path not found")

	// ErrDownload 直链 HTTP 下载失败
	ErrDownload = errors.New("media download failed")

	// ErrExtraction 页面提取失败，找不到可下载的媒体流
	ErrExtraction = errors.New("no extractable media stream")
)
