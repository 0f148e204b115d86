package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ximi-ai/lofi-creation-mcp/configs"
	"github.com/ximi-ai/lofi-creation-mcp/pkg/downloader"
	"github.com/ximi-ai/lofi-creation-mcp/pkg/media"
	"github.com/ximi-ai/lofi-creation-mcp/pkg/strutil"
)

// 管线各阶段的能力接口，测试里用假实现替换。

type sourceResolver interface {
	Resolve(ctx context.Context, reference, destDir, label string) (string, error)
}

type videoNormalizer interface {
	Normalize(videoPath string, targetSeconds float64, scratchDir string) (string, error)
}

type videoMuxer interface {
	Mux(videoPath, audioPath string, targetSeconds float64) (string, error)
}

// LofiService lofi 视频合成服务
type LofiService struct {
	resolver      sourceResolver
	normalizer    videoNormalizer
	muxer         videoMuxer
	prober        media.Prober
	webhookSender *WebhookSender
}

// NewLofiService 按默认实现组装服务：HTTP/yt-dlp 下载 + ffmpeg 转码
func NewLofiService() *LofiService {
	transcoder := media.NewFFmpegTranscoder(configs.GetVerbose())
	prober := media.NewFFmpegProber()

	return &LofiService{
		resolver:      downloader.NewResolver(),
		normalizer:    media.NewNormalizer(prober, transcoder),
		muxer:         media.NewMuxer(transcoder, configs.GetOutputPath()),
		prober:        prober,
		webhookSender: NewWebhookSender(),
	}
}

// CreateLofiRequest 合成请求
type CreateLofiRequest struct {
	VideoRef        string  `json:"video_str" binding:"required"`
	AudioRef        string  `json:"audio_str" binding:"required"`
	DurationSeconds float64 `json:"duration_seconds" binding:"required"`
	Webhook         string  `json:"webhook,omitempty"` // 可选：完成后回调的 URL
}

// CreateLofiResponse 合成响应
type CreateLofiResponse struct {
	VideoPath       string  `json:"video_path"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// CreateLofi 执行完整管线：解析视频 → 解析音频 → 归一化 → 合流。
// 任何一步失败立即中止并带上出错阶段，不返回半成品；内部不做重试。
func (s *LofiService) CreateLofi(ctx context.Context, req *CreateLofiRequest) (*CreateLofiResponse, error) {
	if req.DurationSeconds <= 0 {
		return nil, errors.Wrapf(media.ErrInvalidInput, "duration_seconds %.3f", req.DurationSeconds)
	}

	scratchDir, err := newScratchDir()
	if err != nil {
		return nil, err
	}
	if !configs.GetKeepScratch() {
		defer os.RemoveAll(scratchDir)
	}

	logrus.Infof("开始合成: video=%s audio=%s duration=%.1fs",
		truncateRef(req.VideoRef), truncateRef(req.AudioRef), req.DurationSeconds)

	videoLocal, err := s.resolver.Resolve(ctx, req.VideoRef, scratchDir, "video")
	if err != nil {
		return nil, errors.WithMessage(err, "resolve video")
	}

	audioLocal, err := s.resolver.Resolve(ctx, req.AudioRef, scratchDir, "audio")
	if err != nil {
		return nil, errors.WithMessage(err, "resolve audio")
	}

	normalized, err := s.normalizer.Normalize(videoLocal, req.DurationSeconds, scratchDir)
	if err != nil {
		return nil, errors.WithMessage(err, "normalize video")
	}

	outputPath, err := s.muxer.Mux(normalized, audioLocal, req.DurationSeconds)
	if err != nil {
		return nil, errors.WithMessage(err, "mux output")
	}

	return &CreateLofiResponse{
		VideoPath:       outputPath,
		DurationSeconds: req.DurationSeconds,
	}, nil
}

// ProbeDuration 探测本地媒体文件的时长（秒）
func (s *LofiService) ProbeDuration(ctx context.Context, path string) (*ProbeResponse, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(downloader.ErrNotFound, "local path %s", path)
	}

	seconds, err := s.prober.Duration(path)
	if err != nil {
		return nil, err
	}

	return &ProbeResponse{Path: path, DurationSeconds: seconds}, nil
}

// PassString 字符串透传节点，原样返回输入
func (s *LofiService) PassString(value string) string {
	return value
}

// newScratchDir 为单次请求分配独立的 scratch 子目录，
// 并发请求不会在临时文件名上互相踩踏。
func newScratchDir() (string, error) {
	dir := filepath.Join(configs.GetScratchPath(),
		fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), uuid.NewString()[:8]))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "create scratch dir")
	}
	return dir, nil
}

// truncateRef 日志里把过长的引用截断到 60 个显示宽度
func truncateRef(ref string) string {
	return strutil.TruncateForLog(ref, 60)
}
