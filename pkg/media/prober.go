package media

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Prober 媒体时长探测能力（同步阻塞），测试里用假实现替换。
type Prober interface {
	// Duration 返回媒体文件的时长（秒）
	Duration(path string) (float64, error)
}

// FFmpegProber 基于 ffprobe 的探测实现
type FFmpegProber struct{}

// NewFFmpegProber 创建探测器
func NewFFmpegProber() *FFmpegProber {
	return &FFmpegProber{}
}

// Duration 调用 ffprobe 并解析时长
func (p *FFmpegProber) Duration(path string) (float64, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.Wrapf(ErrProbe, "probe %s: %v", path, err)
	}
	return parseProbeDuration(raw)
}

// probeResult ffprobe JSON 输出里跟时长相关的字段
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

// parseProbeDuration 解析 ffprobe 输出。优先用 format.duration，
// 缺失时退回第一个带时长的流。
func parseProbeDuration(raw string) (float64, error) {
	var result probeResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return 0, errors.Wrapf(ErrProbe, "parse probe output: %v", err)
	}

	if s := strings.TrimSpace(result.Format.Duration); s != "" {
		d, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrProbe, "parse format duration %q: %v", s, err)
		}
		return d, nil
	}

	for _, stream := range result.Streams {
		s := strings.TrimSpace(stream.Duration)
		if s == "" {
			continue
		}
		if d, err := strconv.ParseFloat(s, 64); err == nil {
			return d, nil
		}
	}

	return 0, errors.Wrap(ErrProbe, "no duration in probe output")
}
