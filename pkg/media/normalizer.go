package media

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Normalizer 把视频归一化成精确的目标时长：源视频不够长就整段
// 循环再裁剪，够长就直接裁剪。
type Normalizer struct {
	prober     Prober
	transcoder Transcoder
}

// NewNormalizer 创建归一化器
func NewNormalizer(prober Prober, transcoder Transcoder) *Normalizer {
	return &Normalizer{prober: prober, transcoder: transcoder}
}

// Normalize 生成时长恰好为 targetSeconds 的视频并返回路径，
// 中间产物写入 scratchDir。时长比较和切点都按浮点秒计算，
// 实际切点由 ffmpeg 按帧对齐，误差在源视频一帧以内。
func (n *Normalizer) Normalize(videoPath string, targetSeconds float64, scratchDir string) (string, error) {
	if targetSeconds <= 0 {
		return "", errors.Wrapf(ErrInvalidInput, "target duration %.3f", targetSeconds)
	}

	sourceSeconds, err := n.prober.Duration(videoPath)
	if err != nil {
		return "", err
	}
	// 零时长素材循环是未定义行为，必须在这里挡掉
	if sourceSeconds <= 0 {
		return "", errors.Wrapf(ErrInvalidInput, "source video duration %.3f, cannot loop", sourceSeconds)
	}

	loops := 1
	if sourceSeconds < targetSeconds {
		loops = int(math.Ceil(targetSeconds / sourceSeconds))
	}

	logrus.Infof("归一化视频: 源时长 %.3fs, 目标 %.3fs, 循环 %d 次", sourceSeconds, targetSeconds, loops)

	outputPath := filepath.Join(scratchDir, fmt.Sprintf("normalized_%d.mp4", time.Now().UnixNano()))
	if err := n.transcoder.LoopTrim(videoPath, loops, targetSeconds, outputPath); err != nil {
		return "", err
	}

	return outputPath, nil
}
