package media

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Muxer 把归一化后的视频流和音频轨合成一个容器文件，
// 写入显式配置的输出目录。
type Muxer struct {
	transcoder Transcoder
	outputDir  string
}

// NewMuxer 创建 Muxer，outputDir 由调用方传入而不是读全局常量
func NewMuxer(transcoder Transcoder, outputDir string) *Muxer {
	return &Muxer{transcoder: transcoder, outputDir: outputDir}
}

// Mux 合流并返回产物的绝对路径。音频比视频短会循环补齐，
// 比视频长会被裁剪。失败时删除半成品，不会晋升到输出目录。
func (m *Muxer) Mux(videoPath, audioPath string, targetSeconds float64) (string, error) {
	if err := os.MkdirAll(m.outputDir, 0755); err != nil {
		return "", errors.Wrapf(ErrEncode, "create output dir: %v", err)
	}

	outputPath := filepath.Join(m.outputDir, fmt.Sprintf("lofi_%s.mp4", uuid.NewString()))

	if err := m.transcoder.Mux(videoPath, audioPath, targetSeconds, outputPath); err != nil {
		os.Remove(outputPath)
		return "", err
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return outputPath, nil
	}

	logrus.Infof("合流完成: %s", absPath)
	return absPath, nil
}
