package media

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Transcoder 外部转码工具的同步能力接口
type Transcoder interface {
	// LoopTrim 把视频重复 loops 次后裁剪到 targetSeconds，输出到 outputPath
	LoopTrim(videoPath string, loops int, targetSeconds float64, outputPath string) error

	// Mux 把视频流和音频轨合成一个容器，音频循环/裁剪到 targetSeconds
	Mux(videoPath, audioPath string, targetSeconds float64, outputPath string) error
}

// FFmpegTranscoder 基于 ffmpeg 的转码实现
type FFmpegTranscoder struct {
	verbose bool
}

// NewFFmpegTranscoder 创建转码器
func NewFFmpegTranscoder(verbose bool) *FFmpegTranscoder {
	return &FFmpegTranscoder{verbose: verbose}
}

// LoopTrim 视频重复 + 裁剪。重复用 concat demuxer 做流级拼接，
// 最后统一重编码（libx264/yuv420p）裁到目标时长。
func (t *FFmpegTranscoder) LoopTrim(videoPath string, loops int, targetSeconds float64, outputPath string) error {
	stream, cleanup, err := t.loopTrimStream(videoPath, loops, targetSeconds, outputPath)
	if err != nil {
		return err
	}
	defer cleanup()

	if t.verbose {
		logrus.Infof("ffmpeg loop trim: loops=%d t=%.3f out=%s", loops, targetSeconds, outputPath)
	}

	if err := stream.Run(); err != nil {
		return errors.Wrapf(ErrEncode, "loop trim: %v", err)
	}
	return nil
}

// loopTrimStream 组装 LoopTrim 的 ffmpeg 命令，cleanup 负责删除
// 中间的 concat 列表文件。
func (t *FFmpegTranscoder) loopTrimStream(videoPath string, loops int, targetSeconds float64, outputPath string) (*ffmpeg.Stream, func(), error) {
	input := ffmpeg.Input(videoPath)
	cleanup := func() {}

	if loops > 1 {
		listPath, err := writeConcatList(videoPath, loops, filepath.Dir(outputPath))
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { os.Remove(listPath) }

		input = ffmpeg.Input(listPath, ffmpeg.KwArgs{
			"f":    "concat",
			"safe": 0,
		})
	}

	stream := input.Output(outputPath, ffmpeg.KwArgs{
		"t":       formatSeconds(targetSeconds),
		"map":     "0:v:0",
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
		"preset":  "veryfast",
		"crf":     20,
	}).OverWriteOutput().ErrorToStdOut()

	return stream, cleanup, nil
}

// Mux 视频流直接复制（长度已经等于目标时长），音频用 -stream_loop -1
// 无限循环，由 -t 截断，短音轨补齐、长音轨裁剪都走同一条路。
func (t *FFmpegTranscoder) Mux(videoPath, audioPath string, targetSeconds float64, outputPath string) error {
	if t.verbose {
		logrus.Infof("ffmpeg mux: video=%s audio=%s t=%.3f", videoPath, audioPath, targetSeconds)
	}

	if err := t.muxStream(videoPath, audioPath, targetSeconds, outputPath).Run(); err != nil {
		return errors.Wrapf(ErrEncode, "mux: %v", err)
	}
	return nil
}

// muxStream 组装 Mux 的 ffmpeg 命令。流选择必须放在输入节点上
// （Get），不能再叠一个 map kwarg：多输入时 ffmpeg-go 会自动补
// -map 0 -map 1，kwarg 会让每条流在容器里出现两次。选 v:0/a:0
// 也顺便挡掉 mp3 封面图那类附带流。
func (t *FFmpegTranscoder) muxStream(videoPath, audioPath string, targetSeconds float64, outputPath string) *ffmpeg.Stream {
	video := ffmpeg.Input(videoPath)
	audio := ffmpeg.Input(audioPath, ffmpeg.KwArgs{
		"stream_loop": -1,
	})

	return ffmpeg.Output(
		[]*ffmpeg.Stream{video.Get("v:0"), audio.Get("a:0")},
		outputPath,
		ffmpeg.KwArgs{
			"t":   formatSeconds(targetSeconds),
			"c:v": "copy",
			"c:a": "aac",
			"b:a": "192k",
		},
	).OverWriteOutput().ErrorToStdOut()
}

// RequireTools 检查 ffmpeg/ffprobe 是否在 PATH 上
func RequireTools() error {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			return errors.Errorf("%s not found on PATH, please install ffmpeg", bin)
		}
	}
	return nil
}

// writeConcatList 生成 concat demuxer 的列表文件，源视频重复 loops 行
func writeConcatList(videoPath string, loops int, dir string) (string, error) {
	absPath, err := filepath.Abs(videoPath)
	if err != nil {
		return "", errors.Wrapf(ErrEncode, "resolve path: %v", err)
	}

	var b strings.Builder
	line := fmt.Sprintf("file '%s'\n", filepath.ToSlash(absPath))
	for i := 0; i < loops; i++ {
		b.WriteString(line)
	}

	listPath := filepath.Join(dir, fmt.Sprintf("concat_%d.txt", time.Now().UnixNano()))
	if err := os.WriteFile(listPath, []byte(b.String()), 0644); err != nil {
		return "", errors.Wrapf(ErrEncode, "write concat list: %v", err)
	}
	return listPath, nil
}

func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.3f", seconds)
}
