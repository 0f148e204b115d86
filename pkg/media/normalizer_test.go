package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	seconds float64
	err     error
	calls   int
}

func (f *fakeProber) Duration(path string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.seconds, nil
}

type loopCall struct {
	videoPath     string
	loops         int
	targetSeconds float64
	outputPath    string
}

type muxCall struct {
	videoPath     string
	audioPath     string
	targetSeconds float64
	outputPath    string
}

type fakeTranscoder struct {
	loopCalls []loopCall
	muxCalls  []muxCall
	loopErr   error
	muxErr    error

	// writeOutput 模拟外部工具已经写出半成品再失败的情况
	writeOutput bool
}

func (f *fakeTranscoder) LoopTrim(videoPath string, loops int, targetSeconds float64, outputPath string) error {
	f.loopCalls = append(f.loopCalls, loopCall{videoPath, loops, targetSeconds, outputPath})
	if f.writeOutput {
		os.WriteFile(outputPath, []byte("partial"), 0644)
	}
	return f.loopErr
}

func (f *fakeTranscoder) Mux(videoPath, audioPath string, targetSeconds float64, outputPath string) error {
	f.muxCalls = append(f.muxCalls, muxCall{videoPath, audioPath, targetSeconds, outputPath})
	if f.writeOutput {
		os.WriteFile(outputPath, []byte("partial"), 0644)
	}
	return f.muxErr
}

func TestNormalizeLoopCount(t *testing.T) {
	cases := []struct {
		name      string
		source    float64
		target    float64
		wantLoops int
	}{
		{"裁剪不循环", 30, 10, 1},
		{"恰好等长", 10, 10, 1},
		{"循环三次", 10, 25, 3},
		{"整倍数", 10, 30, 3},
		{"多出一帧就进一", 10, 30.1, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prober := &fakeProber{seconds: tc.source}
			transcoder := &fakeTranscoder{}
			n := NewNormalizer(prober, transcoder)

			got, err := n.Normalize("/src/clip.mp4", tc.target, t.TempDir())
			require.NoError(t, err)
			require.Len(t, transcoder.loopCalls, 1)

			call := transcoder.loopCalls[0]
			require.Equal(t, "/src/clip.mp4", call.videoPath)
			require.Equal(t, tc.wantLoops, call.loops)
			require.InDelta(t, tc.target, call.targetSeconds, 1e-9)
			require.Equal(t, got, call.outputPath)
			require.True(t, strings.HasPrefix(filepath.Base(got), "normalized_"))
		})
	}
}

func TestNormalizeZeroSourceDuration(t *testing.T) {
	prober := &fakeProber{seconds: 0}
	transcoder := &fakeTranscoder{}
	n := NewNormalizer(prober, transcoder)

	scratchDir := t.TempDir()
	_, err := n.Normalize("/src/clip.mp4", 10, scratchDir)
	require.ErrorIs(t, err, ErrInvalidInput)

	// 不能调用转码器，也不能留下任何输出文件
	require.Empty(t, transcoder.loopCalls)
	entries, err := os.ReadDir(scratchDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestNormalizeInvalidTarget(t *testing.T) {
	for _, target := range []float64{0, -5} {
		prober := &fakeProber{seconds: 10}
		transcoder := &fakeTranscoder{}
		n := NewNormalizer(prober, transcoder)

		_, err := n.Normalize("/src/clip.mp4", target, t.TempDir())
		require.ErrorIs(t, err, ErrInvalidInput)
		require.Zero(t, prober.calls)
		require.Empty(t, transcoder.loopCalls)
	}
}

func TestNormalizeProbeError(t *testing.T) {
	prober := &fakeProber{err: ErrProbe}
	transcoder := &fakeTranscoder{}
	n := NewNormalizer(prober, transcoder)

	_, err := n.Normalize("/src/clip.mp4", 10, t.TempDir())
	require.ErrorIs(t, err, ErrProbe)
	require.Empty(t, transcoder.loopCalls)
}

func TestNormalizeTranscodeError(t *testing.T) {
	prober := &fakeProber{seconds: 10}
	transcoder := &fakeTranscoder{loopErr: ErrEncode}
	n := NewNormalizer(prober, transcoder)

	_, err := n.Normalize("/src/clip.mp4", 25, t.TempDir())
	require.ErrorIs(t, err, ErrEncode)
}
