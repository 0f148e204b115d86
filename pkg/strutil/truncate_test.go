package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "空字符串", input: "", want: 0},
		{name: "纯英文", input: "hello", want: 5},
		{name: "纯中文", input: "你好世界", want: 8},
		{name: "中英混合", input: "clip视频", want: 8},
		{name: "全角符号", input: "！？", want: 4},
		{name: "半角符号", input: "!?", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayWidth(tt.input))
		})
	}
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{name: "不超长原样返回", input: "short.mp4", maxWidth: 20, want: "short.mp4"},
		{name: "恰好等长", input: "abcde", maxWidth: 5, want: "abcde"},
		{name: "英文超长截断", input: "abcdefghij", maxWidth: 8, want: "abcde..."},
		{name: "中文按显示宽度截断", input: "一二三四五六", maxWidth: 9, want: "一二三..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateForLog(tt.input, tt.maxWidth))
		})
	}
}
