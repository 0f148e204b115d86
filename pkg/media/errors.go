package media

import "github.com/pkg/errors"

// 探测/归一化/合流阶段的错误类别，调用方用 errors.Is 判断。
var (
	// ErrProbe 时长探测失败或输出不可解析
	ErrProbe = errors.New("media probe failed")

	// ErrInvalidInput 时长不合法（非正数或不可用）
	ErrInvalidInput = errors.New("invalid media duration")

	// ErrEncode 外部转码工具非零退出
	ErrEncode = errors.New("media encode failed")
)
