package strutil

import "github.com/mattn/go-runewidth"

// DisplayWidth 计算字符串的终端显示宽度
// 规则：中文、全角符号等宽字符算2列，ASCII字符算1列
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateForLog 把过长的字符串截断到 maxWidth 个显示宽度，
// 截断时以 "..." 结尾。URL 和路径可能很长，日志里只需要前缀。
func TruncateForLog(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "...")
}
