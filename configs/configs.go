package configs

var (
	keepScratch = false
	verbose     = false
)

// InitKeepScratch 设置是否保留每次请求的 scratch 目录（调试用）。
// 默认在管线结束后清理。
func InitKeepScratch(keep bool) {
	keepScratch = keep
}

// GetKeepScratch 获取 scratch 保留开关
func GetKeepScratch() bool {
	return keepScratch
}

// InitVerbose 设置是否输出 ffmpeg 详细日志
func InitVerbose(v bool) {
	verbose = v
}

// GetVerbose 获取 verbose 开关
func GetVerbose() bool {
	return verbose
}
