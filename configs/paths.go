package configs

import (
	"os"
	"path/filepath"
)

const (
	// ScratchDirName 下载与中间文件的 scratch 根目录名
	ScratchDirName = "lofi_creation_scratch"

	// OutputSubDir 宿主 output 目录下的产物子目录名
	OutputSubDir = "lofi_creation"
)

var outputDir = ""

// InitOutputDir 设置产物输出目录。传空串时走默认解析：
// 向上查找宿主已有的 output 目录。
func InitOutputDir(dir string) {
	if dir == "" {
		dir = resolveDefaultOutputDir()
	}
	outputDir = dir
}

// GetOutputPath 返回最终产物的输出目录
func GetOutputPath() string {
	if outputDir == "" {
		outputDir = resolveDefaultOutputDir()
	}
	return outputDir
}

// GetScratchPath 返回 scratch 根目录，每次请求在其下分配独立子目录
func GetScratchPath() string {
	return filepath.Join(os.TempDir(), ScratchDirName)
}

// resolveDefaultOutputDir 从当前目录向上查找已存在的 output 目录，
// 找到则使用 output/lofi_creation；找不到退回当前目录下的 outputs。
func resolveDefaultOutputDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "outputs"
	}

	for p := dir; ; p = filepath.Dir(p) {
		out := filepath.Join(p, "output")
		if info, statErr := os.Stat(out); statErr == nil && info.IsDir() {
			return filepath.Join(out, OutputSubDir)
		}
		if p == filepath.Dir(p) {
			break
		}
	}

	return filepath.Join(dir, "outputs")
}
