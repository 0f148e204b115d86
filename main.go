package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/ximi-ai/lofi-creation-mcp/configs"
	"github.com/ximi-ai/lofi-creation-mcp/pkg/media"
)

func main() {
	var (
		port        string
		outputDir   string
		keepScratch bool
		verbose     bool
	)
	flag.StringVar(&port, "port", ":18061", "端口")
	flag.StringVar(&outputDir, "output-dir", "", "产物输出目录（默认向上查找宿主的 output 目录）")
	flag.BoolVar(&keepScratch, "keep-scratch", false, "保留每次请求的 scratch 目录（调试用）")
	flag.BoolVar(&verbose, "verbose", false, "输出 ffmpeg 详细日志")
	flag.Parse()

	configs.InitOutputDir(outputDir)
	configs.InitKeepScratch(keepScratch)
	configs.InitVerbose(verbose)

	if err := media.RequireTools(); err != nil {
		logrus.Warnf("%v，合成请求将会失败", err)
	}

	logrus.Infof("产物输出目录: %s", configs.GetOutputPath())

	// 初始化服务
	lofiService := NewLofiService()

	// 创建并启动应用服务器
	appServer := NewAppServer(lofiService)
	if err := appServer.Start(port); err != nil {
		logrus.Fatalf("failed to run server: %v", err)
	}
}
