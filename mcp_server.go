package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

// MCP 工具参数结构体定义

// CreateLofiArgs 合成 lofi 视频的参数
type CreateLofiArgs struct {
	VideoStr        string  `json:"video_str" jsonschema:"视频来源：直链 URL、视频网站页面 URL 或本地文件路径"`
	AudioStr        string  `json:"audio_str" jsonschema:"音频来源：直链 URL、视频网站页面 URL 或本地文件路径"`
	DurationSeconds float64 `json:"duration_seconds" jsonschema:"输出视频时长（秒），必须为正数"`
}

// ProbeDurationArgs 探测媒体时长的参数
type ProbeDurationArgs struct {
	Path string `json:"path" jsonschema:"本地媒体文件路径"`
}

// StringPassArgs 字符串透传的参数
type StringPassArgs struct {
	String string `json:"string" jsonschema:"从其它节点接入的字符串（URL/路径/文本），原样输出"`
}

// StringInputArgs 字符串输入的参数
type StringInputArgs struct {
	Value string `json:"value" jsonschema:"输入的字符串（URL/路径/文本）"`
}

// InitMCPServer 初始化 MCP Server
func InitMCPServer(appServer *AppServer) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "lofi-creation-mcp",
			Version: "1.0.0",
		},
		nil,
	)

	registerTools(server, appServer)

	return server
}

// registerTools 注册所有 MCP 工具
func registerTools(server *mcp.Server, appServer *AppServer) {
	// 工具 1: 合成 lofi 视频
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "create_lofi_video",
			Description: "下载/读取视频和音频素材，把视频循环或裁剪到目标时长后合入音轨，返回产物的本地路径",
		},
		func(ctx context.Context, req *mcp.CallToolRequest, args CreateLofiArgs) (*mcp.CallToolResult, any, error) {
			result := appServer.handleCreateLofi(ctx, map[string]interface{}{
				"video_str":        args.VideoStr,
				"audio_str":        args.AudioStr,
				"duration_seconds": args.DurationSeconds,
			})
			return convertToMCPResult(result), nil, nil
		},
	)

	// 工具 2: 探测媒体时长
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "probe_media_duration",
			Description: "探测本地媒体文件的时长（秒）",
		},
		func(ctx context.Context, req *mcp.CallToolRequest, args ProbeDurationArgs) (*mcp.CallToolResult, any, error) {
			result := appServer.handleProbeDuration(ctx, map[string]interface{}{
				"path": args.Path,
			})
			return convertToMCPResult(result), nil, nil
		},
	)

	// 工具 3: 字符串透传
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "string_pass",
			Description: "字符串透传节点（URL/路径/文本），原样输出输入",
		},
		func(ctx context.Context, req *mcp.CallToolRequest, args StringPassArgs) (*mcp.CallToolResult, any, error) {
			result := appServer.handleStringPass(ctx, args.String)
			return convertToMCPResult(result), nil, nil
		},
	)

	// 工具 4: 字符串输入
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "string_input",
			Description: "字符串输入节点，输出填入的字符串供其它节点使用",
		},
		func(ctx context.Context, req *mcp.CallToolRequest, args StringInputArgs) (*mcp.CallToolResult, any, error) {
			result := appServer.handleStringPass(ctx, args.Value)
			return convertToMCPResult(result), nil, nil
		},
	)

	logrus.Infof("Registered %d MCP tools", 4)
}

// convertToMCPResult 将自定义的 MCPToolResult 转换为官方 SDK 的格式
func convertToMCPResult(result *MCPToolResult) *mcp.CallToolResult {
	var contents []mcp.Content
	for _, c := range result.Content {
		if c.Type == "text" {
			contents = append(contents, &mcp.TextContent{Text: c.Text})
		}
	}

	return &mcp.CallToolResult{
		Content: contents,
		IsError: result.IsError,
	}
}
