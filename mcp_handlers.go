package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// MCP 工具处理函数

// handleCreateLofi 处理合成请求
func (s *AppServer) handleCreateLofi(ctx context.Context, args map[string]interface{}) *MCPToolResult {
	videoRef, _ := args["video_str"].(string)
	audioRef, _ := args["audio_str"].(string)
	duration, _ := args["duration_seconds"].(float64)

	logrus.Infof("MCP: 合成 lofi 视频 - duration: %.1fs", duration)

	req := &CreateLofiRequest{
		VideoRef:        videoRef,
		AudioRef:        audioRef,
		DurationSeconds: duration,
	}

	result, err := s.lofiService.CreateLofi(ctx, req)
	if err != nil {
		return &MCPToolResult{
			Content: []MCPContent{{
				Type: "text",
				Text: "合成失败: " + err.Error(),
			}},
			IsError: true,
		}
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return &MCPToolResult{
			Content: []MCPContent{{
				Type: "text",
				Text: fmt.Sprintf("合成成功，但序列化失败: %v", err),
			}},
			IsError: true,
		}
	}

	return &MCPToolResult{
		Content: []MCPContent{{
			Type: "text",
			Text: string(jsonData),
		}},
	}
}

// handleProbeDuration 处理探测媒体时长
func (s *AppServer) handleProbeDuration(ctx context.Context, args map[string]interface{}) *MCPToolResult {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return &MCPToolResult{
			Content: []MCPContent{{
				Type: "text",
				Text: "探测失败: 缺少path参数",
			}},
			IsError: true,
		}
	}

	logrus.Infof("MCP: 探测媒体时长 - %s", path)

	result, err := s.lofiService.ProbeDuration(ctx, path)
	if err != nil {
		return &MCPToolResult{
			Content: []MCPContent{{
				Type: "text",
				Text: "探测失败: " + err.Error(),
			}},
			IsError: true,
		}
	}

	return &MCPToolResult{
		Content: []MCPContent{{
			Type: "text",
			Text: fmt.Sprintf("%.6f", result.DurationSeconds),
		}},
	}
}

// handleStringPass 处理字符串透传
func (s *AppServer) handleStringPass(ctx context.Context, value string) *MCPToolResult {
	return &MCPToolResult{
		Content: []MCPContent{{
			Type: "text",
			Text: s.lofiService.PassString(value),
		}},
	}
}
