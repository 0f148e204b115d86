package main

// HTTP API 响应类型

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse 成功响应
type SuccessResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// MCP 相关类型（用于内部转换）

// MCPToolResult MCP 工具结果（内部使用）
type MCPToolResult struct {
	Content []MCPContent `json:"content"`
	IsError bool         `json:"isError,omitempty"`
}

// MCPContent MCP 内容（内部使用）
type MCPContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ProbeRequest 探测媒体时长请求
type ProbeRequest struct {
	Path string `json:"path" binding:"required"`
}

// ProbeResponse 探测媒体时长响应
type ProbeResponse struct {
	Path            string  `json:"path"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// StringPassRequest 字符串透传请求
type StringPassRequest struct {
	String string `json:"string" binding:"required"`
}

// StringPassResponse 字符串透传响应
type StringPassResponse struct {
	String string `json:"string"`
}
