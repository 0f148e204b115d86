package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ximi-ai/lofi-creation-mcp/pkg/downloader"
	"github.com/ximi-ai/lofi-creation-mcp/pkg/media"
)

// respondError 返回错误响应
func respondError(c *gin.Context, statusCode int, code, message string, details any) {
	response := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}

	logrus.Errorf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, statusCode, code)

	c.JSON(statusCode, response)
}

// respondSuccess 返回成功响应
func respondSuccess(c *gin.Context, data any, message string) {
	response := SuccessResponse{
		Success: true,
		Data:    data,
		Message: message,
	}

	logrus.Infof("%s %s %d", c.Request.Method, c.Request.URL.Path, http.StatusOK)

	c.JSON(http.StatusOK, response)
}

// errorKind 把管线错误映射成 HTTP 状态码和错误码，按出错阶段归因
func errorKind(err error) (int, string) {
	switch {
	case errors.Is(err, media.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, downloader.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, downloader.ErrDownload):
		return http.StatusBadGateway, "DOWNLOAD_FAILED"
	case errors.Is(err, downloader.ErrExtraction):
		return http.StatusBadGateway, "EXTRACTION_FAILED"
	case errors.Is(err, media.ErrProbe):
		return http.StatusInternalServerError, "PROBE_FAILED"
	case errors.Is(err, media.ErrEncode):
		return http.StatusInternalServerError, "ENCODE_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// healthHandler 健康检查
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "lofi-creation-mcp",
	})
}

// createLofiHandler 合成 lofi 视频
//
// 两种模式：
//  1. 不带 webhook：同步执行，完成后直接返回产物路径
//  2. 带 webhook：立即返回 202 Accepted，后台执行，结果通过 webhook 通知
func (s *AppServer) createLofiHandler(c *gin.Context) {
	var req CreateLofiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST",
			"请求参数错误", err.Error())
		return
	}

	if req.Webhook == "" {
		result, err := s.lofiService.CreateLofi(c.Request.Context(), &req)
		if err != nil {
			status, code := errorKind(err)
			respondError(c, status, code, "合成失败", err.Error())
			return
		}
		respondSuccess(c, result, "合成成功")
		return
	}

	// 异步模式：立即返回 202，结果走 webhook
	c.JSON(http.StatusAccepted, SuccessResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "accepted",
			"webhook": req.Webhook,
		},
		Message: "请求已接受，合成结果将通过 webhook 通知",
	})

	go func() {
		// 独立 context，30 分钟上限（足够完成下载和转码）
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		result, err := s.lofiService.CreateLofi(ctx, &req)
		if err != nil {
			logrus.Errorf("异步合成失败: %v", err)
			s.lofiService.webhookSender.SendAsync(req.Webhook, nil, err.Error(), "create_lofi")
			return
		}
		s.lofiService.webhookSender.SendAsync(req.Webhook, result, "", "create_lofi")
	}()
}

// probeDurationHandler 探测本地媒体文件的时长
func (s *AppServer) probeDurationHandler(c *gin.Context) {
	var req ProbeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST",
			"请求参数错误", err.Error())
		return
	}

	result, err := s.lofiService.ProbeDuration(c.Request.Context(), req.Path)
	if err != nil {
		status, code := errorKind(err)
		respondError(c, status, code, "探测失败", err.Error())
		return
	}

	respondSuccess(c, result, "探测成功")
}

// stringPassHandler 字符串透传，原样返回输入
func (s *AppServer) stringPassHandler(c *gin.Context) {
	var req StringPassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST",
			"请求参数错误", err.Error())
		return
	}

	respondSuccess(c, StringPassResponse{
		String: s.lofiService.PassString(req.String),
	}, "")
}
