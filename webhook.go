package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// WebhookPayload webhook 发送的数据结构
type WebhookPayload struct {
	Artifact  interface{} `json:"artifact,omitempty"` // 产物信息（成功时）
	Error     string      `json:"error,omitempty"`    // 失败原因（失败时）
	Timestamp int64       `json:"timestamp"`          // 发送时间戳
	Event     string      `json:"event"`              // 事件类型（create_lofi）
}

// WebhookSender webhook 发送器
type WebhookSender struct {
	client  *http.Client
	timeout time.Duration
}

// NewWebhookSender 创建 webhook 发送器
func NewWebhookSender() *WebhookSender {
	return &WebhookSender{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		timeout: 10 * time.Second,
	}
}

// SendAsync 异步发送 webhook
//
// 特点：
//   - 异步执行，不阻塞主流程
//   - 失败只记录日志，不影响合成结果
//   - 自动添加 panic 恢复
func (w *WebhookSender) SendAsync(webhookURL string, artifact interface{}, errMsg string, eventType string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logrus.Errorf("webhook panic: %v", r)
			}
		}()

		if err := w.send(webhookURL, artifact, errMsg, eventType); err != nil {
			logrus.Errorf("webhook 发送失败 [%s]: %v", webhookURL, err)
		} else {
			logrus.Infof("webhook 发送成功 [%s]", webhookURL)
		}
	}()
}

// send 实际发送 webhook（同步）
func (w *WebhookSender) send(webhookURL string, artifact interface{}, errMsg string, eventType string) error {
	if err := w.validateURL(webhookURL); err != nil {
		return fmt.Errorf("无效的 webhook URL: %w", err)
	}

	payload := WebhookPayload{
		Artifact:  artifact,
		Error:     errMsg,
		Timestamp: time.Now().Unix(),
		Event:     eventType,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化 payload 失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "lofi-creation-mcp-webhook/1.0")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("发送请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook 返回非成功状态码: %d", resp.StatusCode)
	}

	return nil
}

// validateURL 验证 webhook URL 是否有效
func (w *WebhookSender) validateURL(webhookURL string) error {
	if webhookURL == "" {
		return fmt.Errorf("webhook URL 不能为空")
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		return fmt.Errorf("URL 格式错误: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("只支持 http 和 https 协议")
	}

	if u.Host == "" {
		return fmt.Errorf("URL 必须包含 host")
	}

	return nil
}
