package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupRoutes 设置路由配置
func setupRoutes(appServer *AppServer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// 健康检查
	router.GET("/health", healthHandler)

	// MCP 端点 - 官方 SDK 的 Streamable HTTP Handler，
	// 按会话维护独立的 MCP Server 实例
	mcpHandler := mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server {
			// HTTP 客户端应在 Header 中提供 X-Session-Id，
			// 没有就用远程地址作为会话标识
			sessionID := r.Header.Get("X-Session-Id")
			if sessionID == "" {
				sessionID = r.RemoteAddr
			}

			return appServer.sessionManager.GetOrCreateSession(sessionID)
		},
		&mcp.StreamableHTTPOptions{
			JSONResponse: true,
		},
	)
	router.POST("/mcp", gin.WrapH(mcpHandler))
	router.POST("/mcp/*path", gin.WrapH(mcpHandler))

	// API 路由组
	api := router.Group("/api/v1")
	{
		api.POST("/lofi/create", appServer.createLofiHandler)
		api.POST("/media/probe", appServer.probeDurationHandler)
		api.POST("/string/pass", appServer.stringPassHandler)
	}

	return router
}

// corsMiddleware 跨域中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Session-Id")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
