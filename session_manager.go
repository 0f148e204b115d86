package main

import (
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SessionManager 按会话 ID 维护各自独立的 MCP Server 实例。
// 工作流宿主的每个连接带自己的 X-Session-Id，工具注册按会话隔离。
type SessionManager struct {
	mu        sync.RWMutex
	sessions  map[string]*mcp.Server
	appServer *AppServer
}

// NewSessionManager 创建会话管理器，Server 实例在首次访问时才创建
func NewSessionManager(appServer *AppServer) *SessionManager {
	return &SessionManager{
		sessions:  make(map[string]*mcp.Server),
		appServer: appServer,
	}
}

// GetOrCreateSession 返回会话对应的 MCP Server，没有就新建一个。
// 读多写少，先走读锁的快路径。
func (sm *SessionManager) GetOrCreateSession(sessionID string) *mcp.Server {
	sm.mu.RLock()
	server, exists := sm.sessions[sessionID]
	sm.mu.RUnlock()

	if exists {
		return server
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	// 拿到写锁后再查一次，两个请求可能同时为同一会话建实例
	if server, exists = sm.sessions[sessionID]; exists {
		return server
	}

	server = InitMCPServer(sm.appServer)
	sm.sessions[sessionID] = server

	return server
}

// RemoveSession 丢弃会话，同一 ID 下次访问会重新注册全部工具
func (sm *SessionManager) RemoveSession(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, sessionID)
}
