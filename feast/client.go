// Package feast 对接 Feast Feature Store：
// 从在线特征存储读取用户风格特征，水合 core.UserProfile。
//
// 接口与实现分离：Client 是领域接口，GrpcClient 是基于官方 SDK 的实现，
// 宿主也可以自行实现 Client（HTTP / mock / 离线导出均可）。
//
// 参考：https://github.com/feast-dev/feast
package feast

import (
	"context"
	"time"
)

// Client 是 Feature Store 的客户端接口。
type Client interface {
	// GetOnlineFeatures 获取在线特征（实时推荐用）。
	//
	// Features 形如 "user_style:pref_casual"；
	// EntityRows 形如 [{"user_id": "u1"}]。
	// 返回的特征向量与 EntityRows 一一对应。
	GetOnlineFeatures(ctx context.Context, req *OnlineFeaturesRequest) (*OnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// OnlineFeaturesRequest 是在线特征请求。
type OnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["user_style:pref_casual", "user_style:undertone"]
	Features []string

	// EntityRows 实体行，例如 [{"user_id": "u1"}]
	EntityRows []map[string]any

	// Project 项目名称（可选，空时用客户端默认值）
	Project string
}

// OnlineFeaturesResponse 是在线特征响应。
type OnlineFeaturesResponse struct {
	// Vectors 特征向量，每个元素对应一个实体行
	Vectors []FeatureVector
}

// FeatureVector 是单个实体的特征值集合。
type FeatureVector struct {
	// Values key 为特征名称
	Values map[string]any

	// EntityRow 对应的实体行
	EntityRow map[string]any
}

// ClientOption 是客户端配置选项。
type ClientOption func(*ClientConfig)

// ClientConfig 是客户端配置。
type ClientConfig struct {
	Project string
	Timeout time.Duration

	// StaticToken 非空时启用静态 Token 认证
	StaticToken string
}

// WithTimeout 设置请求超时。
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithStaticToken 设置静态 Token 认证。
func WithStaticToken(token string) ClientOption {
	return func(c *ClientConfig) {
		c.StaticToken = token
	}
}
