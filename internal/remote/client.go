package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"nesttask/backend/config"
	"nesttask/backend/internal/model"
)

// Source 远端数据源契约：按 kind 全量拉取。
// 成功即代表"该 kind 当前的完整集合"，无分页、无部分结果。
type Source interface {
	FetchAll(ctx context.Context, kind model.Kind) ([]json.RawMessage, error)
}

// listResponse 远端列表接口响应
type listResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    []json.RawMessage `json:"data"`
}

// HTTPSource 基于 HTTP 的远端数据源适配器
type HTTPSource struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewHTTPSource 创建远端数据源客户端
func NewHTTPSource(cfg *config.RemoteConfig, logger *zap.Logger) *HTTPSource {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")

	return &HTTPSource{httpClient: client, logger: logger}
}

// FetchAll 拉取某 kind 的完整集合
func (s *HTTPSource) FetchAll(ctx context.Context, kind model.Kind) ([]json.RawMessage, error) {
	var result listResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/v1/" + kind.Collection())

	if err != nil {
		s.logger.Warn("远端拉取失败",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("拉取 %s 失败: %w", kind, err)
	}
	if resp.StatusCode() != 200 {
		s.logger.Warn("远端拉取返回非 200",
			zap.String("kind", string(kind)),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("拉取 %s 失败: HTTP %d", kind, resp.StatusCode())
	}
	if result.Code != 0 {
		return nil, fmt.Errorf("拉取 %s 失败: 远端返回 code=%d message=%s", kind, result.Code, result.Message)
	}

	return result.Data, nil
}
