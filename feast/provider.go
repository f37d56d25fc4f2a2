// Package feast 基于官方 Feast Go SDK 实现 core.FeatureService：
// 从 Feast 在线特征存储批量拉取物品特征，在索引构建时合并进内容特征向量。
//
// 参考：https://github.com/feast-dev/feast
package feast

import (
	"context"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/rushteam/artrec/core"
)

// Provider 是 Feast 在线特征的适配器。
//
// 设计原则（DDD）：
//   - 领域层：core.FeatureService 接口保持不变
//   - 基础设施层：Provider 实现该接口，可整体替换
type Provider struct {
	client *feastsdk.GrpcClient

	// Project 项目名称
	Project string

	// Features 要拉取的特征名列表，例如 ["article_stats:topic_weight"]
	Features []string

	// EntityKey 实体键名，默认 "item_id"
	EntityKey string
}

// NewProvider 创建一个连接 Feast Feature Server 的特征提供方。
func NewProvider(host string, port int, project string, features []string) (*Provider, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("feast: dial %s:%d: %w", host, port, err)
	}
	return &Provider{
		client:   client,
		Project:  project,
		Features: features,
	}, nil
}

func (p *Provider) Name() string { return "feast" }

// ItemFeatures 实现 core.FeatureService：按 itemId 批量取数值特征。
// 非数值特征被跳过；Feast 中不存在的物品不出现在结果里。
func (p *Provider) ItemFeatures(ctx context.Context, itemIDs []string) (map[string]map[string]float64, error) {
	if len(itemIDs) == 0 || len(p.Features) == 0 {
		return map[string]map[string]float64{}, nil
	}

	entityKey := p.EntityKey
	if entityKey == "" {
		entityKey = "item_id"
	}

	entityRows := make([]feastsdk.Row, len(itemIDs))
	for i, id := range itemIDs {
		entityRows[i] = feastsdk.Row{entityKey: feastsdk.StrVal(id)}
	}

	resp, err := p.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: p.Features,
		Entities: entityRows,
		Project:  p.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast: get online features: %w", err)
	}

	rows := resp.Rows()
	if len(rows) != len(itemIDs) {
		return nil, fmt.Errorf("feast: response row count mismatch: expected %d, got %d", len(itemIDs), len(rows))
	}

	out := make(map[string]map[string]float64, len(itemIDs))
	for i, row := range rows {
		feats := make(map[string]float64)
		for _, name := range p.Features {
			val, ok := row[name]
			if !ok {
				continue
			}
			if f, ok := numericValue(val); ok {
				feats[name] = f
			}
		}
		if len(feats) > 0 {
			out[itemIDs[i]] = feats
		}
	}
	return out, nil
}

func (p *Provider) Close() error {
	return p.client.Close()
}

// numericValue 从 protobuf Value 提取数值特征。
func numericValue(v *feasttypes.Value) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.Val.(type) {
	case *feasttypes.Value_DoubleVal:
		return val.DoubleVal, true
	case *feasttypes.Value_FloatVal:
		return float64(val.FloatVal), true
	case *feasttypes.Value_Int64Val:
		return float64(val.Int64Val), true
	case *feasttypes.Value_Int32Val:
		return float64(val.Int32Val), true
	default:
		return 0, false
	}
}

var _ core.FeatureService = (*Provider)(nil)
