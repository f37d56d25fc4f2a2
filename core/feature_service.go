package core

import "context"

// FeatureService 是物品外部特征的领域接口。
//
// 索引构建默认从 title/text/lang 分词得到特征向量；接入 FeatureService 后，
// 外部特征（例如 Feast 在线存储里的物品画像）会在构建时合并进同一向量。
//
// 实现：
//   - feast.Provider 基于 Feast 在线特征存储实现此接口
type FeatureService interface {
	// Name 返回特征服务名称（用于日志/监控）
	Name() string

	// ItemFeatures 批量获取物品特征，返回 map[itemID]map[feature]weight。
	// 缺失的物品可以不出现在结果里，调用方按“无外部特征”处理。
	ItemFeatures(ctx context.Context, itemIDs []string) (map[string]map[string]float64, error)
}
