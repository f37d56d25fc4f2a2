package index

// Indices 是某一代快照派生出的只读查找结构，策略打分只依赖它。
// 构建是快照的纯函数：同一代关系永远得到相同的索引（可复现测试的前提）。
type Indices struct {
	// Generation 与来源快照一致，缓存失效判断用
	Generation uint64

	// UserItems 是用户邻接表：userId -> itemId -> 强度。
	// 同一 (user, item) 的多条交互按权重求和：显式 rating 优先，
	// 否则按事件类型取隐式权重（默认 1.0/事件）。该聚合规则直接决定
	// 协同过滤的结果，见 builder_test.go 中的显式用例。
	UserItems map[string]map[string]float64

	// ItemUsers 是物品邻接表：itemId -> userId -> 强度
	ItemUsers map[string]map[string]float64

	// ItemFeatures 是物品内容特征：itemId -> token -> 权重
	// （title/text 分词词频 + lang 标记 + 可选的外部特征）
	ItemFeatures map[string]map[string]float64

	// ItemPopularity 是物品交互次数（按事件计数，不按强度），冷启动兜底用
	ItemPopularity map[string]int

	// UserIDs / ItemIDs 是关系表里的 id，去重后按首次出现顺序排列。
	// 协同过滤的候选/邻居从邻接表枚举（只在交互里出现的实体也可达），
	// 这两个列表只服务内容特征遍历与枚举接口。
	UserIDs []string
	ItemIDs []string
}

// HasUserHistory 报告用户是否有任何交互历史。
func (ix *Indices) HasUserHistory(userID string) bool {
	return len(ix.UserItems[userID]) > 0
}

// HasItemHistory 报告物品是否有任何交互历史。
func (ix *Indices) HasItemHistory(itemID string) bool {
	return len(ix.ItemUsers[itemID]) > 0
}
