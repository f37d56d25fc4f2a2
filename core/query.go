package core

// Strategy 是策略选择标签：一个接口、三个可替换实现，按枚举标签选择，
// 新增策略只需注册实现，不需要改动调度逻辑。
type Strategy string

const (
	StrategyContentBased  Strategy = "content-based" // 内容召回：物品特征重叠
	StrategyCollaborative Strategy = "collaborative" // 协同过滤：交互邻接重叠
	StrategyHybrid        Strategy = "hybrid"        // 混合：两路加权合并
)

// ParseStrategy 解析策略名。未知策略是调用方错误（INVALID_STRATEGY），
// 不做静默回退。
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyContentBased, StrategyCollaborative, StrategyHybrid:
		return Strategy(s), nil
	default:
		return "", ErrInvalidStrategy
	}
}

// Query 是引擎对外唯一的查询面：userId/itemId 至少提供一个。
type Query struct {
	UserID   string
	ItemID   string
	Strategy Strategy
	// K 为返回结果数上限；0 视为未指定由引擎补默认值（5），负数是调用方错误。
	K int
}

// HasKey 报告查询是否携带至少一个键。
func (q Query) HasKey() bool {
	return q.UserID != "" || q.ItemID != ""
}
