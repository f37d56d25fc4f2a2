package core

import "time"

// User 是用户关系中的一行：userId 必填且唯一，其余为可选的会话/地域属性。
// 重复 userId 在加载时按首次出现收敛（first-seen wins，保证确定性）。
type User struct {
	UserID    string
	SessionID string
	Agent     string
	Region    string
	Country   string
}

// Article 是物品关系中的一行：itemId 必填且唯一。
// Title/Text/Lang 参与内容特征分词，ContentType/URL 仅作元信息透传。
type Article struct {
	ItemID      string
	Title       string
	Text        string
	ContentType string
	URL         string
	Lang        string
	CreatedAt   time.Time
}

// Interaction 是用户-物品交互边。同一 (userId, itemId) 允许多条，
// 构建邻接表时按权重求和聚合（显式 rating 优先，否则按事件类型取隐式权重）。
type Interaction struct {
	UserID    string
	ItemID    string
	EventType string
	// Rating 是显式强度（eventStrength/rating 列）；HasRating 区分 0 分和缺失。
	Rating    float64
	HasRating bool
	Timestamp time.Time
}
