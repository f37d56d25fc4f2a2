// Package artrec 是一个文章推荐聚合引擎（Article Recommender）。
//
// 设计要点：
// - Snapshot-first: 关系数据按代（generation）加载，查询是对不可变快照的纯读
// - Strategy-first: content-based / collaborative / hybrid 共用一个打分契约，按标签选择
// - Labels-first: 每条结果携带产出来源标签，支持 explain / 观测
package artrec

import (
	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/engine"
	"github.com/rushteam/artrec/store"
)

// 轻量 facade：便于用户直接 import "artrec" 使用核心抽象。
type Engine = engine.Engine
type Query = core.Query
type Recommendation = core.Recommendation
type RecordStore = store.RecordStore

const (
	StrategyContentBased  = core.StrategyContentBased
	StrategyCollaborative = core.StrategyCollaborative
	StrategyHybrid        = core.StrategyHybrid
)

// NewRecordStore 创建记录存储。
func NewRecordStore() *store.RecordStore { return store.New() }

// NewEngine 创建推荐引擎。
func NewEngine(records *store.RecordStore, opts ...engine.Option) (*engine.Engine, error) {
	return engine.New(records, opts...)
}
