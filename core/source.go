package core

import "context"

// Row 是一行带列名的表格数据。缺失的可选列直接不出现在 map 中。
type Row map[string]string

// Get 按列名取值，支持别名列表（例如 userId 与 personId 等价），
// 返回第一个非空命中。
func (r Row) Get(names ...string) string {
	for _, name := range names {
		if v, ok := r[name]; ok && v != "" {
			return v
		}
	}
	return ""
}

// RowSource 是表格数据源的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（source）实现
//   - 领域层不关心行来自 CSV、Redis 还是内存切片
//
// 实现：
//   - source.CSVSource：本地 CSV 文件
//   - source.RedisSource：Redis list 中的 JSON 行
//   - source.SliceSource：内存切片（测试/原型）
type RowSource interface {
	// Name 返回数据源名称（用于日志/监控与错误消息）
	Name() string

	// Rows 读取全部行。读取失败意味着数据源不可用（SOURCE_UNAVAILABLE）。
	Rows(ctx context.Context) ([]Row, error)
}
