// Package conv 提供字符串解析兜底工具，用于数据源中缺失/脏列的统一处理。
package conv

import "strconv"

// ParseFloat 解析字符串为 float64，空串或非法输入返回 (0, false)。
// 数据源里的 rating/eventStrength 列经常缺失，统一在这里兜底。
func ParseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseInt64 解析字符串为 int64，非法输入返回 (0, false)。
// 时间戳列既可能是 unix 秒也可能是 RFC3339，调用方先试这里再试 time.Parse。
func ParseInt64(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
