package utils

// Label 是推荐结果上的可解释标记：哪个策略产出、用的什么度量，全链路可追踪。
// Value 与 Source 的语义由业务自定义；artrec 只提供标准化的合并规则。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // content / collaborative / hybrid / engine ...
}

// MergeLabel 用于合并同名 Label，遵循“保留历史、可追踪”的默认策略。
// - Value: 以 '|' 累积
// - Source: 以 ',' 累积
//
// hybrid 去重时两个子策略的 strategy 标签会合并成 "content|collaborative"，
// 调用方据此可以解释一条结果来自哪几路召回。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
