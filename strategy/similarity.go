package strategy

import "math"

// 相似度度量是可插拔策略：以常规的 cosine / 加权 Jaccard
// 作为参考语义，并在测试中固定其行为。

// cosineSimilarity 计算两个稀疏特征向量的余弦相似度。
func cosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	// 只需遍历较小的一侧求点积
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for k, v := range small {
		if w, ok := large[k]; ok {
			dot += v * w
		}
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// jaccardSimilarity 计算加权 Jaccard：Σmin / Σmax。
// 权重全为 1 时退化为经典的 |A∩B| / |A∪B|。
func jaccardSimilarity(a, b map[string]float64) float64 {
	var intersection, union float64
	for k, va := range a {
		if vb, ok := b[k]; ok {
			intersection += math.Min(va, vb)
			union += math.Max(va, vb)
		} else {
			union += va
		}
	}
	for k, vb := range b {
		if _, ok := a[k]; !ok {
			union += vb
		}
	}
	if union == 0 {
		return 0
	}
	return intersection / union
}

// commonCount 统计两个向量的公共键数。
func commonCount(a, b map[string]float64) int {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	n := 0
	for k := range small {
		if _, ok := large[k]; ok {
			n++
		}
	}
	return n
}
