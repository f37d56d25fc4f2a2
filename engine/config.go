package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是引擎的配置结构（支持 YAML）。
type Config struct {
	Engine struct {
		// DefaultK 查询未指定 k 时的默认值，缺省 5
		DefaultK int `yaml:"default_k"`

		// ContentMetric / CollabMetric 相似度度量（jaccard / cosine）
		ContentMetric string `yaml:"content_metric"`
		CollabMetric  string `yaml:"collab_metric"`

		// TopSimilarUsers User-CF 聚合的 TopN 相似用户
		TopSimilarUsers int `yaml:"top_similar_users"`

		// MinCommonItems / MinCommonUsers 相似度计算的最小重叠
		MinCommonItems int `yaml:"min_common_items"`
		MinCommonUsers int `yaml:"min_common_users"`

		// ContentWeight / CollabWeight hybrid 两路权重，缺省 0.5/0.5
		ContentWeight float64 `yaml:"content_weight"`
		CollabWeight  float64 `yaml:"collab_weight"`

		// EventWeights 按事件类型覆盖隐式交互权重
		// 例如 VIEW: 1.0 / LIKE: 2.0 / BOOKMARK: 2.5 / FOLLOW: 3.0 / "COMMENT CREATED": 4.0
		EventWeights map[string]float64 `yaml:"event_weights"`

		// StopWords 追加的停用词
		StopWords []string `yaml:"stop_words"`

		// Filter 是 CEL 结果过滤表达式（可选），如 `item.lang == "en"`
		Filter string `yaml:"filter"`

		// PopularFallback 开启后，所选策略返回空列表时用热门物品兜底。
		// 默认关闭：冷启动返回空列表是契约的一部分。
		PopularFallback bool `yaml:"popular_fallback"`
	} `yaml:"engine"`
}

// LoadConfig 从 YAML 文件加载引擎配置。
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}
