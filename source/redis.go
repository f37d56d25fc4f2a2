package source

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/rushteam/artrec/core"
)

// RedisSource 是读取 Redis 的 RowSource：离线任务把关系导出为 list，
// 每个元素一行 JSON 对象（map[string]string 或 map[string]any）。
// 生产环境常用：加载端与引擎进程解耦，reload 只需重读 key。
type RedisSource struct {
	client *redis.Client

	// Key 是存放行数据的 list key，例如 "artrec:interactions"
	Key string
}

func NewRedisSource(addr string, db int, key string) (*RedisSource, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, core.NewDomainError(core.ModuleSource, core.ErrorCodeSourceUnavailable,
			"source: redis ping: "+err.Error())
	}
	return &RedisSource{client: client, Key: key}, nil
}

// NewRedisSourceWithClient 复用已有连接（多个关系共享一个 client）。
func NewRedisSourceWithClient(client *redis.Client, key string) *RedisSource {
	return &RedisSource{client: client, Key: key}
}

func (s *RedisSource) Name() string { return "redis:" + s.Key }

func (s *RedisSource) Rows(ctx context.Context) ([]core.Row, error) {
	vals, err := s.client.LRange(ctx, s.Key, 0, -1).Result()
	if err != nil {
		return nil, core.NewDomainError(core.ModuleSource, core.ErrorCodeSourceUnavailable,
			"source: redis lrange "+s.Key+": "+err.Error())
	}

	rows := make([]core.Row, 0, len(vals))
	for _, v := range vals {
		var raw map[string]json.RawMessage
		if json.Unmarshal([]byte(v), &raw) != nil {
			// 坏行跳过，与 CSV 源保持一致的尽力而为语义
			continue
		}
		row := make(core.Row, len(raw))
		for k, rv := range raw {
			var str string
			if json.Unmarshal(rv, &str) == nil {
				row[k] = str
				continue
			}
			// 数值/布尔列按原始字面量保留，由上游解析
			row[k] = string(rv)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *RedisSource) Close() error {
	return s.client.Close()
}
