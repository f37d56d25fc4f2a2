package source

import (
	"context"

	"github.com/rushteam/artrec/core"
)

// SliceSource 是内存实现的 RowSource，用于测试/开发/原型。
type SliceSource struct {
	// SourceName 为空时 Name() 返回 "slice"
	SourceName string
	Data       []core.Row

	// Err 非空时 Rows 直接返回该错误（测试 SOURCE_UNAVAILABLE 路径用）
	Err error
}

func (s *SliceSource) Name() string {
	if s.SourceName == "" {
		return "slice"
	}
	return s.SourceName
}

func (s *SliceSource) Rows(_ context.Context) ([]core.Row, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Data, nil
}
