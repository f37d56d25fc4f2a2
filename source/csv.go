package source

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/rushteam/artrec/core"
)

// CSVSource 是读取本地 CSV 文件的 RowSource。
// 第一行视为表头；行内列数不足时缺失列按空值处理（对应“缺失可选列被容忍”）。
type CSVSource struct {
	Path string

	// Comma 是分隔符，为零值时使用 ','
	Comma rune

	// Limit 限制读取行数（<= 0 表示全部读取）
	Limit int
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string { return "csv:" + s.Path }

func (s *CSVSource) Rows(ctx context.Context) ([]core.Row, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleSource, core.ErrorCodeSourceUnavailable,
			"source: open "+s.Path+": "+err.Error())
	}
	defer f.Close()

	return ReadRows(ctx, f, s.Comma, s.Limit)
}

// ReadRows 从 reader 解析 CSV 行。拆出来便于测试与复用（例如从 HTTP body 读取）。
func ReadRows(ctx context.Context, r io.Reader, comma rune, limit int) ([]core.Row, error) {
	cr := csv.NewReader(r)
	if comma != 0 {
		cr.Comma = comma
	}
	// 允许行内列数不一致，缺列按可选列处理
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, core.NewDomainError(core.ModuleSource, core.ErrorCodeSourceUnavailable,
			"source: read csv header: "+err.Error())
	}

	var rows []core.Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// 单行解析失败按坏行跳过，加载是尽力而为的
			continue
		}

		row := make(core.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)

		if limit > 0 && len(rows) >= limit {
			break
		}
	}
	return rows, nil
}
