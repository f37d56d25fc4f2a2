package index

import (
	"strings"
	"unicode"
)

// defaultStopWords 是内置停用词（英语高频虚词的最小集合），
// 可通过 Builder.StopWords 追加。
var defaultStopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "has": {},
	"have": {}, "in": {}, "is": {}, "it": {}, "its": {}, "of": {},
	"on": {}, "or": {}, "that": {}, "the": {}, "this": {}, "to": {},
	"was": {}, "were": {}, "will": {}, "with": {}, "you": {},
}

// tokenize 将文本切成小写词元：按非字母数字切分，丢弃单字符词与停用词。
func tokenize(text string, extraStop map[string]struct{}) []string {
	if text == "" {
		return nil
	}
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := fields[:0]
	for _, tok := range fields {
		if len(tok) < 2 {
			continue
		}
		if _, ok := defaultStopWords[tok]; ok {
			continue
		}
		if extraStop != nil {
			if _, ok := extraStop[tok]; ok {
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}
