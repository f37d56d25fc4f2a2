package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 错误分两类：
//   - 调用方错误：查询形状不合法（MISSING_QUERY_KEY / INVALID_STRATEGY / INVALID_K），
//     在任何计算发生之前被拒绝
//   - 数据错误：数据源不可读或整个关系为空（SOURCE_UNAVAILABLE / EMPTY_RELATION），
//     只在 Load 路径出现；“没有推荐结果”不是错误，是合法的空列表
type DomainError struct {
	Code    string // 错误代码（如 "MISSING_QUERY_KEY"）
	Message string // 错误消息
	Module  string // 模块名称（如 "engine", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeMissingQueryKey   = "MISSING_QUERY_KEY"  // userId/itemId 都缺失
	ErrorCodeInvalidStrategy   = "INVALID_STRATEGY"   // 未知策略名
	ErrorCodeInvalidK          = "INVALID_K"          // k < 0（k == 0 视为未指定）
	ErrorCodeSourceUnavailable = "SOURCE_UNAVAILABLE" // 数据源不可读
	ErrorCodeEmptyRelation     = "EMPTY_RELATION"     // 关系中没有任何合法行
	ErrorCodeNotFound          = "NOT_FOUND"          // 资源不存在
)

// 模块名称常量
const (
	ModuleStore  = "store"  // 记录存储
	ModuleSource = "source" // 数据源
	ModuleEngine = "engine" // 聚合调度
	ModuleIndex  = "index"  // 索引构建
)

// 预定义错误（调用方错误在 engine 校验阶段返回，数据错误在 Load 阶段返回）
var (
	ErrMissingQueryKey = NewDomainError(ModuleEngine, ErrorCodeMissingQueryKey, "engine: either userId or itemId must be provided")
	ErrInvalidStrategy = NewDomainError(ModuleEngine, ErrorCodeInvalidStrategy, "engine: unknown strategy")
	ErrInvalidK        = NewDomainError(ModuleEngine, ErrorCodeInvalidK, "engine: k must not be negative")
	ErrNotFound        = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: not found")
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsMissingQueryKey 检查错误是否为 MISSING_QUERY_KEY
func IsMissingQueryKey(err error) bool { return hasCode(err, ErrorCodeMissingQueryKey) }

// IsInvalidStrategy 检查错误是否为 INVALID_STRATEGY
func IsInvalidStrategy(err error) bool { return hasCode(err, ErrorCodeInvalidStrategy) }

// IsInvalidK 检查错误是否为 INVALID_K
func IsInvalidK(err error) bool { return hasCode(err, ErrorCodeInvalidK) }

// IsSourceUnavailable 检查错误是否为 SOURCE_UNAVAILABLE
func IsSourceUnavailable(err error) bool { return hasCode(err, ErrorCodeSourceUnavailable) }

// IsEmptyRelation 检查错误是否为 EMPTY_RELATION
func IsEmptyRelation(err error) bool { return hasCode(err, ErrorCodeEmptyRelation) }

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }
