package xerr

import (
	"errors"
	"fmt"
)

// CodeError 自定义错误结构，Code 即 HTTP 状态码
type CodeError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	cause   error
}

// Error 实现 error 接口
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("Code: %d, Kind: %s, Message: %s: %v", e.Code, e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("Code: %d, Kind: %s, Message: %s", e.Code, e.Kind, e.Message)
}

func (e *CodeError) Unwrap() error {
	return e.cause
}

// New 创建新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Kind: kindForCode(code), Message: msg}
}

// 常用通用错误码
const (
	OK                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	NotFoundCode        = 404
	Conflict            = 409
	InternalServerError = 500
	Unavailable         = 503
)

// 错误分类
const (
	KindValidation         = "ValidationError"
	KindAuthentication     = "AuthenticationError"
	KindNotFound           = "NotFoundError"
	KindInvalidOperation   = "InvalidOperation"
	KindServiceUnavailable = "ServiceUnavailable"
	KindUpstream           = "UpstreamError"
	KindResponseFormat     = "ResponseFormatError"
	KindConfiguration      = "ConfigurationError"
	KindInternal           = "InternalError"
)

// UpstreamCause 上游模型调用失败原因
type UpstreamCause string

const (
	CauseCredential UpstreamCause = "credential"
	CauseQuota      UpstreamCause = "quota"
	CauseNetwork    UpstreamCause = "network"
	CauseUnknown    UpstreamCause = "unknown"
)

// 常用预定义错误
var (
	ErrServerError = &CodeError{Code: InternalServerError, Kind: KindInternal, Message: "An unexpected error occurred. Please try again later."}
	ErrParam       = &CodeError{Code: BadRequest, Kind: KindValidation, Message: "Invalid request payload"}
)

func Validation(msg string) *CodeError {
	return &CodeError{Code: BadRequest, Kind: KindValidation, Message: msg}
}

func Unauthenticated(msg string) *CodeError {
	return &CodeError{Code: Unauthorized, Kind: KindAuthentication, Message: msg}
}

func NotFound(msg string) *CodeError {
	return &CodeError{Code: NotFoundCode, Kind: KindNotFound, Message: msg}
}

func InvalidOperation(msg string) *CodeError {
	return &CodeError{Code: Conflict, Kind: KindInvalidOperation, Message: msg}
}

func ServiceUnavailable(msg string) *CodeError {
	return &CodeError{Code: Unavailable, Kind: KindServiceUnavailable, Message: msg}
}

// Configuration 服务端缺少必要配置且该能力没有降级方案
func Configuration(msg string) *CodeError {
	return &CodeError{Code: InternalServerError, Kind: KindConfiguration, Message: msg}
}

func ResponseFormat(msg string) *CodeError {
	return &CodeError{Code: InternalServerError, Kind: KindResponseFormat, Message: msg}
}

// Upstream 外部模型调用失败；不同原因只影响提示文案，不影响控制流
func Upstream(cause UpstreamCause, err error) *CodeError {
	return &CodeError{Code: Unavailable, Kind: KindUpstream, Message: upstreamMessage(cause), cause: err}
}

// Internal 包装未预期错误，对外只暴露通用文案
func Internal(err error) *CodeError {
	return &CodeError{Code: InternalServerError, Kind: KindInternal, Message: ErrServerError.Message, cause: err}
}

// IsKind 判断 err 链中是否包含指定分类的 CodeError
func IsKind(err error, kind string) bool {
	var ce *CodeError
	return errors.As(err, &ce) && ce.Kind == kind
}

func upstreamMessage(cause UpstreamCause) string {
	switch cause {
	case CauseCredential:
		return "The AI service rejected the configured credentials. Please try again later."
	case CauseQuota:
		return "The AI service quota was exceeded or rate limited. Please retry after a short delay."
	case CauseNetwork:
		return "The AI service could not be reached. Please retry shortly."
	default:
		return "The AI service failed to respond. Please retry shortly."
	}
}

func kindForCode(code int) string {
	switch code {
	case BadRequest:
		return KindValidation
	case Unauthorized:
		return KindAuthentication
	case NotFoundCode:
		return KindNotFound
	case Conflict:
		return KindInvalidOperation
	case Unavailable:
		return KindServiceUnavailable
	default:
		return KindInternal
	}
}
