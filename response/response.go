// Package response 定义 HTTP 接口统一的响应信封 {code, message, data}。
//
// 成功响应默认 code 为 200、message 为 "Successful"；失败响应默认 code 为 500、
// message 为 "Failed"。code 同时作为 HTTP 状态码写回（见 JSON）。
//
//	router.GET("/ids/next", func(c *gin.Context) {
//	    id, err := gen.Next()
//	    if err != nil {
//	        response.JSON(c, response.FromError(err))
//	        return
//	    }
//	    response.JSON(c, response.Success(id))
//	})
package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ceyewan/idforge/xerrors"
)

// 默认响应消息
const (
	MessageSuccessful = "Successful"
	MessageFailed     = "Failed"
)

// Response 统一响应信封
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ErrorData 失败响应携带的错误详情
type ErrorData struct {
	ErrorCode string `json:"error_code,omitempty"`
}

func (r Response[T]) String() string {
	return fmt.Sprintf("Response{code=%d, message=%q, data=%v}", r.Code, r.Message, r.Data)
}

// ============================================================================
// 成功响应
// ============================================================================

// Success 返回 200 成功响应，message 为 MessageSuccessful
func Success[T any](data T) Response[T] {
	return SuccessCode(http.StatusOK, MessageSuccessful, data)
}

// SuccessMsg 返回 200 成功响应，使用自定义 message
func SuccessMsg[T any](message string, data T) Response[T] {
	return SuccessCode(http.StatusOK, message, data)
}

// SuccessCode 返回指定 code 与 message 的成功响应
func SuccessCode[T any](code int, message string, data T) Response[T] {
	return Response[T]{Code: code, Message: message, Data: data}
}

// ============================================================================
// 失败响应
// ============================================================================

// Fail 返回 500 失败响应，message 为 MessageFailed
func Fail[T any](data T) Response[T] {
	return FailCode(http.StatusInternalServerError, MessageFailed, data)
}

// FailMsg 返回 500 失败响应，使用自定义 message
func FailMsg[T any](message string, data T) Response[T] {
	return FailCode(http.StatusInternalServerError, message, data)
}

// FailCode 返回指定 code 与 message 的失败响应
func FailCode[T any](code int, message string, data T) Response[T] {
	return Response[T]{Code: code, Message: message, Data: data}
}

// FromError 将错误转换为失败响应
//
// code 由错误链中的通用哨兵错误决定：
//   - xerrors.ErrInvalidInput -> 400
//   - xerrors.ErrNotFound     -> 404
//   - xerrors.ErrNotSupported -> 501
//   - xerrors.ErrUnavailable  -> 503
//   - 其他                    -> 500
//
// 带错误码的错误（xerrors.WithCode）会把错误码放入 data.error_code。
func FromError(err error) Response[ErrorData] {
	if err == nil {
		return FailCode(http.StatusInternalServerError, MessageFailed, ErrorData{})
	}
	return FailCode(StatusOf(err), err.Error(), ErrorData{ErrorCode: xerrors.GetCode(err)})
}

// StatusOf 返回错误对应的 HTTP 状态码
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case xerrors.Is(err, xerrors.ErrInvalidInput):
		return http.StatusBadRequest
	case xerrors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound
	case xerrors.Is(err, xerrors.ErrNotSupported):
		return http.StatusNotImplemented
	case xerrors.Is(err, xerrors.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// JSON 写出响应，HTTP 状态码取 r.Code；不是合法状态码时使用 200
func JSON[T any](c *gin.Context, r Response[T]) {
	status := r.Code
	if status < 100 || status > 599 {
		status = http.StatusOK
	}
	c.JSON(status, r)
}
