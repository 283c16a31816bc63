package response

import (
	"errors"

	"user-role-system/internal/domain"
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应
func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// FromErr 业务错误哨兵 → 响应码；未识别的一律 500，不外泄内部细节
func FromErr(err error) Resp {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return Error(CodeConflict, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		return Error(CodeNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return Error(CodeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrAccountInactive), errors.Is(err, domain.ErrForbidden):
		return Error(CodeForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidRole):
		return Error(CodeBadRequest, err.Error())
	default:
		return Error(CodeServerError, "")
	}
}
