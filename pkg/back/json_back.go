package back

import (
	"errors"
	"net/http"

	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
	Mode    string      `json:"mode,omitempty"`
}

// Result 统一返回入口
func Result(c *gin.Context, data interface{}, err error) {
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, data)
}

// Created 创建类接口返回 201
func Created(c *gin.Context, data interface{}, err error) {
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// Generated AI 生成类接口，额外携带 mode（ai / demo）
func Generated(c *gin.Context, data interface{}, mode string, err error) {
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Mode: mode})
}

// Success 成功返回
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Fail 将任意错误映射为错误分类与状态码，内部细节只写日志
func Fail(c *gin.Context, err error) {
	var ce *xerr.CodeError
	if errors.As(err, &ce) {
		if ce.Code >= http.StatusInternalServerError {
			zlog.Error("request failed", zap.String("path", c.FullPath()), zap.String("kind", ce.Kind), zap.Error(err))
		}
		c.JSON(ce.Code, Response{Success: false, Error: ce.Message, Kind: ce.Kind})
		return
	}
	zlog.Error("unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(xerr.ErrServerError.Code, Response{Success: false, Error: xerr.ErrServerError.Message, Kind: xerr.ErrServerError.Kind})
}

// Error 错误返回
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{Success: false, Error: message, Kind: xerr.New(code, message).Kind})
}
