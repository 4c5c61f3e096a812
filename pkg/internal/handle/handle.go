// Package handle 提供 HTTP 请求处理器：公开的访客接口、管理接口与运维接口.
// 处理器只负责绑定参数与映射错误，业务逻辑在 service 包中.
package handle

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/keepsake/pkg/internal/service"
	"github.com/yeisme/keepsake/pkg/internal/types"
	"github.com/yeisme/keepsake/pkg/log"
)

// statusOf 错误类别到状态码.
func statusOf(err error) int {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUpload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError 记录并写出 {"error": msg}. 4xx 记 warn，5xx 记 error.
func writeError(c *gin.Context, err error) {
	status := statusOf(err)

	msg := service.PublicMessage(err)
	if status == http.StatusRequestEntityTooLarge {
		msg = "request body too large"
	}

	l := log.Ctx(c.Request.Context())

	ev := l.Warn()
	if status >= http.StatusInternalServerError {
		ev = l.Error()
	}

	ev.Err(err).Int("status", status).Str("route", c.FullPath()).Msg("request failed")

	_ = c.Error(err)
	c.JSON(status, types.ErrorResponse{Error: msg})
}

// badRequest 绑定失败时使用.
func badRequest(c *gin.Context, msg string) {
	log.Ctx(c.Request.Context()).Warn().Str("route", c.FullPath()).Msg(msg)
	c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msg})
}

// filePart 把 multipart 文件头转换为服务层的 FilePart.
func filePart(fh *multipart.FileHeader) service.FilePart {
	return service.FilePart{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open:        func() (io.ReadCloser, error) { return fh.Open() },
	}
}

// multipartForm 解析表单. 超出请求体上限时返回 *http.MaxBytesError.
func multipartForm(c *gin.Context) (*multipart.Form, error) {
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}

		return nil, &formError{err}
	}

	return form, nil
}

type formError struct{ cause error }

func (e *formError) Error() string { return "invalid multipart form: " + e.cause.Error() }

func (e *formError) Unwrap() []error { return []error{service.ErrValidation, e.cause} }
