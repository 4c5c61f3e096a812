package handle

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/keepsake/pkg/internal/service"
)

// Admin 管理入口：所有管理动作共用一个接口，按 action 字段分发.
//
//	@Summary		执行管理动作
//	@Description	请求体为 {action, password, ...}，每次请求都会校验口令
//	@Tags			管理
//	@Accept			json
//	@Produce		json
//	@Param			body	body		types.AdminEnvelope		true	"动作与口令，以及动作所需字段"
//	@Success		200		{object}	types.SuccessResponse	"具体结构随 action 变化"
//	@Failure		400		{object}	types.ErrorResponse		"未知动作或字段错误"
//	@Failure		401		{object}	types.ErrorResponse		"口令错误"
//	@Failure		404		{object}	types.ErrorResponse		"记录不存在"
//	@Failure		500		{object}	types.ErrorResponse		"服务器内部错误"
//	@Router			/api/v1/admin [post]
func Admin(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()

	resp, err := service.NewAdminService(ctx).Handle(ctx, body)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AdminMedia 管理端上传里程碑/"第一次"照片，返回公开地址供后续动作引用.
//
//	@Summary		上传管理媒体
//	@Tags			管理
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			password	formData	string	true	"管理口令"
//	@Param			folder		formData	string	true	"milestones 或 firsts"
//	@Param			file		formData	file	true	"照片或视频"
//	@Success		200			{object}	types.AdminMediaResponse
//	@Failure		400			{object}	types.ErrorResponse
//	@Failure		401			{object}	types.ErrorResponse
//	@Failure		502			{object}	types.ErrorResponse	"对象存储失败"
//	@Router			/api/v1/admin/media [post]
func AdminMedia(c *gin.Context) {
	form, err := multipartForm(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var file *service.FilePart

	if files := form.File["file"]; len(files) > 0 {
		fp := filePart(files[0])
		file = &fp
	}

	ctx := c.Request.Context()

	resp, err := service.NewAdminService(ctx).UploadMedia(ctx, c.PostForm("password"), c.PostForm("folder"), file)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
