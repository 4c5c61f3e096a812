package handle

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/keepsake/pkg/internal/service"
	"github.com/yeisme/keepsake/pkg/internal/types"
	"github.com/yeisme/keepsake/pkg/rule"
)

// Gallery 公开画廊，只包含已审核通过的投稿.
//
//	@Summary		画廊
//	@Tags			投稿
//	@Produce		json
//	@Param			type	query		string	false	"image 或 video"
//	@Success		200		{object}	types.UploadsResponse
//	@Failure		400		{object}	types.ErrorResponse
//	@Router			/api/v1/gallery [get]
func Gallery(c *gin.Context) {
	var q types.GalleryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, rule.Message(err))
		return
	}

	ctx := c.Request.Context()

	uploads, err := service.NewGalleryService(ctx).List(ctx, q.Type)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.UploadsResponse{Uploads: uploads})
}

// SubmitUploads 访客投稿照片/视频.
//
//	@Summary		提交投稿
//	@Tags			投稿
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name	formData	string	true	"投稿人"
//	@Param			message	formData	string	false	"留言"
//	@Param			files	formData	file	true	"照片或视频，可多个"
//	@Success		201		{object}	types.UploadsResponse
//	@Failure		400		{object}	types.ErrorResponse
//	@Failure		413		{object}	types.ErrorResponse
//	@Failure		502		{object}	types.ErrorResponse
//	@Router			/api/v1/uploads [post]
func SubmitUploads(c *gin.Context) {
	form, err := multipartForm(c)
	if err != nil {
		writeError(c, err)
		return
	}

	headers := append(form.File["files"], form.File["files[]"]...)

	req := service.SubmitRequest{
		UploaderName: c.PostForm("name"),
		Message:      c.PostForm("message"),
		Files:        make([]service.FilePart, 0, len(headers)),
	}

	for _, fh := range headers {
		req.Files = append(req.Files, filePart(fh))
	}

	ctx := c.Request.Context()

	uploads, err := service.NewIntakeService(ctx).Submit(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.UploadsResponse{Uploads: uploads})
}

// ListWishes 全部祝福.
//
//	@Summary	祝福列表
//	@Tags		来宾
//	@Produce	json
//	@Success	200	{object}	types.WishesResponse
//	@Router		/api/v1/wishes [get]
func ListWishes(c *gin.Context) {
	ctx := c.Request.Context()

	wishes, err := service.NewWishService(ctx).List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.WishesResponse{Wishes: wishes})
}

// CreateWish 提交祝福.
//
//	@Summary	提交祝福
//	@Tags		来宾
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.CreateWishRequest	true	"姓名与祝福"
//	@Success	201		{object}	types.WishResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Router		/api/v1/wishes [post]
func CreateWish(c *gin.Context) {
	var req types.CreateWishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, rule.Message(err))
		return
	}

	ctx := c.Request.Context()

	wish, err := service.NewWishService(ctx).Create(ctx, req.Name, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.WishResponse{Wish: wish})
}

// ListVoiceNotes 全部语音留言.
//
//	@Summary	语音留言列表
//	@Tags		来宾
//	@Produce	json
//	@Success	200	{object}	types.VoiceNotesResponse
//	@Router		/api/v1/voice-notes [get]
func ListVoiceNotes(c *gin.Context) {
	ctx := c.Request.Context()

	notes, err := service.NewVoiceService(ctx).List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.VoiceNotesResponse{VoiceNotes: notes})
}

// CreateVoiceNote 上传语音留言.
//
//	@Summary	上传语音留言
//	@Tags		来宾
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		name		formData	string	true	"留言人"
//	@Param		duration	formData	number	false	"录音秒数"
//	@Param		audio		formData	file	true	"录音文件"
//	@Success	201			{object}	types.VoiceNoteResponse
//	@Failure	400			{object}	types.ErrorResponse
//	@Failure	502			{object}	types.ErrorResponse
//	@Router		/api/v1/voice-notes [post]
func CreateVoiceNote(c *gin.Context) {
	form, err := multipartForm(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var audio *service.FilePart

	if files := form.File["audio"]; len(files) > 0 {
		fp := filePart(files[0])
		audio = &fp
	}

	var duration *float64

	if raw := strings.TrimSpace(c.PostForm("duration")); raw != "" {
		if d, err := strconv.ParseFloat(raw, 64); err == nil {
			duration = &d
		}
	}

	ctx := c.Request.Context()

	note, err := service.NewVoiceService(ctx).Create(ctx, c.PostForm("name"), duration, audio)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.VoiceNoteResponse{VoiceNote: note})
}

// LetterCount 已封存信件数量. 信件内容不对外提供.
//
//	@Summary	信件数量
//	@Tags		来宾
//	@Produce	json
//	@Success	200	{object}	types.LetterCountResponse
//	@Router		/api/v1/letters/count [get]
func LetterCount(c *gin.Context) {
	ctx := c.Request.Context()

	n, err := service.NewLetterService(ctx).Count(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.LetterCountResponse{Count: n})
}

// SealLetter 封存一封写给未来的信.
//
//	@Summary	封存信件
//	@Tags		来宾
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.SealLetterRequest	true	"姓名与信件内容"
//	@Success	201		{object}	types.SuccessResponse
//	@Failure	400		{object}	types.ErrorResponse
//	@Router		/api/v1/letters [post]
func SealLetter(c *gin.Context) {
	var req types.SealLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, rule.Message(err))
		return
	}

	ctx := c.Request.Context()

	if err := service.NewLetterService(ctx).Seal(ctx, req.Name, req.Content); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.SuccessResponse{Success: true})
}

// Milestones 月度里程碑与媒体.
//
//	@Summary	里程碑
//	@Tags		时间线
//	@Produce	json
//	@Success	200	{object}	types.MilestonesResponse
//	@Router		/api/v1/milestones [get]
func Milestones(c *gin.Context) {
	ctx := c.Request.Context()

	milestones, err := service.NewMilestoneService(ctx).List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.MilestonesResponse{Milestones: milestones})
}

// Firsts "第一次"看板.
//
//	@Summary	第一次
//	@Tags		时间线
//	@Produce	json
//	@Success	200	{object}	types.FirstsResponse
//	@Router		/api/v1/firsts [get]
func Firsts(c *gin.Context) {
	ctx := c.Request.Context()

	firsts, err := service.NewFirstsService(ctx).List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.FirstsResponse{Firsts: firsts})
}
