package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yeisme/keepsake/pkg/configs"
	"github.com/yeisme/keepsake/pkg/internal/model"
	"github.com/yeisme/keepsake/pkg/metrics"
	"github.com/yeisme/keepsake/pkg/queue"
	"github.com/yeisme/keepsake/pkg/tracing"
)

// FilePart 一个待上传的文件. Open 每次调用返回新的读取器.
type FilePart struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// SubmitRequest 访客投稿.
type SubmitRequest struct {
	UploaderName string
	Message      string
	Files        []FilePart
}

// IntakeService 访客照片/视频投稿.
type IntakeService struct {
	db     *gorm.DB
	blobs  BlobStore
	events queue.Publisher
	cfg    configs.IntakeConfig
	now    func() time.Time
}

// NewIntakeService 从请求上下文构造.
func NewIntakeService(ctx context.Context) *IntakeService {
	return newIntakeService(DepsFromContext(ctx))
}

func newIntakeService(d Deps) *IntakeService {
	return &IntakeService{db: d.DB, blobs: d.Blobs, events: d.Events, cfg: d.Config.Intake, now: time.Now}
}

// Submit 校验后并发上传每个文件并写入记录. 任一文件失败则整体失败，已写入的记录保留.
func (s *IntakeService) Submit(ctx context.Context, req SubmitRequest) ([]model.FamilyUpload, error) {
	name := strings.TrimSpace(req.UploaderName)
	if len(req.Files) == 0 || name == "" {
		return nil, validationError("please add files and your name")
	}

	if s.cfg.MaxFiles > 0 && len(req.Files) > s.cfg.MaxFiles {
		return nil, validationError(fmt.Sprintf("at most %d files per submission", s.cfg.MaxFiles))
	}

	if limit := s.cfg.MaxFileSize(); limit > 0 {
		for _, f := range req.Files {
			if f.Size > limit {
				return nil, validationError(fmt.Sprintf("%s exceeds the %d MB limit", f.Name, s.cfg.MaxFileSizeMB))
			}
		}
	}

	ctx, span := tracing.StartSpan(ctx, "intake.submit")
	defer span.End()

	message := normalizeOptional(&req.Message)
	records := make([]model.FamilyUpload, len(req.Files))

	g, gctx := errgroup.WithContext(ctx)

	for i, f := range req.Files {
		g.Go(func() error {
			rec, err := s.store(gctx, name, message, f)
			if err != nil {
				metrics.Submissions.WithLabelValues("failed").Inc()
				return err
			}

			metrics.Submissions.WithLabelValues("stored").Inc()
			records[i] = rec

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, rec := range records {
		s.events.Publish(ctx, queue.TopicUploadSubmitted, queue.UploadSubmittedPayload{
			UploadID:     rec.ID,
			UploaderName: rec.UploaderName,
			FileURL:      rec.FileURL,
			FileType:     string(rec.FileType),
			Approved:     rec.Approved,
		})
	}

	return records, nil
}

// store 上传单个文件并写入一条投稿记录.
func (s *IntakeService) store(ctx context.Context, name string, message *string, f FilePart) (model.FamilyUpload, error) {
	key, err := objectKey(s.cfg.Prefix, f.Name, "bin", s.now())
	if err != nil {
		return model.FamilyUpload{}, uploadError(err)
	}

	url, err := uploadPart(ctx, s.blobs, key, f)
	if err != nil {
		return model.FamilyUpload{}, err
	}

	rec := model.FamilyUpload{
		UploaderName:  name,
		MemoryMessage: message,
		FileURL:       url,
		FileType:      fileTypeOf(f.ContentType),
		Approved:      s.cfg.AutoApprove,
	}

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return model.FamilyUpload{}, storeError("save upload", err)
	}

	return rec, nil
}

// uploadPart 打开文件并写入对象存储.
func uploadPart(ctx context.Context, blobs BlobStore, key string, f FilePart) (string, error) {
	if f.Open == nil {
		return "", uploadError(fmt.Errorf("file %s has no content", f.Name))
	}

	r, err := f.Open()
	if err != nil {
		return "", uploadError(err)
	}
	defer r.Close()

	size := f.Size
	if size <= 0 {
		size = -1
	}

	url, err := blobs.Upload(ctx, key, r, size, f.ContentType)
	if err != nil {
		return "", uploadError(err)
	}

	return url, nil
}

// fileTypeOf video/* 为视频，其余均视为图片.
func fileTypeOf(contentType string) model.FileType {
	if strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return model.FileTypeVideo
	}

	return model.FileTypeImage
}
