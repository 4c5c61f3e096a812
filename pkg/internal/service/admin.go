package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/keepsake/pkg/internal/types"
	"github.com/yeisme/keepsake/pkg/rule"
)

// AdminService 管理端入口：口令校验与动作分发.
type AdminService struct {
	gate       *Gate
	moderation *ModerationService
	milestones *MilestoneService
	firsts     *FirstsService
	deps       Deps
	now        func() time.Time
}

// NewAdminService 从请求上下文构造.
func NewAdminService(ctx context.Context) *AdminService {
	return newAdminService(DepsFromContext(ctx))
}

func newAdminService(d Deps) *AdminService {
	return &AdminService{
		gate:       NewGate(d.Config.Admin.Password),
		moderation: newModerationService(d),
		milestones: newMilestoneService(d),
		firsts:     newFirstsService(d),
		deps:       d,
		now:        time.Now,
	}
}

// Decode 解析管理请求. 先校验口令，再识别动作并校验字段.
func (s *AdminService) Decode(body []byte) (types.AdminAction, error) {
	var env types.AdminEnvelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, validationError("invalid JSON body")
	}

	if err := s.gate.Check(env.Password); err != nil {
		return nil, err
	}

	target, ok := types.NewAdminActionTarget(env.Action)
	if !ok {
		return nil, ErrUnknownAction
	}

	if err := sonic.Unmarshal(body, target); err != nil {
		return nil, validationError("invalid fields for " + env.Action)
	}

	if err := rule.ValidateStruct(target); err != nil {
		return nil, validationError(rule.Message(err))
	}

	action, ok := types.AdminActionValue(target)
	if !ok {
		return nil, ErrUnknownAction
	}

	return action, nil
}

// Handle 解析并执行一个管理请求，返回要写回的响应体.
func (s *AdminService) Handle(ctx context.Context, body []byte) (any, error) {
	action, err := s.Decode(body)
	if err != nil {
		return nil, err
	}

	return s.Dispatch(ctx, action)
}

// Dispatch 执行已通过校验的动作.
func (s *AdminService) Dispatch(ctx context.Context, action types.AdminAction) (any, error) {
	ok := types.SuccessResponse{Success: true}

	switch a := action.(type) {
	case types.VerifyAction:
		return ok, nil
	case types.ListUploadsAction:
		uploads, err := s.moderation.List(ctx)
		if err != nil {
			return nil, err
		}

		return types.UploadsResponse{Uploads: uploads}, nil
	case types.ApproveAction:
		return ok, s.moderation.Approve(ctx, a.UploadID)
	case types.RejectAction:
		return ok, s.moderation.Reject(ctx, a.UploadID)
	case types.DeleteAction:
		return ok, s.moderation.Delete(ctx, a.UploadID)
	case types.ListMilestonesAction:
		milestones, err := s.milestones.List(ctx)
		if err != nil {
			return nil, err
		}

		return types.MilestonesResponse{Milestones: milestones}, nil
	case types.AddMilestoneMediaAction:
		media, err := s.milestones.AddMedia(ctx, a.MilestoneID, a.FileURL, a.FileType)
		if err != nil {
			return nil, err
		}

		return types.MediaResponse{Success: true, Media: media}, nil
	case types.DeleteMilestoneMediaAction:
		return ok, s.milestones.DeleteMedia(ctx, a.MediaID)
	case types.UpdateMilestoneCaptionAction:
		return ok, s.milestones.UpdateCaption(ctx, a.MilestoneID, a.Caption)
	case types.ListFirstsAction:
		firsts, err := s.firsts.List(ctx)
		if err != nil {
			return nil, err
		}

		return types.FirstsResponse{Firsts: firsts}, nil
	case types.UpdateFirstAction:
		return ok, s.firsts.Update(ctx, a.FirstID, a.Caption, a.PhotoURL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action.Name())
	}
}

// UploadMedia 管理端上传里程碑或"第一次"的照片/视频，返回公开地址.
func (s *AdminService) UploadMedia(ctx context.Context, password, folder string, file *FilePart) (types.AdminMediaResponse, error) {
	if err := s.gate.Check(password); err != nil {
		return types.AdminMediaResponse{}, err
	}

	folder = strings.TrimSpace(folder)
	if folder != types.MediaFolderMilestones && folder != types.MediaFolderFirsts {
		return types.AdminMediaResponse{}, validationError("folder must be milestones or firsts")
	}

	if file == nil {
		return types.AdminMediaResponse{}, validationError("file is required")
	}

	key, err := objectKey(folder, file.Name, "bin", s.now())
	if err != nil {
		return types.AdminMediaResponse{}, uploadError(err)
	}

	url, err := uploadPart(ctx, s.deps.Blobs, key, *file)
	if err != nil {
		return types.AdminMediaResponse{}, err
	}

	return types.AdminMediaResponse{URL: url, FileType: fileTypeOf(file.ContentType)}, nil
}
