package types

// AdminAction 管理端动作的封闭集合. 只有本包内定义的类型可以实现该接口.
type AdminAction interface {
	// Name 返回请求中的 action 名称.
	Name() string
	adminAction()
}

// AdminEnvelope 所有管理请求共有的字段.
type AdminEnvelope struct {
	Action   string `json:"action"`
	Password string `json:"password"`
}

// 动作名称.
const (
	ActionVerify                 = "verify"
	ActionList                   = "list"
	ActionApprove                = "approve"
	ActionReject                 = "reject"
	ActionDelete                 = "delete"
	ActionListMilestones         = "list_milestones"
	ActionAddMilestoneMedia      = "add_milestone_media"
	ActionDeleteMilestoneMedia   = "delete_milestone_media"
	ActionUpdateMilestoneCaption = "update_milestone_caption"
	ActionListFirsts             = "list_firsts"
	ActionUpdateFirst            = "update_first"
)

// VerifyAction 仅校验口令.
type VerifyAction struct{}

// ListUploadsAction 列出全部投稿（不过滤审核状态）.
type ListUploadsAction struct{}

// ApproveAction 通过投稿.
type ApproveAction struct {
	UploadID string `json:"uploadId" rule:"nonblank"`
}

// RejectAction 拒绝投稿.
type RejectAction struct {
	UploadID string `json:"uploadId" rule:"nonblank"`
}

// DeleteAction 删除投稿.
type DeleteAction struct {
	UploadID string `json:"uploadId" rule:"nonblank"`
}

// ListMilestonesAction 列出里程碑及其媒体.
type ListMilestonesAction struct{}

// AddMilestoneMediaAction 为里程碑添加媒体.
type AddMilestoneMediaAction struct {
	MilestoneID string `json:"milestoneId" rule:"nonblank"`
	FileURL     string `json:"fileUrl"     rule:"nonblank"`
	FileType    string `json:"fileType"    rule:"oneof=image video"`
}

// DeleteMilestoneMediaAction 删除里程碑媒体.
type DeleteMilestoneMediaAction struct {
	MediaID string `json:"mediaId" rule:"nonblank"`
}

// UpdateMilestoneCaptionAction 修改里程碑说明，空白表示清除.
type UpdateMilestoneCaptionAction struct {
	MilestoneID string  `json:"milestoneId" rule:"nonblank"`
	Caption     *string `json:"caption"`
}

// ListFirstsAction 列出"第一次"条目.
type ListFirstsAction struct{}

// UpdateFirstAction 修改"第一次"条目，nil 字段保持不变.
type UpdateFirstAction struct {
	FirstID  string  `json:"firstId"  rule:"nonblank"`
	Caption  *string `json:"caption"`
	PhotoURL *string `json:"photoUrl"`
}

func (VerifyAction) Name() string                 { return ActionVerify }
func (ListUploadsAction) Name() string            { return ActionList }
func (ApproveAction) Name() string                { return ActionApprove }
func (RejectAction) Name() string                 { return ActionReject }
func (DeleteAction) Name() string                 { return ActionDelete }
func (ListMilestonesAction) Name() string         { return ActionListMilestones }
func (AddMilestoneMediaAction) Name() string      { return ActionAddMilestoneMedia }
func (DeleteMilestoneMediaAction) Name() string   { return ActionDeleteMilestoneMedia }
func (UpdateMilestoneCaptionAction) Name() string { return ActionUpdateMilestoneCaption }
func (ListFirstsAction) Name() string             { return ActionListFirsts }
func (UpdateFirstAction) Name() string            { return ActionUpdateFirst }

func (VerifyAction) adminAction()                 {}
func (ListUploadsAction) adminAction()            {}
func (ApproveAction) adminAction()                {}
func (RejectAction) adminAction()                 {}
func (DeleteAction) adminAction()                 {}
func (ListMilestonesAction) adminAction()         {}
func (AddMilestoneMediaAction) adminAction()      {}
func (DeleteMilestoneMediaAction) adminAction()   {}
func (UpdateMilestoneCaptionAction) adminAction() {}
func (ListFirstsAction) adminAction()             {}
func (UpdateFirstAction) adminAction()            {}

// adminActions 动作名到解码目标的构造函数.
var adminActions = map[string]func() any{
	ActionVerify:                 func() any { return &VerifyAction{} },
	ActionList:                   func() any { return &ListUploadsAction{} },
	ActionApprove:                func() any { return &ApproveAction{} },
	ActionReject:                 func() any { return &RejectAction{} },
	ActionDelete:                 func() any { return &DeleteAction{} },
	ActionListMilestones:         func() any { return &ListMilestonesAction{} },
	ActionAddMilestoneMedia:      func() any { return &AddMilestoneMediaAction{} },
	ActionDeleteMilestoneMedia:   func() any { return &DeleteMilestoneMediaAction{} },
	ActionUpdateMilestoneCaption: func() any { return &UpdateMilestoneCaptionAction{} },
	ActionListFirsts:             func() any { return &ListFirstsAction{} },
	ActionUpdateFirst:            func() any { return &UpdateFirstAction{} },
}

// NewAdminActionTarget 返回可供 JSON 解码的空动作指针，未知动作返回 false.
func NewAdminActionTarget(name string) (any, bool) {
	ctor, ok := adminActions[name]
	if !ok {
		return nil, false
	}

	return ctor(), true
}

// AdminActionValue 把解码目标转为值类型的 AdminAction.
func AdminActionValue(target any) (AdminAction, bool) {
	switch t := target.(type) {
	case *VerifyAction:
		return *t, true
	case *ListUploadsAction:
		return *t, true
	case *ApproveAction:
		return *t, true
	case *RejectAction:
		return *t, true
	case *DeleteAction:
		return *t, true
	case *ListMilestonesAction:
		return *t, true
	case *AddMilestoneMediaAction:
		return *t, true
	case *DeleteMilestoneMediaAction:
		return *t, true
	case *UpdateMilestoneCaptionAction:
		return *t, true
	case *ListFirstsAction:
		return *t, true
	case *UpdateFirstAction:
		return *t, true
	default:
		return nil, false
	}
}

// AdminActionNames 返回全部动作名称.
func AdminActionNames() []string {
	return []string{
		ActionVerify, ActionList, ActionApprove, ActionReject, ActionDelete,
		ActionListMilestones, ActionAddMilestoneMedia, ActionDeleteMilestoneMedia,
		ActionUpdateMilestoneCaption, ActionListFirsts, ActionUpdateFirst,
	}
}
