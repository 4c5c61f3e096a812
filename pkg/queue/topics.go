package queue

import "sort"

// 主题命名：ks.<领域>.<动作>，发布后不再改名.
const (
	// 投稿与审核.
	TopicUploadSubmitted = "ks.upload.submitted" // 访客投稿已写入（含初始审核状态）
	TopicUploadApproved  = "ks.upload.approved"  // 管理员通过
	TopicUploadRejected  = "ks.upload.rejected"  // 管理员拒绝
	TopicUploadDeleted   = "ks.upload.deleted"   // 管理员删除，对象文件由清理任务回收

	// 里程碑.
	TopicMilestoneMediaAdded     = "ks.milestone.media.added"
	TopicMilestoneMediaDeleted   = "ks.milestone.media.deleted"
	TopicMilestoneCaptionUpdated = "ks.milestone.caption.updated"

	// "第一次"看板.
	TopicFirstUpdated = "ks.first.updated"

	// 来宾内容.
	TopicWishCreated  = "ks.wish.created"
	TopicVoiceCreated = "ks.voice.created"
	TopicLetterSealed = "ks.letter.sealed" // 负载不含信件内容
)

// Domain 事件所属领域，对应 events 配置中的分领域开关.
type Domain string

const (
	DomainUpload    Domain = "upload"
	DomainMilestone Domain = "milestone"
	DomainGuest     Domain = "guest"
)

// 主题分组.
var (
	// ModerationTopics 审计订阅者监听的主题.
	ModerationTopics = []string{
		TopicUploadApproved, TopicUploadRejected, TopicUploadDeleted,
		TopicMilestoneMediaAdded, TopicMilestoneMediaDeleted, TopicMilestoneCaptionUpdated,
		TopicFirstUpdated,
	}

	topicDomains = map[string]Domain{
		TopicUploadSubmitted:         DomainUpload,
		TopicUploadApproved:          DomainUpload,
		TopicUploadRejected:          DomainUpload,
		TopicUploadDeleted:           DomainUpload,
		TopicMilestoneMediaAdded:     DomainMilestone,
		TopicMilestoneMediaDeleted:   DomainMilestone,
		TopicMilestoneCaptionUpdated: DomainMilestone,
		TopicFirstUpdated:            DomainMilestone,
		TopicWishCreated:             DomainGuest,
		TopicVoiceCreated:            DomainGuest,
		TopicLetterSealed:            DomainGuest,
	}
)

// DomainOf 返回主题所属领域.
func DomainOf(topic string) (Domain, bool) {
	d, ok := topicDomains[topic]
	return d, ok
}

// Topics 返回全部主题，按名称排序.
func Topics() []string {
	out := make([]string, 0, len(topicDomains))
	for t := range topicDomains {
		out = append(out, t)
	}

	sort.Strings(out)

	return out
}
