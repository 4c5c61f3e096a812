package jobs

// 任务名称.
const (
	JobOrphanSweep   = "blob.orphan_sweep"
	JobPendingDigest = "moderation.pending_digest"
)

// SweepPrefixes 孤儿清理扫描的对象前缀.
var SweepPrefixes = []string{"family", "voice", "milestones", "firsts"}
