package types

import "time"

// BlobObject 对象存储中的一个对象.
type BlobObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}
