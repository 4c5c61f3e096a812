package service

import (
	"crypto/rand"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/oklog/ulid"
)

const maxExtLen = 10

// objectKey 生成 <prefix>/<unix-ms>-<随机串>.<ext>. 随机部分取 ULID 的熵段.
func objectKey(prefix, filename, fallbackExt string, now time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("generate object key: %w", err)
	}

	// ULID 前 10 个字符编码时间戳，后 16 个为随机熵
	random := strings.ToLower(id.String()[10:])

	return fmt.Sprintf("%s/%d-%s.%s", strings.Trim(prefix, "/"), now.UnixMilli(), random, extOf(filename, fallbackExt)), nil
}

// extOf 取文件扩展名，只保留 [a-z0-9].
func extOf(filename, fallback string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(strings.ReplaceAll(filename, "\\", "/")), "."))

	var b strings.Builder

	for _, r := range ext {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	ext = b.String()
	if len(ext) > maxExtLen {
		ext = ext[:maxExtLen]
	}

	if ext == "" {
		return fallback
	}

	return ext
}

// keyFromURL 从公开地址中还原对象键. 无法识别时返回空串.
func keyFromURL(url, bucket string) string {
	marker := "/" + bucket + "/"

	i := strings.Index(url, marker)
	if i < 0 {
		return ""
	}

	return url[i+len(marker):]
}
