package service

import "crypto/subtle"

// Gate 管理口令校验. 每个管理请求都重新校验，没有会话.
type Gate struct {
	secret []byte
}

// NewGate 以配置的口令创建 Gate. 空口令拒绝一切请求.
func NewGate(secret string) *Gate {
	return &Gate{secret: []byte(secret)}
}

// Check 逐字节比较候选口令（区分大小写，不做 trim）.
func (g *Gate) Check(candidate string) error {
	if g == nil || len(g.secret) == 0 {
		return ErrUnauthorized
	}

	if subtle.ConstantTimeCompare(g.secret, []byte(candidate)) != 1 {
		return ErrUnauthorized
	}

	return nil
}
