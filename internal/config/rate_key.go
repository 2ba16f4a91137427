package config

import (
	"fmt"
)

type RateKeyStruct struct{}

func NewRateKeyStruct() *RateKeyStruct {
	return &RateKeyStruct{}
}

// IdentityWriteKey returns the rate-limit counter key for an authenticated
// identity's write operations.
func (r *RateKeyStruct) IdentityWriteKey(identityID string) string {
	return fmt.Sprintf("ratelimit:identity:%s:write", identityID)
}

// IPWriteKey returns the rate-limit counter key for unauthenticated callers,
// bucketed by client IP.
func (r *RateKeyStruct) IPWriteKey(ip string) string {
	return fmt.Sprintf("ratelimit:ip:%s:write", ip)
}

var RateKey = NewRateKeyStruct()
