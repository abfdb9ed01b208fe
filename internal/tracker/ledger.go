package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v7"
)

const challengeKeyPrefix = "challenge"

type RedeemResult int

const (
	// RedeemRefused means the challenge is not the latest one for its
	// student, or it has lapsed
	RedeemRefused RedeemResult = iota

	// RedeemAccepted means this call consumed the challenge
	RedeemAccepted

	// RedeemRepeated means the challenge was already consumed by an
	// earlier call
	RedeemRepeated
)

// Ledger remembers the latest challenge issued per class session and
// student so that older ones can be refused
type Ledger interface {
	// Issue makes `jti` the only redeemable challenge for the pair
	Issue(ctx context.Context, classSessionId, studentId int64, jti string, ttl time.Duration) error

	// Redeem consumes `jti` if it is the latest challenge for the pair
	Redeem(ctx context.Context, classSessionId, studentId int64, jti string) (RedeemResult, error)
}

// redeemScript swaps the stored jti for a consumed marker, keeping the
// remaining ttl, so that of several concurrent redemptions exactly one
// is accepted and the rest are told it was repeated
var redeemScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if current == ARGV[1] then
  local ttl = redis.call("PTTL", KEYS[1])
  redis.call("SET", KEYS[1], "used:" .. ARGV[1])
  if ttl > 0 then
    redis.call("PEXPIRE", KEYS[1], ttl)
  end
  return 1
end
if current == "used:" .. ARGV[1] then
  return 2
end
return 0
`)

type RedisLedger struct {
	client *redis.Client
}

var _ Ledger = (*RedisLedger)(nil)

func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

func getChallengeKey(classSessionId, studentId int64) string {
	return fmt.Sprintf("%s:%v:%v", challengeKeyPrefix, classSessionId, studentId)
}

func (l *RedisLedger) Issue(ctx context.Context, classSessionId, studentId int64, jti string, ttl time.Duration) error {
	key := getChallengeKey(classSessionId, studentId)
	if err := l.client.WithContext(ctx).Set(key, jti, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store challenge at key[%s]: %w", key, err)
	}
	return nil
}

func (l *RedisLedger) Redeem(ctx context.Context, classSessionId, studentId int64, jti string) (RedeemResult, error) {
	key := getChallengeKey(classSessionId, studentId)
	result, err := redeemScript.Run(l.client.WithContext(ctx), []string{key}, jti).Int64()
	if err != nil {
		return RedeemRefused, fmt.Errorf("failed to redeem challenge at key[%s]: %w", key, err)
	}
	switch result {
	case 1:
		return RedeemAccepted, nil
	case 2:
		return RedeemRepeated, nil
	}
	return RedeemRefused, nil
}
