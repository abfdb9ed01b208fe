package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*RedisLedger, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLedger(client), server
}

func TestRedisLedger_RedeemsOnce(t *testing.T) {
	ledger, server := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.Issue(ctx, 101, 11, "jti-1", time.Minute))
	value, err := server.Get("challenge:101:11")
	require.NoError(t, err)
	assert.Equal(t, "jti-1", value)
	assert.Equal(t, time.Minute, server.TTL("challenge:101:11"))

	result, err := ledger.Redeem(ctx, 101, 11, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, RedeemAccepted, result)
	assert.Equal(t, time.Minute, server.TTL("challenge:101:11"), "ttl survives redemption")

	result, err = ledger.Redeem(ctx, 101, 11, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, RedeemRepeated, result)

	result, err = ledger.Redeem(ctx, 101, 11, "used:jti-1")
	require.NoError(t, err)
	assert.Equal(t, RedeemRefused, result)
}

func TestRedisLedger_LatestIssueWins(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.Issue(ctx, 101, 11, "jti-1", time.Minute))
	require.NoError(t, ledger.Issue(ctx, 101, 11, "jti-2", time.Minute))
	require.NoError(t, ledger.Issue(ctx, 101, 12, "jti-3", time.Minute))

	result, err := ledger.Redeem(ctx, 101, 11, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, RedeemRefused, result, "superseded challenges cannot be redeemed")

	result, err = ledger.Redeem(ctx, 101, 11, "jti-2")
	require.NoError(t, err)
	assert.Equal(t, RedeemAccepted, result)

	result, err = ledger.Redeem(ctx, 101, 12, "jti-3")
	require.NoError(t, err)
	assert.Equal(t, RedeemAccepted, result, "other students are unaffected")
}

func TestRedisLedger_Expiry(t *testing.T) {
	ledger, server := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.Issue(ctx, 101, 11, "jti-1", time.Minute))
	server.FastForward(61 * time.Second)

	result, err := ledger.Redeem(ctx, 101, 11, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, RedeemRefused, result)
}

func TestRedisLedger_Unavailable(t *testing.T) {
	ledger, server := newTestLedger(t)
	server.Close()
	assert.Error(t, ledger.Issue(context.Background(), 101, 11, "jti-1", time.Minute))
	_, err := ledger.Redeem(context.Background(), 101, 11, "jti-1")
	assert.Error(t, err)
}
