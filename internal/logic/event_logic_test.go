package logic

import (
	"context"
	"testing"

	"github.com/blues/das/internal/model"
	"github.com/stretchr/testify/require"
)

func TestEventLifecycle(t *testing.T) {
	env := newTestEnv(t)
	auction := env.mustCreate(t, defaultParams())

	_, err := env.settle.ClaimAndWithdrawAsset(context.Background(), auction.Id, buyerAddr)
	require.NoError(t, err)

	events, total, err := env.events.GetEvents(auction.Id, "", 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, events, 2)

	// 按类型筛选
	events, total, err = env.events.GetEvents(auction.Id, model.EventTypeItemWithdrawn, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, events, 1)

	// 新事件都未处理
	pending, err := env.events.GetUnprocessedEvents(10)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	// 标记处理后不再返回
	require.NoError(t, env.events.UpdateEventProcessed(pending[0].Id, true))
	pending, err = env.events.GetUnprocessedEvents(10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	event, err := env.events.GetEvent(pending[0].Id)
	require.NoError(t, err)
	require.Equal(t, auction.Id, event.AuctionId)
}
