package logic

import (
	"math/big"
	"testing"
	"time"

	"github.com/blues/das/internal/model"
	"github.com/stretchr/testify/require"
)

func TestCurrentPriceAtCreation(t *testing.T) {
	env := newTestEnv(t)
	auction := env.mustCreate(t, defaultParams())

	price, err := CurrentPrice(auction, env.clock.Now())
	require.NoError(t, err)
	require.Equal(t, 0, price.Cmp(mustWei("100000000000000000000")))
}

func TestCurrentPriceHalvesPerStep(t *testing.T) {
	// decayRate=1e5 时每秒恰好一个半衰期
	env := newTestEnv(t)
	auction := env.mustCreate(t, defaultParams())

	price, err := CurrentPrice(auction, env.clock.Now().Add(1*time.Second))
	require.NoError(t, err)
	require.Equal(t, 0, price.Cmp(mustWei("50000000000000000000")))

	price, err = CurrentPrice(auction, env.clock.Now().Add(2*time.Second))
	require.NoError(t, err)
	require.Equal(t, 0, price.Cmp(mustWei("25000000000000000000")))
}

func TestCurrentPriceFullyDecayed(t *testing.T) {
	env := newTestEnv(t)
	auction := env.mustCreate(t, defaultParams())

	// 61个半衰期后完全衰减到保留价
	price, err := CurrentPrice(auction, env.clock.Now().Add(61*time.Second))
	require.NoError(t, err)
	require.Zero(t, price.Sign())
}

func TestCurrentPriceRespectsReserve(t *testing.T) {
	env := newTestEnv(t)
	params := defaultParams()
	params.ReservedPrice = mustWei("10000000000000000000") // 10e18
	auction := env.mustCreate(t, params)

	// 一个半衰期：10 + 90*0.5 = 55
	price, err := CurrentPrice(auction, env.clock.Now().Add(1*time.Second))
	require.NoError(t, err)
	require.Equal(t, 0, price.Cmp(mustWei("55000000000000000000")))

	// 完全衰减后停在保留价
	price, err = CurrentPrice(auction, env.clock.Now().Add(120*time.Second))
	require.NoError(t, err)
	require.Equal(t, 0, price.Cmp(params.ReservedPrice))
}

func TestCurrentPriceMonotonic(t *testing.T) {
	env := newTestEnv(t)
	params := defaultParams()
	params.DecayRate = 12500 // 0.125，每8秒一个半衰期
	params.ReservedPrice = mustWei("1000000000000000000")
	auction := env.mustCreate(t, params)

	start := env.clock.Now()
	var prev *big.Int
	for sec := 0; sec <= 600; sec += 3 {
		price, err := CurrentPrice(auction, start.Add(time.Duration(sec)*time.Second))
		require.NoError(t, err)

		require.LessOrEqual(t, price.Cmp(&auction.StartingPrice.Int), 0)
		require.GreaterOrEqual(t, price.Cmp(&auction.ReservedPrice.Int), 0)
		if prev != nil {
			require.LessOrEqual(t, price.Cmp(prev), 0, "elapsed=%ds", sec)
		}
		prev = price
	}
}

func TestCurrentPriceSettledAuction(t *testing.T) {
	env := newTestEnv(t)
	auction := env.mustCreate(t, defaultParams())

	auction.Settled = true
	_, err := CurrentPrice(auction, env.clock.Now())
	require.ErrorIs(t, err, ErrAuctionEnded)
}

func TestCurrentPriceBeforeStartClamps(t *testing.T) {
	env := newTestEnv(t)
	auction := env.mustCreate(t, defaultParams())

	// 时钟回拨时按零经过时间处理
	price, err := CurrentPrice(auction, env.clock.Now().Add(-time.Minute))
	require.NoError(t, err)
	require.Equal(t, 0, price.Cmp(&auction.StartingPrice.Int))
}

func TestGetCurrentPrice(t *testing.T) {
	env := newTestEnv(t)
	auction := env.mustCreate(t, defaultParams())

	env.clock.Advance(1 * time.Second)
	price, err := env.auctions.GetCurrentPrice(auction.Id)
	require.NoError(t, err)
	require.Equal(t, 0, price.Cmp(mustWei("50000000000000000000")))

	_, err = env.auctions.GetCurrentPrice(99999)
	require.ErrorIs(t, err, ErrAuctionNotFound)
}

func TestGetCurrentPriceSlowDecay(t *testing.T) {
	// 衰减慢于拍卖时长时，截止后的价格仍按曲线计算且可能非零
	env := newTestEnv(t)
	params := defaultParams()
	params.DecayRate = 100 // 0.001，每1000秒才一个半衰期
	auction := env.mustCreate(t, params)

	price, err := CurrentPrice(auction, env.clock.Now().Add(121*time.Second))
	require.NoError(t, err)
	require.Positive(t, price.Sign())
	require.Negative(t, price.Cmp(&auction.StartingPrice.Int))
}

func allEvents(t *testing.T, env *testEnv, auctionId int64) []model.EventModel {
	t.Helper()
	var events []model.EventModel
	err := env.db.Where("auction_id = ?", auctionId).Order("id ASC").Find(&events).Error
	require.NoError(t, err)
	return events
}
