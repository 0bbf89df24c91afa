package logic

import (
	"math/big"
	"time"

	"github.com/blues/das/internal/curve"
	"github.com/blues/das/internal/model"
)

// CurrentPrice 计算拍卖在 now 时刻的价格：
// price = reserved + (starting - reserved) * multiplier / Scale
// 已成交的拍卖没有价格可言，返回 ErrAuctionEnded。
func CurrentPrice(auction *model.AuctionModel, now time.Time) (*big.Int, error) {
	if auction.Settled {
		return nil, ErrAuctionEnded
	}

	elapsedSec := int64(now.Sub(auction.StartTime) / time.Second)
	if elapsedSec < 0 {
		elapsedSec = 0
	}

	// x = 经过秒数 * 衰减速率，超出表范围时按完全衰减封顶，避免溢出
	const horizon = int64(curve.TableSize) * curve.Step
	var x uint64
	if auction.DecayRate > 0 {
		if elapsedSec >= horizon/auction.DecayRate+1 {
			x = uint64(horizon)
		} else {
			x = uint64(elapsedSec * auction.DecayRate)
		}
	}

	multiplier := curve.Multiplier(x)

	// reserved + (starting - reserved) * multiplier / Scale
	price := new(big.Int).Sub(&auction.StartingPrice.Int, &auction.ReservedPrice.Int)
	price.Mul(price, multiplier)
	price.Div(price, curve.Scale)
	price.Add(price, &auction.ReservedPrice.Int)

	return price, nil
}
