package logic

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/blues/das/internal/chain"
	"github.com/blues/das/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettlementLogic 结算业务逻辑：成交领取与资金提取。
// 每个操作都在行锁事务内执行，先改状态后划转，任一环节失败整体回滚，
// 保证同一拍卖最多只有一次成功的成交。
type SettlementLogic struct {
	db       *gorm.DB
	transfer chain.TransferService
	clock    chain.Clock
}

// NewSettlementLogic 创建结算业务逻辑
func NewSettlementLogic(db *gorm.DB, transfer chain.TransferService, clock chain.Clock) *SettlementLogic {
	return &SettlementLogic{db: db, transfer: transfer, clock: clock}
}

// lockForUpdate 对拍卖记录加行锁。sqlite 不支持 FOR UPDATE，
// 但其写事务本身是整库串行的，等价于行锁
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// ClaimAndWithdrawAsset 按当前价格成交并取出拍品。
// 这是获得拍品的唯一路径：接受当前价格本身就是出价。
// 截止后只有拍卖人可以收回流拍的拍品（按曲线当前价格计入自身托管，不做特殊归零）。
func (s *SettlementLogic) ClaimAndWithdrawAsset(ctx context.Context, id int64, caller common.Address) (*model.AuctionModel, error) {
	now := s.clock.Now()

	var claimed *model.AuctionModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 行锁串行化同一拍卖上的并发操作
		var auction model.AuctionModel
		if err := lockForUpdate(tx).First(&auction, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuctionNotFound
			}
			return fmt.Errorf("获取拍卖记录失败: %w", err)
		}

		if auction.Settled {
			return ErrAuctionEnded
		}

		isAuctioneer := strings.EqualFold(auction.AuctioneerAddress, caller.Hex())
		if !now.Before(auction.Deadline) && !isAuctioneer {
			return ErrAuctionEnded
		}

		// 价格必须在状态变更之前按成交前的状态计算
		price, err := CurrentPrice(&auction, now)
		if err != nil {
			return err
		}

		// 先改状态：winner、托管金额、结算标记一次性写入
		auction.WinnerAddress = caller.Hex()
		auction.EscrowedFunds = model.NewBigInt(price)
		auction.Settled = true
		auction.Status = model.AuctionStatusSettled
		if err := tx.Save(&auction).Error; err != nil {
			return fmt.Errorf("更新拍卖记录失败: %w", err)
		}

		if err := recordEvent(tx, auction.Id, model.EventTypeItemWithdrawn, map[string]interface{}{
			"auctionId":       auction.Id,
			"receiver":        auction.WinnerAddress,
			"asset":           auction.AssetAddress,
			"tokenIdOrAmount": auction.TokenIdOrAmount.String(),
			"price":           price.String(),
		}); err != nil {
			return err
		}

		// 后做划转：买家付款进托管（拍卖人自取无需付款）
		if !isAuctioneer && price.Sign() > 0 {
			token := common.HexToAddress(auction.SettlementToken)
			if err := s.transfer.ReceiveFunds(ctx, false, token, caller, price); err != nil {
				return fmt.Errorf("买家付款失败: %w", err)
			}
		}

		// 拍品划出给领取方
		isAsset := auction.AssetKind == model.AssetKindNFT
		assetAddr := common.HexToAddress(auction.AssetAddress)
		if err := s.transfer.SendFunds(ctx, isAsset, assetAddr, caller, &auction.TokenIdOrAmount.Int); err != nil {
			return fmt.Errorf("拍品划转失败: %w", err)
		}

		claimed = &auction
		return nil
	})
	if err != nil {
		return nil, err
	}

	return claimed, nil
}

// WithdrawFunds 拍卖人提取成交款，托管余额一次性清零
func (s *SettlementLogic) WithdrawFunds(ctx context.Context, id int64, caller common.Address) (*big.Int, error) {
	now := s.clock.Now()

	var amount *big.Int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var auction model.AuctionModel
		if err := lockForUpdate(tx).First(&auction, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuctionNotFound
			}
			return fmt.Errorf("获取拍卖记录失败: %w", err)
		}

		if !strings.EqualFold(auction.AuctioneerAddress, caller.Hex()) {
			return ErrNotAuctioneer
		}
		if auction.EscrowedFunds.Sign() == 0 {
			return ErrNoFundsAvailable
		}
		if now.Before(auction.Deadline) && !auction.Settled {
			return ErrAuctionOngoing
		}

		// 先清零托管余额，再划出
		amount = new(big.Int).Set(&auction.EscrowedFunds.Int)
		auction.EscrowedFunds = model.NewBigInt(big.NewInt(0))
		if err := tx.Save(&auction).Error; err != nil {
			return fmt.Errorf("更新拍卖记录失败: %w", err)
		}

		if err := recordEvent(tx, auction.Id, model.EventTypeFundsWithdrawn, map[string]interface{}{
			"auctionId": auction.Id,
			"receiver":  caller.Hex(),
			"amount":    amount.String(),
		}); err != nil {
			return err
		}

		token := common.HexToAddress(auction.SettlementToken)
		if err := s.transfer.SendFunds(ctx, false, token, caller, amount); err != nil {
			return fmt.Errorf("资金划转失败: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return amount, nil
}
