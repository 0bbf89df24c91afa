package logic

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/blues/das/internal/chain"
	"github.com/blues/das/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// AuctionLogic 拍卖业务逻辑：创建、查询、定价
type AuctionLogic struct {
	db       *gorm.DB
	transfer chain.TransferService
	clock    chain.Clock
}

// NewAuctionLogic 创建拍卖业务逻辑
func NewAuctionLogic(db *gorm.DB, transfer chain.TransferService, clock chain.Clock) *AuctionLogic {
	return &AuctionLogic{db: db, transfer: transfer, clock: clock}
}

// CreateAuctionParams 创建拍卖参数
type CreateAuctionParams struct {
	Name            string
	Description     string
	ImageURL        string
	Auctioneer      common.Address
	AssetKind       model.AssetKind
	AssetAddress    common.Address
	TokenIdOrAmount *big.Int
	SettlementToken common.Address
	StartingPrice   *big.Int
	ReservedPrice   *big.Int
	DecayRate       int64
	DurationSeconds int64
}

// CreateAuction 创建拍卖并托管拍品
func (l *AuctionLogic) CreateAuction(ctx context.Context, params *CreateAuctionParams) (*model.AuctionModel, error) {
	// 验证参数
	if err := l.validateParams(params); err != nil {
		return nil, err
	}

	now := l.clock.Now()
	auction := &model.AuctionModel{
		Name:              params.Name,
		Description:       params.Description,
		ImageURL:          params.ImageURL,
		AuctioneerAddress: params.Auctioneer.Hex(),
		AssetKind:         params.AssetKind,
		AssetAddress:      params.AssetAddress.Hex(),
		TokenIdOrAmount:   model.NewBigInt(params.TokenIdOrAmount),
		SettlementToken:   params.SettlementToken.Hex(),
		StartingPrice:     model.NewBigInt(params.StartingPrice),
		ReservedPrice:     model.NewBigInt(params.ReservedPrice),
		DecayRate:         params.DecayRate,
		StartTime:         now,
		Deadline:          now.Add(time.Duration(params.DurationSeconds) * time.Second),
		// 哨兵值：未成交时 winner 指向拍卖人自身
		WinnerAddress: params.Auctioneer.Hex(),
		EscrowedFunds: model.NewBigInt(big.NewInt(0)),
		Settled:       false,
		Status:        model.AuctionStatusActive,
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		// 先落库（拿到自增的拍卖ID），再托管划转，任一失败整体回滚
		if err := tx.Create(auction).Error; err != nil {
			return fmt.Errorf("创建拍卖记录失败: %w", err)
		}

		if err := recordEvent(tx, auction.Id, model.EventTypeAuctionCreated, map[string]interface{}{
			"auctionId":       auction.Id,
			"name":            auction.Name,
			"auctioneer":      auction.AuctioneerAddress,
			"assetKind":       auction.AssetKind,
			"asset":           auction.AssetAddress,
			"tokenIdOrAmount": auction.TokenIdOrAmount.String(),
			"settlementToken": auction.SettlementToken,
			"startingPrice":   auction.StartingPrice.String(),
			"reservedPrice":   auction.ReservedPrice.String(),
			"decayRate":       auction.DecayRate,
			"deadline":        auction.Deadline.Unix(),
		}); err != nil {
			return err
		}

		// 拍品划入托管账户（创建者需提前授权）
		isAsset := auction.AssetKind == model.AssetKindNFT
		if err := l.transfer.ReceiveFunds(ctx, isAsset, params.AssetAddress, params.Auctioneer, params.TokenIdOrAmount); err != nil {
			return fmt.Errorf("托管拍品失败: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return auction, nil
}

// GetAuctions 获取拍卖列表
func (l *AuctionLogic) GetAuctions(status, auctioneer string, page, pageSize int) ([]model.AuctionModel, int64, error) {
	var auctions []model.AuctionModel
	var total int64

	// 构建查询条件
	query := l.db.Model(&model.AuctionModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if auctioneer != "" {
		query = query.Where("auctioneer_address = ?", auctioneer)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取拍卖总数失败: %w", err)
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&auctions).Error; err != nil {
		return nil, 0, fmt.Errorf("获取拍卖列表失败: %w", err)
	}

	return auctions, total, nil
}

// GetAuction 获取拍卖详情
func (l *AuctionLogic) GetAuction(id int64) (*model.AuctionModel, error) {
	var auction model.AuctionModel
	if err := l.db.First(&auction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuctionNotFound
		}
		return nil, fmt.Errorf("获取拍卖详情失败: %w", err)
	}

	return &auction, nil
}

// GetCurrentPrice 获取拍卖当前价格
func (l *AuctionLogic) GetCurrentPrice(id int64) (*big.Int, error) {
	auction, err := l.GetAuction(id)
	if err != nil {
		return nil, err
	}

	return CurrentPrice(auction, l.clock.Now())
}

// validateParams 验证创建参数
func (l *AuctionLogic) validateParams(params *CreateAuctionParams) error {
	if params.Name == "" {
		return fmt.Errorf("%w: 拍卖名称不能为空", ErrInvalidParams)
	}
	if params.Auctioneer == (common.Address{}) ||
		params.AssetAddress == (common.Address{}) ||
		params.SettlementToken == (common.Address{}) {
		return fmt.Errorf("%w: 地址不能为零地址", ErrInvalidParams)
	}
	if params.AssetKind != model.AssetKindNFT && params.AssetKind != model.AssetKindFungible {
		return fmt.Errorf("%w: 未知的拍品类型 %q", ErrInvalidParams, params.AssetKind)
	}
	if params.TokenIdOrAmount == nil || params.TokenIdOrAmount.Sign() < 0 {
		return fmt.Errorf("%w: 拍品数量无效", ErrInvalidParams)
	}
	if params.StartingPrice == nil || params.ReservedPrice == nil ||
		params.StartingPrice.Sign() < 0 || params.ReservedPrice.Sign() < 0 {
		return fmt.Errorf("%w: 价格不能为空或负数", ErrInvalidParams)
	}
	if params.StartingPrice.Cmp(params.ReservedPrice) < 0 {
		return fmt.Errorf("%w: 起拍价不能低于保留价", ErrInvalidParams)
	}
	if params.DecayRate <= 0 {
		return fmt.Errorf("%w: 衰减速率必须大于0", ErrInvalidParams)
	}
	if params.DurationSeconds <= 0 {
		return fmt.Errorf("%w: 拍卖时长必须大于0", ErrInvalidParams)
	}
	return nil
}
