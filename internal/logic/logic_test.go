package logic

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/blues/das/internal/model"
	"github.com/blues/das/internal/repository"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var (
	auctioneerAddr = common.HexToAddress("0x1111111111111111111111111111111111111111")
	buyerAddr      = common.HexToAddress("0x2222222222222222222222222222222222222222")
	assetAddr      = common.HexToAddress("0x3333333333333333333333333333333333333333")
	tokenAddr      = common.HexToAddress("0x4444444444444444444444444444444444444444")
	otherAddr      = common.HexToAddress("0x5555555555555555555555555555555555555555")
)

// fakeClock 可控时间源
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// transferCall 记录一次划转调用
type transferCall struct {
	Dir     string // receive / send
	IsAsset bool
	Token   common.Address
	Party   common.Address
	Amount  *big.Int
}

// fakeTransfer 记录调用并按配置注入失败的划转实现
type fakeTransfer struct {
	mu         sync.Mutex
	calls      []transferCall
	receiveErr error
	sendErr    error
}

func (f *fakeTransfer) ReceiveFunds(_ context.Context, isAsset bool, token, from common.Address, idOrAmount *big.Int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.receiveErr != nil {
		return f.receiveErr
	}
	f.calls = append(f.calls, transferCall{
		Dir: "receive", IsAsset: isAsset, Token: token, Party: from,
		Amount: new(big.Int).Set(idOrAmount),
	})
	return nil
}

func (f *fakeTransfer) SendFunds(_ context.Context, isAsset bool, token, to common.Address, idOrAmount *big.Int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.calls = append(f.calls, transferCall{
		Dir: "send", IsAsset: isAsset, Token: token, Party: to,
		Amount: new(big.Int).Set(idOrAmount),
	})
	return nil
}

func (f *fakeTransfer) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeTransfer) Calls() []transferCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]transferCall(nil), f.calls...)
}

// testEnv 内存数据库加可控协作方的测试环境
type testEnv struct {
	db       *gorm.DB
	clock    *fakeClock
	transfer *fakeTransfer
	auctions *AuctionLogic
	settle   *SettlementLogic
	events   *EventLogic
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	clock := newFakeClock()
	transfer := &fakeTransfer{}

	return &testEnv{
		db:       db,
		clock:    clock,
		transfer: transfer,
		auctions: NewAuctionLogic(db, transfer, clock),
		settle:   NewSettlementLogic(db, transfer, clock),
		events:   NewEventLogic(db),
	}
}

// defaultParams 起拍价100个token、保留价0、每秒一个半衰期、时长120秒
func defaultParams() *CreateAuctionParams {
	return &CreateAuctionParams{
		Name:            "Genesis Hammer",
		Description:     "first item",
		Auctioneer:      auctioneerAddr,
		AssetKind:       model.AssetKindNFT,
		AssetAddress:    assetAddr,
		TokenIdOrAmount: big.NewInt(7),
		SettlementToken: tokenAddr,
		StartingPrice:   mustWei("100000000000000000000"), // 100e18
		ReservedPrice:   big.NewInt(0),
		DecayRate:       100000, // 1.0
		DurationSeconds: 120,
	}
}

func mustWei(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid wei literal: " + s)
	}
	return v
}

func (env *testEnv) mustCreate(t *testing.T, params *CreateAuctionParams) *model.AuctionModel {
	t.Helper()
	auction, err := env.auctions.CreateAuction(context.Background(), params)
	require.NoError(t, err)
	return auction
}
