package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/blues/das/internal/config"
	"github.com/blues/das/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// TransferService 资产与资金划转接口，结算逻辑只依赖此接口
type TransferService interface {
	// ReceiveFunds 从 from 划入托管账户，isAsset 为真时 idOrAmount 是 token id，否则是金额
	ReceiveFunds(ctx context.Context, isAsset bool, tokenOrAsset common.Address, from common.Address, idOrAmount *big.Int) error
	// SendFunds 从托管账户划出到 to
	SendFunds(ctx context.Context, isAsset bool, tokenOrAsset common.Address, to common.Address, idOrAmount *big.Int) error
}

// ERC20 ABI（仅托管用到的方法）
const erc20ABI = `[
	{
		"constant": false,
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "transfer",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "transferFrom",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	}
]`

// ERC721 ABI（仅托管用到的方法）
const erc721ABI = `[
	{
		"constant": false,
		"inputs": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "tokenId", "type": "uint256"}
		],
		"name": "safeTransferFrom",
		"outputs": [],
		"type": "function"
	}
]`

// Client 基于以太坊的划转实现，托管账户由服务私钥控制
type Client struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	custody    common.Address
	chainId    *big.Int
	erc20      abi.ABI
	erc721     abi.ABI
}

var _ TransferService = (*Client)(nil)

// Init 初始化链上划转客户端
func Init(cfg config.ChainConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	// 解析ABI
	parsedERC20, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC20 ABI: %w", err)
	}
	parsedERC721, err := abi.JSON(strings.NewReader(erc721ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC721 ABI: %w", err)
	}

	custody := crypto.PubkeyToAddress(privateKey.PublicKey)
	logger.Info("Chain client initialized. Custody account: %s", custody.Hex())

	return &Client{
		client:     client,
		privateKey: privateKey,
		custody:    custody,
		chainId:    big.NewInt(cfg.ChainId),
		erc20:      parsedERC20,
		erc721:     parsedERC721,
	}, nil
}

// Custody 获取托管账户地址
func (c *Client) Custody() common.Address {
	return c.custody
}

// ReceiveFunds 从 from 划入托管账户
func (c *Client) ReceiveFunds(ctx context.Context, isAsset bool, tokenOrAsset common.Address, from common.Address, idOrAmount *big.Int) error {
	if isAsset {
		return c.transact(ctx, tokenOrAsset, c.erc721, "safeTransferFrom", from, c.custody, idOrAmount)
	}
	// 同质化资产统一走授权划转，调用方需提前 approve
	return c.transact(ctx, tokenOrAsset, c.erc20, "transferFrom", from, c.custody, idOrAmount)
}

// SendFunds 从托管账户划出到 to
func (c *Client) SendFunds(ctx context.Context, isAsset bool, tokenOrAsset common.Address, to common.Address, idOrAmount *big.Int) error {
	if isAsset {
		return c.transact(ctx, tokenOrAsset, c.erc721, "safeTransferFrom", c.custody, to, idOrAmount)
	}
	return c.transact(ctx, tokenOrAsset, c.erc20, "transfer", to, idOrAmount)
}

// transact 发送交易并等待上链，回执失败视为划转失败
func (c *Client) transact(ctx context.Context, contractAddr common.Address, contractABI abi.ABI, method string, args ...interface{}) error {
	bound := bind.NewBoundContract(contractAddr, contractABI, c.client, c.client, c.client)

	auth, err := bind.NewKeyedTransactorWithChainID(c.privateKey, c.chainId)
	if err != nil {
		return fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	tx, err := bound.Transact(auth, method, args...)
	if err != nil {
		return fmt.Errorf("failed to send %s transaction: %w", method, err)
	}

	// 等待交易确认
	receipt, err := bind.WaitMined(ctx, c.client, tx)
	if err != nil {
		return fmt.Errorf("failed to wait for %s transaction: %w", method, err)
	}
	if receipt.Status == 0 {
		return fmt.Errorf("%s transaction reverted: %s", method, tx.Hash().Hex())
	}

	logger.Debug("Transfer confirmed. Method: %s, TxHash: %s", method, tx.Hash().Hex())
	return nil
}
