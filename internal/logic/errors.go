package logic

import (
	"errors"
)

// 结算相关错误，handler 层用 errors.Is 映射为HTTP状态码
var (
	ErrAuctionNotFound  = errors.New("拍卖不存在")
	ErrInvalidParams    = errors.New("拍卖参数无效")
	ErrAuctionEnded     = errors.New("拍卖已结束")
	ErrNotAuctioneer    = errors.New("只有拍卖人可以提取资金")
	ErrNoFundsAvailable = errors.New("没有可提取的资金")
	ErrAuctionOngoing   = errors.New("拍卖尚未结束")
)
