package router

import (
	"github.com/blues/das/internal/chain"
	"github.com/blues/das/internal/config"
	"github.com/blues/das/internal/handler"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, transfer chain.TransferService, clock chain.Clock, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "dutch-auction-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 拍卖相关路由
		auctionHandler := handler.NewAuctionHandler(db, transfer, clock)
		auctions := v1.Group("/auctions")
		{
			auctions.POST("", auctionHandler.CreateAuction)
			auctions.GET("", auctionHandler.GetAuctions)
			auctions.GET("/:id", auctionHandler.GetAuction)
			auctions.GET("/:id/price", auctionHandler.GetCurrentPrice)
			auctions.POST("/:id/claim", auctionHandler.ClaimAuction)
			auctions.POST("/:id/withdraw", auctionHandler.WithdrawFunds)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
