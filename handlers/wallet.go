package handlers

import (
	"net/http"

	"waterzone/config"
	"waterzone/middleware"
	"waterzone/services"

	"github.com/gin-gonic/gin"
)

// CreateWallet creates the caller's wallet (idempotent)
func CreateWallet(c *gin.Context) {
	wallet, err := services.CreateWallet(config.DB, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": wallet})
}

// GetWallet returns the caller's wallet
func GetWallet(c *gin.Context) {
	wallet, err := services.GetWallet(config.DB, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": wallet})
}

// ListWalletTransactions returns the caller's ledger, newest first
func ListWalletTransactions(c *gin.Context) {
	txs, err := services.ListTransactions(config.DB, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(txs), "transactions": txs})
}
