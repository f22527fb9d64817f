package services

import (
	"errors"

	"waterzone/models"

	"gorm.io/gorm"
)

// CreateWallet creates the wallet account for a user if it does not
// exist yet. Idempotent: re-creation returns the existing wallet with
// its balance untouched. Currency is fixed at USD.
func CreateWallet(db *gorm.DB, userID uint) (*models.WalletAccount, error) {
	if _, err := GetUser(db, userID); err != nil {
		return nil, err
	}

	var existing models.WalletAccount
	err := db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Internal(err.Error())
	}

	wallet := models.WalletAccount{
		UserID:   userID,
		Balance:  0,
		Currency: "USD",
	}
	if err := db.Create(&wallet).Error; err != nil {
		return nil, Internal("Failed to create wallet")
	}
	return &wallet, nil
}

// GetWallet returns the wallet for a user, or NotFound
func GetWallet(db *gorm.DB, userID uint) (*models.WalletAccount, error) {
	var wallet models.WalletAccount
	if err := db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Wallet not found")
		}
		return nil, Internal(err.Error())
	}
	return &wallet, nil
}

// ListTransactions returns a user's ledger entries, newest first,
// capped at 100 for display.
//
// TODO: nothing writes to the ledger yet — order delivery only flips the
// order's payment flag. Settlement into wallet balances is pending a
// product decision.
func ListTransactions(db *gorm.DB, userID uint) ([]models.WalletTransaction, error) {
	var txs []models.WalletTransaction
	if err := db.Where("user_id = ?", userID).Order("created_at desc").Limit(100).Find(&txs).Error; err != nil {
		return nil, Internal(err.Error())
	}
	return txs, nil
}
