package services

import (
	"errors"

	"learnsphere/models"

	"gorm.io/gorm"
)

// RewardLedger owns the per-user coin balance. Both adjustments are issued as
// single-statement relative updates (coins = coins +/- n) so concurrent
// credits and debits from unrelated quiz completions and video unlocks never
// lose updates. Reading the balance and writing a computed value back is not
// allowed anywhere.
type RewardLedger struct {
	db *gorm.DB
}

func NewRewardLedger(db *gorm.DB) *RewardLedger {
	return &RewardLedger{db: db}
}

// Balance returns the user's current coin balance.
func (l *RewardLedger) Balance(userID uint) (uint, error) {
	var user models.User
	err := l.db.Select("coins").
		Where("id = ? AND is_deleted = false", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return user.Coins, nil
}

// Credit adds amount coins to the user's balance.
func (l *RewardLedger) Credit(userID uint, amount uint) error {
	if amount == 0 {
		return ErrInvalidAmount
	}

	result := l.db.Model(&models.User{}).
		Where("id = ? AND is_deleted = false", userID).
		UpdateColumn("coins", gorm.Expr("coins + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Debit subtracts amount coins from the user's balance. The balance guard is
// part of the UPDATE's WHERE clause, so a concurrent debit can never drive
// the balance negative.
func (l *RewardLedger) Debit(userID uint, amount uint) error {
	if amount == 0 {
		return ErrInvalidAmount
	}

	result := l.db.Model(&models.User{}).
		Where("id = ? AND is_deleted = false AND coins >= ?", userID, amount).
		UpdateColumn("coins", gorm.Expr("coins - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing user from a balance shortfall.
		if _, err := l.Balance(userID); err != nil {
			return err
		}
		return ErrInsufficientBalance
	}
	return nil
}
