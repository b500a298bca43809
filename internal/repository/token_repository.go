package repository

import (
	"context"
	"time"

	"github.com/h4ks-com/farmstead/internal/models"
	"gorm.io/gorm"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, token *models.APIToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindActive returns the unexpired ledger row for a JWT ID, or nil when it was never issued,
// has been revoked, or has expired.
func (r *TokenRepository) FindActive(ctx context.Context, tokenID string) (*models.APIToken, error) {
	var token models.APIToken
	err := r.db.WithContext(ctx).
		Where("token_id = ? AND expires_at > ?", tokenID, time.Now().UTC()).
		First(&token).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *TokenRepository) FindByUserID(ctx context.Context, userID uint) ([]models.APIToken, error) {
	var tokens []models.APIToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tokens).Error
	return tokens, err
}

// Delete revokes one of the user's tokens and reports whether a row was removed.
func (r *TokenRepository) Delete(ctx context.Context, id uint, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).Unscoped().
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.APIToken{})
	return result.RowsAffected > 0, result.Error
}

func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Unscoped().
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&models.APIToken{})
	return result.RowsAffected, result.Error
}
