package repository

import (
	"github.com/eduexamine/eduexamine/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RefreshTokenRepository interface {
	Upsert(token *model.RefreshToken) error
	Find(userID uint, token, userType string) (*model.RefreshToken, error)
	DeleteByToken(token, userType string) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Upsert replaces the persisted token for (user, role); one live
// refresh token per user per role.
func (r *refreshTokenRepository) Upsert(token *model.RefreshToken) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "user_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(token).Error
}

func (r *refreshTokenRepository) Find(userID uint, token, userType string) (*model.RefreshToken, error) {
	var stored model.RefreshToken
	err := r.db.Where("user_id = ? AND token = ? AND user_type = ?", userID, token, userType).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *refreshTokenRepository) DeleteByToken(token, userType string) error {
	return r.db.Where("token = ? AND user_type = ?", token, userType).
		Delete(&model.RefreshToken{}).Error
}
