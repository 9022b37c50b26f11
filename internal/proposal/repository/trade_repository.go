package repository

import (
	"time"

	"bidbuddy-backend/internal/proposal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TradeRepository defines the interface for trade data access
type TradeRepository interface {
	// FindByUser returns all trades for a user ordered by name
	FindByUser(userID string) ([]*domain.Trade, error)

	// FindByNameCI finds a trade by case-insensitive name match
	FindByNameCI(userID, name string) (*domain.Trade, error)

	// Create creates a new trade
	Create(trade *domain.Trade) error

	// Update updates a trade's name or active flag
	Update(trade *domain.Trade) (bool, error)

	// Deactivate soft-deletes a trade
	Deactivate(id, userID string) (bool, error)
}

// gormTradeRepository implements TradeRepository using GORM
type gormTradeRepository struct {
	db *gorm.DB
}

// NewGormTradeRepository creates a new GORM-based TradeRepository
func NewGormTradeRepository(db *gorm.DB) TradeRepository {
	db.AutoMigrate(&domain.Trade{})
	return &gormTradeRepository{db: db}
}

func (r *gormTradeRepository) FindByUser(userID string) ([]*domain.Trade, error) {
	var trades []*domain.Trade
	err := r.db.Where("user_id = ?", userID).Order("name").Find(&trades).Error
	return trades, err
}

func (r *gormTradeRepository) FindByNameCI(userID, name string) (*domain.Trade, error) {
	var trade domain.Trade
	err := r.db.Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).First(&trade).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &trade, nil
}

func (r *gormTradeRepository) Create(trade *domain.Trade) error {
	if trade.ID == "" {
		trade.ID = uuid.New().String()
	}
	trade.CreatedAt = time.Now()
	trade.UpdatedAt = time.Now()
	return r.db.Create(trade).Error
}

func (r *gormTradeRepository) Update(trade *domain.Trade) (bool, error) {
	result := r.db.Model(&domain.Trade{}).
		Where("id = ? AND user_id = ?", trade.ID, trade.UserID).
		Updates(map[string]interface{}{
			"name":       trade.Name,
			"is_active":  trade.IsActive,
			"updated_at": time.Now(),
		})
	return result.RowsAffected > 0, result.Error
}

func (r *gormTradeRepository) Deactivate(id, userID string) (bool, error) {
	result := r.db.Model(&domain.Trade{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	return result.RowsAffected > 0, result.Error
}
