// Package store persists staff push subscriptions, the one piece of state
// this service keeps locally.
package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pos-floor-frontend/internal/model"
)

// Store defines the subscription persistence operations.
type Store interface {
	UpsertSubscription(ctx context.Context, sub model.PushSubscription, tableIDs []string) error
	GetSubscription(ctx context.Context, endpoint string) (model.PushSubscription, []string, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscriptionsForTable(ctx context.Context, tableID string) ([]model.PushSubscription, error)
}

// gormStore implements Store using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// UpsertSubscription creates or replaces a subscription along with its full
// table-interest set.
func (s *gormStore) UpsertSubscription(ctx context.Context, sub model.PushSubscription, tableIDs []string) error {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "role"}),
		}).Create(&sub).Error; err != nil {
			return fmt.Errorf("upsert subscription: %w", err)
		}

		// The interest set is replaced wholesale on every upsert.
		if err := tx.Where("subscription_endpoint = ?", sub.Endpoint).
			Delete(&model.TableInterest{}).Error; err != nil {
			return fmt.Errorf("clear table interests: %w", err)
		}
		if len(tableIDs) == 0 {
			return nil
		}

		interests := make([]model.TableInterest, 0, len(tableIDs))
		for _, id := range tableIDs {
			interests = append(interests, model.TableInterest{
				SubscriptionEndpoint: sub.Endpoint,
				TableID:              id,
			})
		}
		if err := tx.Create(&interests).Error; err != nil {
			return fmt.Errorf("save table interests: %w", err)
		}
		return nil
	})
}

// GetSubscription returns a subscription and its interest set.
func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (model.PushSubscription, []string, error) {
	var sub model.PushSubscription
	err := s.db.WithContext(ctx).
		Preload("Interests").
		First(&sub, "endpoint = ?", endpoint).Error
	if err != nil {
		return model.PushSubscription{}, nil, err
	}

	tableIDs := make([]string, len(sub.Interests))
	for i, interest := range sub.Interests {
		tableIDs[i] = interest.TableID
	}
	return sub, tableIDs, nil
}

// DeleteSubscription removes a subscription and its interests.
func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subscription_endpoint = ?", endpoint).
			Delete(&model.TableInterest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PushSubscription{Endpoint: endpoint}).Error
	})
}

// SubscriptionsForTable lists every subscription interested in a table.
func (s *gormStore) SubscriptionsForTable(ctx context.Context, tableID string) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Joins("JOIN table_interests ti ON ti.subscription_endpoint = push_subscriptions.endpoint").
		Where("ti.table_id = ?", tableID).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("fetch subscriptions for table %s: %w", tableID, err)
	}
	return subs, nil
}
