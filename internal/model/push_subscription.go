package model

import "time"

// PushSubscription holds a staff browser's web push subscription.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey;size:512"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	Role      string    `gorm:"size:32"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Interests []TableInterest `gorm:"foreignKey:SubscriptionEndpoint;constraint:OnDelete:CASCADE"`
}

// TableInterest marks a subscription as wanting alerts for one table.
// Table ids come from the backend layout, so there is no local foreign key
// to resolve them against.
type TableInterest struct {
	SubscriptionEndpoint string `gorm:"primaryKey;size:512"`
	TableID              string `gorm:"primaryKey;size:64"`
}
