package models

import "time"

// DefaultScope is the userId under which shared categories are stored.
const DefaultScope = "default"

type Category struct {
	CategoryID string          `firestore:"-" json:"id"`
	UserID     string          `firestore:"userId" json:"userId"` // DefaultScope for shared categories
	Name       string          `firestore:"name" json:"name"`
	Icon       string          `firestore:"icon" json:"icon"`
	Color      string          `firestore:"color" json:"color"`
	Type       TransactionType `firestore:"type" json:"type"`
	CreatedAt  time.Time       `firestore:"createdAt" json:"createdAt"`
}

func (c *Category) IsDefault() bool {
	return c.UserID == DefaultScope
}
