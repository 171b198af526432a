package model

import "time"

// PasswordGroup — группа записей хранилища.
// Count вычисляется при чтении по ссылкам из password_entries и не хранится.
type PasswordGroup struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID string `gorm:"not null;index" json:"ownerId"`

	Name  string `gorm:"not null" json:"name"`
	Color string `json:"color"`

	Count int64 `gorm:"-" json:"count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updateTime"`
}
