package model

import "time"

// Серверная модель записи хранилища паролей.
type PasswordEntry struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID string `gorm:"not null;index" json:"ownerId"` // sub владельца из сессии

	Title    string `json:"title"`
	Username string `json:"username"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`

	// Пароль хранится только в зашифрованном виде (AES-GCM).
	PasswordCipher []byte `gorm:"not null" json:"-"`
	PasswordNonce  []byte `gorm:"not null" json:"-"`
	// Расшифрованное значение для ответа API; в БД не хранится.
	Password string `gorm:"-" json:"password"`

	GroupID *string        `gorm:"type:uuid;index" json:"groupId"`
	Group   *PasswordGroup `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updateTime"`
}
