package service

import (
	"PassVault/internal/repo"
	"errors"

	"gorm.io/gorm"
)

// Ошибки бизнес-слоя, на которые опирается маппинг HTTP-кодов в хендлерах.
var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidReference = errors.New("groupId does not reference an owned group")
	ErrNothingToUpdate  = errors.New("no fields to update")
)

// mapRepoErr переводит ошибки хранилища в ошибки бизнес-слоя.
func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repo.ErrInvalidReference):
		return ErrInvalidReference
	default:
		return err
	}
}
