package repo

import (
	"PassVault/internal/model"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrInvalidReference — запись ссылается на группу, которой нет у владельца.
var ErrInvalidReference = errors.New("entry references a group that does not exist for this owner")

// EntryFilter — параметры выборки записей.
type EntryFilter struct {
	Limit     int
	Offset    int
	GroupID   *string // фильтр по конкретной группе
	Ungrouped bool    // только записи без группы
	Search    string  // подстрока в title/username/url без учёта регистра
}

// EntryRepository — контракт доступа к PasswordEntry для слоя сервиса.
// Все операции ограничены владельцем: чужие записи неотличимы от отсутствующих.
type EntryRepository interface {
	Create(ctx context.Context, entry *model.PasswordEntry) error
	GetByID(ctx context.Context, ownerID, id string) (*model.PasswordEntry, error)

	// Update применяет частичное обновление и возвращает свежую запись.
	// Возвращает gorm.ErrRecordNotFound, если записи с таким id у владельца нет.
	Update(ctx context.Context, ownerID, id string, updates map[string]any) (*model.PasswordEntry, error)

	Delete(ctx context.Context, ownerID, id string) error

	// List возвращает страницу записей и общее число совпадений.
	// Порядок: updated_at по убыванию, при равенстве id по возрастанию.
	List(ctx context.Context, ownerID string, f EntryFilter) ([]model.PasswordEntry, int64, error)
}

type entryRepo struct {
	db *gorm.DB
}

// NewEntryRepository создаёт реализацию репозитория для PasswordEntry.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepo{db: db}
}

// checkGroupRef проверяет, что группа принадлежит владельцу. Вызывается
// внутри транзакции записи, чтобы параллельное удаление группы не оставило
// висячую ссылку.
func checkGroupRef(tx *gorm.DB, ownerID string, groupID *string) error {
	if groupID == nil {
		return nil
	}
	var n int64
	if err := tx.Model(&model.PasswordGroup{}).
		Where("id = ? AND owner_id = ?", *groupID, ownerID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidReference
	}
	return nil
}

func (r *entryRepo) Create(ctx context.Context, entry *model.PasswordEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkGroupRef(tx, entry.OwnerID, entry.GroupID); err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *entryRepo) GetByID(ctx context.Context, ownerID, id string) (*model.PasswordEntry, error) {
	var e model.PasswordEntry
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entryRepo) Update(ctx context.Context, ownerID, id string, updates map[string]any) (*model.PasswordEntry, error) {
	var e model.PasswordEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if gid, ok := updates["group_id"].(*string); ok && gid != nil {
			if err := checkGroupRef(tx, ownerID, gid); err != nil {
				return err
			}
		}
		res := tx.Model(&model.PasswordEntry{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&e).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entryRepo) Delete(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.PasswordEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *entryRepo) List(ctx context.Context, ownerID string, f EntryFilter) ([]model.PasswordEntry, int64, error) {
	// строим условия заново для count и выборки, чтобы не переиспользовать statement
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&model.PasswordEntry{}).Where("owner_id = ?", ownerID)
		if f.Ungrouped {
			q = q.Where("group_id IS NULL")
		} else if f.GroupID != nil {
			q = q.Where("group_id = ?", *f.GroupID)
		}
		if f.Search != "" {
			pat := "%" + strings.ToLower(f.Search) + "%"
			q = q.Where("LOWER(title) LIKE ? OR LOWER(username) LIKE ? OR LOWER(url) LIKE ?", pat, pat, pat)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]model.PasswordEntry, 0)
	if err := scoped().
		Order("updated_at DESC, id ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
