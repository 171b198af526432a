package service

import (
	"PassVault/internal/crypto"
	"PassVault/internal/model"
	"PassVault/internal/repo"
	"context"

	"github.com/google/uuid"
)

// Параметры постраничной выдачи.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PasswordService инкапсулирует бизнес-логику записей хранилища:
// генерацию id, шифрование пароля и нормализацию постраничных запросов.
type PasswordService struct {
	entries repo.EntryRepository
	key     []byte
}

func NewPasswordService(entries repo.EntryRepository, key []byte) *PasswordService {
	return &PasswordService{entries: entries, key: key}
}

// EntryData — поля записи, переданные клиентом. nil — поле не присылали.
type EntryData struct {
	Title    *string
	Username *string
	Password *string
	URL      *string
	Notes    *string
	GroupID  *string
	GroupSet bool // клиент явно передал groupId (в т.ч. null)
}

// ListQuery — параметры листинга до нормализации.
type ListQuery struct {
	Page      int
	PageSize  int
	GroupID   *string
	Ungrouped bool
	Search    string
}

// EntryPage — страница выдачи записей.
type EntryPage struct {
	List       []model.PasswordEntry `json:"list"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
}

// Create создаёт запись с новым id; пароль шифруется до записи в БД.
func (s *PasswordService) Create(ctx context.Context, ownerID string, d EntryData) (*model.PasswordEntry, error) {
	entry := &model.PasswordEntry{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
	}
	if d.Title != nil {
		entry.Title = *d.Title
	}
	if d.Username != nil {
		entry.Username = *d.Username
	}
	if d.URL != nil {
		entry.URL = *d.URL
	}
	if d.Notes != nil {
		entry.Notes = *d.Notes
	}
	if d.GroupSet {
		entry.GroupID = d.GroupID
	}

	plain := ""
	if d.Password != nil {
		plain = *d.Password
	}
	cipherText, nonce, err := crypto.Encrypt([]byte(plain), s.key)
	if err != nil {
		return nil, err
	}
	entry.PasswordCipher = cipherText
	entry.PasswordNonce = nonce

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, mapRepoErr(err)
	}
	entry.Password = plain
	return entry, nil
}

// Update применяет частичное обновление присланных полей.
func (s *PasswordService) Update(ctx context.Context, ownerID, id string, d EntryData) (*model.PasswordEntry, error) {
	updates := map[string]any{}
	if d.Title != nil {
		updates["title"] = *d.Title
	}
	if d.Username != nil {
		updates["username"] = *d.Username
	}
	if d.URL != nil {
		updates["url"] = *d.URL
	}
	if d.Notes != nil {
		updates["notes"] = *d.Notes
	}
	if d.Password != nil {
		cipherText, nonce, err := crypto.Encrypt([]byte(*d.Password), s.key)
		if err != nil {
			return nil, err
		}
		updates["password_cipher"] = cipherText
		updates["password_nonce"] = nonce
	}
	if d.GroupSet {
		updates["group_id"] = d.GroupID
	}
	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}

	entry, err := s.entries.Update(ctx, ownerID, id, updates)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if err := s.decrypt(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *PasswordService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.entries.Delete(ctx, ownerID, id); err != nil {
		return mapRepoErr(err)
	}
	return nil
}

// List нормализует параметры страницы (page>=1, pageSize в пределах
// [1, MaxPageSize], по умолчанию DefaultPageSize) и считает totalPages.
func (s *PasswordService) List(ctx context.Context, ownerID string, q ListQuery) (*EntryPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	items, total, err := s.entries.List(ctx, ownerID, repo.EntryFilter{
		Limit:     size,
		Offset:    (page - 1) * size,
		GroupID:   q.GroupID,
		Ungrouped: q.Ungrouped,
		Search:    q.Search,
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}

	for i := range items {
		if err := s.decrypt(&items[i]); err != nil {
			return nil, err
		}
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	return &EntryPage{
		List:       items,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}, nil
}

func (s *PasswordService) decrypt(e *model.PasswordEntry) error {
	plain, err := crypto.Decrypt(e.PasswordCipher, s.key, e.PasswordNonce)
	if err != nil {
		return err
	}
	e.Password = string(plain)
	return nil
}
