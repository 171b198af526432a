package repo

import (
	"PassVault/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// хелпер для создания базовой записи
func mkEntry(id, owner string, upd time.Time) model.PasswordEntry {
	return model.PasswordEntry{
		ID:             id,
		OwnerID:        owner,
		Title:          "title-" + id,
		PasswordCipher: []byte{1},
		PasswordNonce:  []byte{2},
		UpdatedAt:      upd.UTC(),
	}
}

func mkGroup(id, owner, name string) model.PasswordGroup {
	return model.PasswordGroup{ID: id, OwnerID: owner, Name: name}
}

func TestEntryRepository_Create_GetByID(t *testing.T) {
	db := newTestDB(t)
	r := NewEntryRepository(db)
	ctx := context.Background()

	e := mkEntry("e1", "owner-a", time.Now().Add(-time.Minute))
	assert.NoError(t, r.Create(ctx, &e))

	// найдено по id+owner
	got, err := r.GetByID(ctx, "owner-a", "e1")
	assert.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
	assert.Equal(t, "owner-a", got.OwnerID)

	// чужой владелец — не найдено
	got, err = r.GetByID(ctx, "owner-b", "e1")
	assert.Nil(t, got)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestEntryRepository_Create_GroupReference(t *testing.T) {
	db := newTestDB(t)
	entries := NewEntryRepository(db)
	groups := NewGroupRepository(db)
	ctx := context.Background()

	g := mkGroup("g1", "owner-ref", "Work")
	assert.NoError(t, groups.Create(ctx, &g))

	// своя группа — ок
	gid := "g1"
	e := mkEntry("e-ok", "owner-ref", time.Now())
	e.GroupID = &gid
	assert.NoError(t, entries.Create(ctx, &e))

	// несуществующая группа — InvalidReference
	missing := "no-such-group"
	bad := mkEntry("e-bad", "owner-ref", time.Now())
	bad.GroupID = &missing
	assert.ErrorIs(t, entries.Create(ctx, &bad), ErrInvalidReference)

	// группа другого владельца — тоже InvalidReference
	foreign := mkEntry("e-foreign", "owner-other", time.Now())
	foreign.GroupID = &gid
	assert.ErrorIs(t, entries.Create(ctx, &foreign), ErrInvalidReference)
}

func TestEntryRepository_Update(t *testing.T) {
	db := newTestDB(t)
	r := NewEntryRepository(db)
	ctx := context.Background()

	e := mkEntry("e-upd", "owner-upd", time.Now().Add(-time.Hour))
	assert.NoError(t, r.Create(ctx, &e))

	got, err := r.Update(ctx, "owner-upd", "e-upd", map[string]any{"title": "renamed"})
	assert.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	// updated_at должен обновиться на недавнее время
	assert.WithinDuration(t, time.Now().UTC(), got.UpdatedAt, 2*time.Second)

	// чужой владелец — не найдено, запись не изменилась
	_, err = r.Update(ctx, "owner-x", "e-upd", map[string]any{"title": "hacked"})
	assert.Equal(t, gorm.ErrRecordNotFound, err)
	fresh, err := r.GetByID(ctx, "owner-upd", "e-upd")
	assert.NoError(t, err)
	assert.Equal(t, "renamed", fresh.Title)
}

func TestEntryRepository_Update_GroupReference(t *testing.T) {
	db := newTestDB(t)
	entries := NewEntryRepository(db)
	groups := NewGroupRepository(db)
	ctx := context.Background()

	g := mkGroup("g-upd", "owner-gu", "Work")
	assert.NoError(t, groups.Create(ctx, &g))
	e := mkEntry("e-gu", "owner-gu", time.Now())
	assert.NoError(t, entries.Create(ctx, &e))

	// назначение своей группы
	gid := "g-upd"
	got, err := entries.Update(ctx, "owner-gu", "e-gu", map[string]any{"group_id": &gid})
	assert.NoError(t, err)
	if assert.NotNil(t, got.GroupID) {
		assert.Equal(t, "g-upd", *got.GroupID)
	}

	// несуществующая группа — InvalidReference
	missing := "missing"
	_, err = entries.Update(ctx, "owner-gu", "e-gu", map[string]any{"group_id": &missing})
	assert.ErrorIs(t, err, ErrInvalidReference)

	// явный сброс в "без группы"
	got, err = entries.Update(ctx, "owner-gu", "e-gu", map[string]any{"group_id": (*string)(nil)})
	assert.NoError(t, err)
	assert.Nil(t, got.GroupID)
}

func TestEntryRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	r := NewEntryRepository(db)
	ctx := context.Background()

	e := mkEntry("e-del", "owner-del", time.Now())
	assert.NoError(t, r.Create(ctx, &e))

	// чужой владелец — не найдено, запись на месте
	assert.Equal(t, gorm.ErrRecordNotFound, r.Delete(ctx, "owner-x", "e-del"))

	assert.NoError(t, r.Delete(ctx, "owner-del", "e-del"))
	_, err := r.GetByID(ctx, "owner-del", "e-del")
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	// повторное удаление — не найдено
	assert.Equal(t, gorm.ErrRecordNotFound, r.Delete(ctx, "owner-del", "e-del"))
}

func TestEntryRepository_List_OrderAndPaging(t *testing.T) {
	db := newTestDB(t)
	r := NewEntryRepository(db)
	ctx := context.Background()
	const owner = "owner-list"

	t1 := time.Now().UTC().Add(-3 * time.Hour)
	t2 := time.Now().UTC().Add(-2 * time.Hour)

	// c и b делят updated_at — порядок добивается по id
	for _, e := range []model.PasswordEntry{
		mkEntry("a", owner, t1),
		mkEntry("b", owner, t2),
		mkEntry("c", owner, t2),
		mkEntry("x", "owner-stranger", t2), // другой владелец
	} {
		it := e
		assert.NoError(t, r.Create(ctx, &it))
	}

	// свежие сначала, при равенстве id по возрастанию
	items, total, err := r.List(ctx, owner, EntryFilter{Limit: 10, Offset: 0})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	if assert.Len(t, items, 3) {
		assert.Equal(t, "b", items[0].ID)
		assert.Equal(t, "c", items[1].ID)
		assert.Equal(t, "a", items[2].ID)
	}

	// вторая страница по 2
	items, total, err = r.List(ctx, owner, EntryFilter{Limit: 2, Offset: 2})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "a", items[0].ID)
	}

	// страница за пределами — пустой список, total прежний
	items, total, err = r.List(ctx, owner, EntryFilter{Limit: 10, Offset: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestEntryRepository_List_Filters(t *testing.T) {
	db := newTestDB(t)
	entries := NewEntryRepository(db)
	groups := NewGroupRepository(db)
	ctx := context.Background()
	const owner = "owner-filter"

	g := mkGroup("g-f", owner, "Work")
	assert.NoError(t, groups.Create(ctx, &g))
	gid := "g-f"

	mail := mkEntry("f-mail", owner, time.Now())
	mail.Title = "Mail"
	mail.Username = "alice@example.com"
	mail.GroupID = &gid
	assert.NoError(t, entries.Create(ctx, &mail))

	bank := mkEntry("f-bank", owner, time.Now())
	bank.Title = "Bank"
	bank.URL = "https://BANK.example.com"
	assert.NoError(t, entries.Create(ctx, &bank))

	// фильтр по группе
	items, total, err := entries.List(ctx, owner, EntryFilter{Limit: 10, GroupID: &gid})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "f-mail", items[0].ID)
	}

	// только без группы
	items, total, err = entries.List(ctx, owner, EntryFilter{Limit: 10, Ungrouped: true})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "f-bank", items[0].ID)
	}

	// поиск без учёта регистра: по title
	_, total, err = entries.List(ctx, owner, EntryFilter{Limit: 10, Search: "mAiL"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// по username
	_, total, err = entries.List(ctx, owner, EntryFilter{Limit: 10, Search: "ALICE"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// по url
	_, total, err = entries.List(ctx, owner, EntryFilter{Limit: 10, Search: "bank.example"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// нет совпадений
	items, total, err = entries.List(ctx, owner, EntryFilter{Limit: 10, Search: "nothing"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, items)
}
