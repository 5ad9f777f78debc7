package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/sam-pro/catalog/internal/models"
)

const (
	selectSlot = `SELECT value FROM slots WHERE name = ?`
	upsertSlot = `INSERT INTO slots (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP) ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
)

func setupMock(t *testing.T) (*SQLiteSlotRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		db.Close()
	})
	return NewSQLiteSlotRepository(db, nil), mock
}

func expectSlotValue(mock sqlmock.Sqlmock, slot, value string) {
	mock.ExpectQuery(regexp.QuoteMeta(selectSlot)).
		WithArgs(slot).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(value))
}

func expectSlotAbsent(mock sqlmock.Sqlmock, slot string) {
	mock.ExpectQuery(regexp.QuoteMeta(selectSlot)).
		WithArgs(slot).
		WillReturnError(sql.ErrNoRows)
}

func TestLoadItems(t *testing.T) {
	repo, mock := setupMock(t)
	expectSlotValue(mock, SlotItems, `[{"id":"1","name":"Classic Hat"}]`)

	items := repo.LoadItems(context.Background(), nil)
	if len(items) != 1 || items[0].ID != "1" {
		t.Fatalf("items = %+v; want the stored catalog", items)
	}
}

func TestLoadItems_AbsentSlotReturnsDefault(t *testing.T) {
	repo, mock := setupMock(t)
	expectSlotAbsent(mock, SlotItems)

	def := []models.Item{{ID: "seed"}}
	items := repo.LoadItems(context.Background(), def)
	if len(items) != 1 || items[0].ID != "seed" {
		t.Fatalf("items = %+v; want the default", items)
	}
}

func TestLoadItems_MalformedSlotReturnsDefault(t *testing.T) {
	repo, mock := setupMock(t)
	expectSlotValue(mock, SlotItems, `{not json`)

	def := []models.Item{{ID: "seed"}}
	items := repo.LoadItems(context.Background(), def)
	if len(items) != 1 || items[0].ID != "seed" {
		t.Fatalf("items = %+v; want the default", items)
	}
}

func TestLoadItems_QueryErrorReturnsDefault(t *testing.T) {
	repo, mock := setupMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectSlot)).
		WithArgs(SlotItems).
		WillReturnError(errors.New("database is locked"))

	items := repo.LoadItems(context.Background(), []models.Item{})
	if len(items) != 0 {
		t.Fatalf("items = %+v; want the default", items)
	}
}

func TestSaveItems(t *testing.T) {
	repo, mock := setupMock(t)
	mock.ExpectExec(regexp.QuoteMeta(upsertSlot)).
		WithArgs(SlotItems, `[{"id":"1","image":"","name":"Classic Hat","model":"","barcode":"","type":"","category":"","size":"","color":"","material":"","country":"","price":0,"description":""}]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveItems(context.Background(), []models.Item{{ID: "1", Name: "Classic Hat"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSaveItems_NilStoresEmptyArray(t *testing.T) {
	repo, mock := setupMock(t)
	mock.ExpectExec(regexp.QuoteMeta(upsertSlot)).
		WithArgs(SlotItems, `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveItems(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSaveItems_ExecError(t *testing.T) {
	repo, mock := setupMock(t)
	mock.ExpectExec(regexp.QuoteMeta(upsertSlot)).
		WithArgs(SlotItems, `[]`).
		WillReturnError(errors.New("database is locked"))

	if err := repo.SaveItems(context.Background(), nil); err == nil {
		t.Fatal("expected an error")
	}
}

func TestLoadUsers_AbsentSlotIsEmptyRegistry(t *testing.T) {
	repo, mock := setupMock(t)
	expectSlotAbsent(mock, SlotUsers)

	users := repo.LoadUsers(context.Background())
	if users == nil || len(users) != 0 {
		t.Fatalf("users = %+v; want an empty registry", users)
	}
}

func TestLoadQuickEntry(t *testing.T) {
	repo, mock := setupMock(t)
	expectSlotValue(mock, SlotQuickEntry, `{"prices":[20,50],"colors":["أسود"]}`)

	data := repo.LoadQuickEntry(context.Background(), models.UniqueData{})
	if len(data.Prices) != 2 || data.Prices[0] != 20 {
		t.Fatalf("prices = %v", data.Prices)
	}
	if len(data.Colors) != 1 || data.Colors[0] != "أسود" {
		t.Fatalf("colors = %v", data.Colors)
	}
}

func TestLoadSettings_AbsentSlotReturnsDefault(t *testing.T) {
	repo, mock := setupMock(t)
	expectSlotAbsent(mock, SlotSettings)

	def := models.AppSettings{CompanyName: "SAM PRO"}
	settings := repo.LoadSettings(context.Background(), def)
	if settings.CompanyName != "SAM PRO" {
		t.Fatalf("settings = %+v; want the default", settings)
	}
}

func TestLogoSlot(t *testing.T) {
	repo, mock := setupMock(t)

	// JSON null in the slot is a legitimate "no logo" value, distinct from an
	// absent slot.
	expectSlotValue(mock, SlotLogo, `null`)
	def := "fallback"
	if logo := repo.LoadLogo(context.Background(), &def); logo != nil {
		t.Fatalf("logo = %q; want nil for stored null", *logo)
	}

	expectSlotAbsent(mock, SlotLogo)
	if logo := repo.LoadLogo(context.Background(), &def); logo == nil || *logo != "fallback" {
		t.Fatal("absent slot must yield the default")
	}

	mock.ExpectExec(regexp.QuoteMeta(upsertSlot)).
		WithArgs(SlotLogo, `null`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.SaveLogo(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
