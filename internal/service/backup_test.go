package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/sam-pro/catalog/internal/models"
	"github.com/sam-pro/catalog/internal/service"
)

func populatedStore() *fakeStore {
	logo := "data:image/png;base64,AAAA"
	return &fakeStore{
		items: []models.Item{{ID: "1", Name: "Classic Hat", Type: "كلاسيكية", Image: "i", Price: 100}},
		quick: &models.UniqueData{Colors: []string{"أسود"}, Prices: []float64{100}},
		settings: &models.AppSettings{
			CompanyName:      "SAM PRO",
			GuestCredentials: models.GuestCredentials{Enabled: true, Username: "visitor", Password: "123"},
		},
		logo:    &logo,
		logoSet: true,
	}
}

func TestBackupExport(t *testing.T) {
	store := populatedStore()
	svc := service.NewBackupService(store, nil)

	data, err := svc.Export(context.Background(), admin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Items) != 1 || data.Items[0].ID != "1" {
		t.Errorf("items = %+v", data.Items)
	}
	if !reflect.DeepEqual(data.QuickEntryData.Colors, []string{"أسود"}) {
		t.Errorf("quick-entry data = %+v", data.QuickEntryData)
	}
	if data.Settings.CompanyName != "SAM PRO" {
		t.Errorf("settings = %+v", data.Settings)
	}
	if data.CompanyLogo == nil {
		t.Error("expected the stored logo")
	}
}

func TestBackupExport_GuestRefused(t *testing.T) {
	svc := service.NewBackupService(populatedStore(), nil)

	if _, err := svc.Export(context.Background(), guest()); !errors.Is(err, service.ErrPermissionDenied) {
		t.Fatalf("error = %v; want ErrPermissionDenied", err)
	}
}

func TestBackupImport_RoundTrip(t *testing.T) {
	source := populatedStore()
	svc := service.NewBackupService(source, nil)

	exported, err := svc.Export(context.Background(), admin())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	doc, err := json.Marshal(exported)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	target := &fakeStore{}
	restored, err := service.NewBackupService(target, nil).Import(context.Background(), admin(), doc)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(restored.Items, exported.Items) {
		t.Errorf("items = %+v; want %+v", restored.Items, exported.Items)
	}
	if !reflect.DeepEqual(target.items, exported.Items) {
		t.Error("items not persisted wholesale")
	}
	if target.quick == nil || !reflect.DeepEqual(target.quick.Prices, []float64{100}) {
		t.Errorf("quick-entry data not persisted: %+v", target.quick)
	}
	if target.settings == nil || target.settings.CompanyName != "SAM PRO" {
		t.Errorf("settings not persisted: %+v", target.settings)
	}
	if !target.logoSet || target.logo == nil {
		t.Error("logo not persisted")
	}
}

func TestBackupImport_NullLogoClears(t *testing.T) {
	doc := []byte(`{
		"items": [],
		"quickEntryData": {},
		"settings": {"companyName": "SAM PRO"},
		"companyLogo": null
	}`)
	store := populatedStore()
	svc := service.NewBackupService(store, nil)

	if _, err := svc.Import(context.Background(), admin(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.logoSet || store.logo != nil {
		t.Error("null logo in the document must clear the stored logo")
	}
	if len(store.items) != 0 {
		t.Errorf("items = %+v; want the empty catalog from the document", store.items)
	}
}

func TestBackupImport_MalformedRejectedAtomically(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"missing items", `{"quickEntryData": {}, "settings": {}}`},
		{"items null", `{"items": null, "quickEntryData": {}, "settings": {}}`},
		{"items not an array", `{"items": 5, "quickEntryData": {}, "settings": {}}`},
		{"missing quickEntryData", `{"items": [], "settings": {}}`},
		{"missing settings", `{"items": [], "quickEntryData": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := populatedStore()
			svc := service.NewBackupService(store, nil)

			_, err := svc.Import(context.Background(), admin(), []byte(tt.doc))
			if !errors.Is(err, service.ErrImportMalformed) {
				t.Fatalf("error = %v; want ErrImportMalformed", err)
			}
			if len(store.items) != 1 || store.items[0].ID != "1" {
				t.Error("rejected import must leave the store unchanged")
			}
			if !reflect.DeepEqual(store.quick.Colors, []string{"أسود"}) {
				t.Error("rejected import must leave the collections unchanged")
			}
		})
	}
}

func TestBackupImport_PermissionGating(t *testing.T) {
	svc := service.NewBackupService(populatedStore(), nil)
	doc := []byte(`{"items": [], "quickEntryData": {}, "settings": {}}`)

	for _, actor := range []*models.User{reader(), guest()} {
		if _, err := svc.Import(context.Background(), actor, doc); !errors.Is(err, service.ErrPermissionDenied) {
			t.Errorf("Import as %s: error = %v; want ErrPermissionDenied", actor.Username, err)
		}
	}
}
