package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sam-pro/catalog/internal/models"
	"github.com/sam-pro/catalog/internal/service"
)

func TestSettingsUpdate(t *testing.T) {
	store := &fakeStore{}
	svc := service.NewSettingsService(store, store, nil)

	settings := models.AppSettings{
		CompanyName: "SAM PRO",
		CompanyInfo: "info",
	}
	if err := svc.Update(context.Background(), admin(), settings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.settings == nil || store.settings.CompanyName != "SAM PRO" {
		t.Errorf("settings not persisted: %+v", store.settings)
	}
}

func TestSettingsUpdate_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		settings models.AppSettings
	}{
		{"empty company name", models.AppSettings{}},
		{
			"guest enabled without username",
			models.AppSettings{
				CompanyName:      "SAM PRO",
				GuestCredentials: models.GuestCredentials{Enabled: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := service.NewSettingsService(store, store, nil)

			if err := svc.Update(context.Background(), admin(), tt.settings); !errors.Is(err, service.ErrValidation) {
				t.Fatalf("error = %v; want ErrValidation", err)
			}
			if store.settings != nil {
				t.Error("rejected settings must not be persisted")
			}
		})
	}
}

func TestSettingsUpdate_PermissionGating(t *testing.T) {
	store := &fakeStore{}
	svc := service.NewSettingsService(store, store, nil)
	settings := models.AppSettings{CompanyName: "SAM PRO"}

	for _, actor := range []*models.User{reader(), guest()} {
		if err := svc.Update(context.Background(), actor, settings); !errors.Is(err, service.ErrPermissionDenied) {
			t.Errorf("Update as %s: error = %v; want ErrPermissionDenied", actor.Username, err)
		}
	}
}

func TestSettingsLogo(t *testing.T) {
	store := &fakeStore{}
	svc := service.NewSettingsService(store, store, nil)
	ctx := context.Background()

	logo := "data:image/png;base64,AAAA"
	if err := svc.SetLogo(ctx, admin(), &logo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.GetLogo(ctx); got == nil || *got != logo {
		t.Fatalf("logo = %v; want the stored data URL", got)
	}

	if err := svc.SetLogo(ctx, admin(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.GetLogo(ctx); got != nil {
		t.Fatalf("logo = %q; want cleared", *got)
	}

	if err := svc.SetLogo(ctx, reader(), &logo); !errors.Is(err, service.ErrPermissionDenied) {
		t.Errorf("SetLogo without capability: error = %v; want ErrPermissionDenied", err)
	}
}
