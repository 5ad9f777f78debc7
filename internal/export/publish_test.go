package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sam-pro/catalog/internal/models"
)

func TestRenderPublishable(t *testing.T) {
	data := models.BackupData{
		Items: []models.Item{{ID: "1", Name: "قبعة"}},
		Settings: models.AppSettings{
			CompanyName: "SAM PRO",
		},
	}

	src, err := RenderPublishable(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded models.BackupData
	if err := json.Unmarshal([]byte(src), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Items) != 1 || decoded.Items[0].ID != "1" {
		t.Errorf("decoded items = %+v", decoded.Items)
	}

	if !strings.Contains(src, "قبعة") {
		t.Error("Arabic values must render readable, not \\u-escaped")
	}
	if !strings.HasSuffix(src, "\n") {
		t.Error("snapshot source must end with a newline")
	}
}

func TestRenderPublishable_NilItemsBecomeEmptyArray(t *testing.T) {
	src, err := RenderPublishable(models.BackupData{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(src, `"items": []`) {
		t.Errorf("output = %q; want an empty items array", src)
	}
}
