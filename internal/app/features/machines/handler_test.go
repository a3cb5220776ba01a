package machines

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	machinestore "github.com/dalemusser/castwatch/internal/app/store/machines"
	"github.com/dalemusser/castwatch/internal/domain/models"
	"github.com/dalemusser/castwatch/internal/testutil"
	"go.uber.org/zap"
)

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := machinestore.New(db)
	for _, m := range []models.Machine{
		{Serial: "DC-02", Name: "Caster 2", Active: true},
		{Serial: "DC-01", Name: "Caster 1", Active: true},
	} {
		if err := store.Upsert(ctx, m); err != nil {
			t.Fatalf("Upsert(%s): %v", m.Serial, err)
		}
	}

	h := NewHandler(db, zap.NewNop())
	router := Routes(h)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []models.Machine
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d machines, want 2", len(got))
	}
	if got[0].Serial != "DC-01" || got[1].Serial != "DC-02" {
		t.Errorf("order = %s, %s, want DC-01, DC-02", got[0].Serial, got[1].Serial)
	}
}

func TestList_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)

	h := NewHandler(db, zap.NewNop())
	router := Routes(h)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
