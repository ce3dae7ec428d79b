package repos

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/gadgetvault-backend/internal/logger"
	"github.com/yungbote/gadgetvault-backend/internal/types"
)

var testDBCounter atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:gadgetrepo%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.User{}, &types.UserToken{}, &types.Gadget{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newGadget(name, cn string, status types.GadgetStatus) *types.Gadget {
	return &types.Gadget{
		ID:                        uuid.New(),
		Name:                      name,
		Codename:                  cn,
		Status:                    status,
		MissionSuccessProbability: 50,
	}
}

func TestGadgetRepoCreateAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := NewGadgetRepo(newTestDB(t), logger.NewNop())

	g := &types.Gadget{Name: "Grappling Hook", Codename: "The Kraken", Status: types.GadgetStatusAvailable}
	created, err := repo.Create(ctx, nil, g)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("Create: want non-nil id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("Create: want managed timestamps")
	}
}

func TestGadgetRepoDuplicateCodename(t *testing.T) {
	ctx := context.Background()
	repo := NewGadgetRepo(newTestDB(t), logger.NewNop())

	if _, err := repo.Create(ctx, nil, newGadget("A", "The Kraken", types.GadgetStatusAvailable)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := repo.Create(ctx, nil, newGadget("B", "The Kraken", types.GadgetStatusAvailable))
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("Create with duplicate codename: err=%v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestGadgetRepoGetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewGadgetRepo(newTestDB(t), logger.NewNop())

	_, err := repo.GetByID(ctx, nil, uuid.New())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByID: err=%v, want gorm.ErrRecordNotFound", err)
	}
}

func TestGadgetRepoListFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewGadgetRepo(newTestDB(t), logger.NewNop())

	older := newGadget("Grappling Hook", "The Kraken", types.GadgetStatusAvailable)
	deployed := newGadget("Laser Watch", "Operation Phoenix", types.GadgetStatusDeployed)
	newer := newGadget("Exploding Pen", "The Raven", types.GadgetStatusAvailable)
	for _, g := range []*types.Gadget{older, deployed, newer} {
		if _, err := repo.Create(ctx, nil, g); err != nil {
			t.Fatalf("Create: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	available := types.GadgetStatusAvailable
	got, err := repo.List(ctx, nil, GadgetFilter{Status: &available})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List(status=Available)=%d gadgets, want 2", len(got))
	}
	if got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Fatal("List: want newest-created-first ordering")
	}
}

func TestGadgetRepoListSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewGadgetRepo(newTestDB(t), logger.NewNop())

	hook := newGadget("Grappling Hook", "The Kraken", types.GadgetStatusAvailable)
	pen := newGadget("Exploding Pen", "Operation Kraken", types.GadgetStatusAvailable)
	watch := newGadget("Laser Watch", "The Phoenix", types.GadgetStatusAvailable)
	for _, g := range []*types.Gadget{hook, pen, watch} {
		if _, err := repo.Create(ctx, nil, g); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	cases := []struct {
		name   string
		search string
		want   int
	}{
		{name: "matches_codename_case_insensitive", search: "KRAKEN", want: 2},
		{name: "matches_name", search: "grappling", want: 1},
		{name: "matches_nothing", search: "submarine", want: 0},
		{name: "empty_matches_all", search: "", want: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.List(ctx, nil, GadgetFilter{Search: tc.search})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("List(search=%q)=%d gadgets, want %d", tc.search, len(got), tc.want)
			}
		})
	}
}

func TestGadgetRepoUpdateFieldsStampsDecommissionedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewGadgetRepo(newTestDB(t), logger.NewNop())

	g := newGadget("Grappling Hook", "The Kraken", types.GadgetStatusAvailable)
	if _, err := repo.Create(ctx, nil, g); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := repo.SetStatus(ctx, nil, g.ID, types.GadgetStatusDestroyed)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != types.GadgetStatusDestroyed {
		t.Fatalf("status=%s, want Destroyed", updated.Status)
	}
	if updated.DecommissionedAt == nil {
		t.Fatal("want decommissioned_at stamped with terminal status")
	}
}

func TestGadgetRepoUpdateFieldsLeavesCallerMapUntouched(t *testing.T) {
	ctx := context.Background()
	repo := NewGadgetRepo(newTestDB(t), logger.NewNop())

	g := newGadget("Grappling Hook", "The Kraken", types.GadgetStatusAvailable)
	if _, err := repo.Create(ctx, nil, g); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updates := map[string]interface{}{"status": types.GadgetStatusDestroyed}
	updated, err := repo.UpdateFields(ctx, nil, g.ID, updates)
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if updated.DecommissionedAt == nil {
		t.Fatal("want decommissioned_at stamped with terminal status")
	}
	if len(updates) != 1 {
		t.Fatalf("caller's map has %d entries after UpdateFields, want 1", len(updates))
	}
	if _, present := updates["decommissioned_at"]; present {
		t.Fatal("UpdateFields wrote the stamp into the caller's map")
	}
}

func TestGadgetRepoUpdateFieldsNameOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewGadgetRepo(newTestDB(t), logger.NewNop())

	g := newGadget("Grappling Hook", "The Kraken", types.GadgetStatusAvailable)
	if _, err := repo.Create(ctx, nil, g); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := repo.UpdateFields(ctx, nil, g.ID, map[string]interface{}{"name": "Mark II Hook"})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if updated.Name != "Mark II Hook" {
		t.Fatalf("name=%q, want %q", updated.Name, "Mark II Hook")
	}
	if updated.DecommissionedAt != nil {
		t.Fatal("decommissioned_at must stay unset for non-terminal updates")
	}
	if updated.Codename != g.Codename {
		t.Fatal("codename is immutable")
	}
}

func TestGadgetRepoUpdateFieldsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewGadgetRepo(newTestDB(t), logger.NewNop())

	_, err := repo.UpdateFields(ctx, nil, uuid.New(), map[string]interface{}{"name": "Ghost"})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("UpdateFields: err=%v, want gorm.ErrRecordNotFound", err)
	}
}
