package cache

import (
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/gadgetvault-backend/internal/types"
)

func TestGadgetKey(t *testing.T) {
	id := uuid.MustParse("7d9f38c2-4b19-4b86-a2a1-02811de77e3e")
	want := "gadget:7d9f38c2-4b19-4b86-a2a1-02811de77e3e"
	if got := GadgetKey(id); got != want {
		t.Fatalf("GadgetKey()=%q, want %q", got, want)
	}
}

func TestGadgetListKey(t *testing.T) {
	available := types.GadgetStatusAvailable
	destroyed := types.GadgetStatusDestroyed

	cases := []struct {
		name   string
		status *types.GadgetStatus
		search string
		want   string
	}{
		{name: "no_filter", status: nil, search: "", want: "gadgets:all:"},
		{name: "status_only", status: &available, search: "", want: "gadgets:Available:"},
		{name: "search_only", status: nil, search: "hook", want: "gadgets:all:hook"},
		{name: "status_and_search", status: &destroyed, search: "kraken", want: "gadgets:Destroyed:kraken"},
		{name: "search_normalized", status: nil, search: "  Grappling ", want: "gadgets:all:grappling"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GadgetListKey(tc.status, tc.search); got != tc.want {
				t.Fatalf("GadgetListKey()=%q, want %q", got, tc.want)
			}
		})
	}
}
