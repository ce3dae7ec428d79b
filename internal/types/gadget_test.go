package types

import "testing"

func TestParseGadgetStatus(t *testing.T) {
	cases := []struct {
		raw    string
		want   GadgetStatus
		wantOK bool
	}{
		{raw: "Available", want: GadgetStatusAvailable, wantOK: true},
		{raw: "Deployed", want: GadgetStatusDeployed, wantOK: true},
		{raw: "Destroyed", want: GadgetStatusDestroyed, wantOK: true},
		{raw: "Decommissioned", want: GadgetStatusDecommissioned, wantOK: true},
		{raw: "available", wantOK: false},
		{raw: "", wantOK: false},
		{raw: "Lost", wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := ParseGadgetStatus(tc.raw)
			if ok != tc.wantOK {
				t.Fatalf("ParseGadgetStatus(%q) ok=%v, want %v", tc.raw, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("ParseGadgetStatus(%q)=%q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	if GadgetStatusAvailable.IsTerminal() || GadgetStatusDeployed.IsTerminal() {
		t.Fatal("Available and Deployed must not be terminal")
	}
	if !GadgetStatusDestroyed.IsTerminal() || !GadgetStatusDecommissioned.IsTerminal() {
		t.Fatal("Destroyed and Decommissioned must be terminal")
	}
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		name string
		from GadgetStatus
		to   GadgetStatus
		want bool
	}{
		{name: "available_to_deployed", from: GadgetStatusAvailable, to: GadgetStatusDeployed, want: true},
		{name: "available_to_destroyed", from: GadgetStatusAvailable, to: GadgetStatusDestroyed, want: true},
		{name: "available_to_decommissioned", from: GadgetStatusAvailable, to: GadgetStatusDecommissioned, want: true},
		{name: "available_to_available", from: GadgetStatusAvailable, to: GadgetStatusAvailable, want: false},
		{name: "deployed_to_destroyed", from: GadgetStatusDeployed, to: GadgetStatusDestroyed, want: true},
		{name: "deployed_to_decommissioned", from: GadgetStatusDeployed, to: GadgetStatusDecommissioned, want: true},
		{name: "deployed_to_available", from: GadgetStatusDeployed, to: GadgetStatusAvailable, want: false},
		{name: "destroyed_is_terminal", from: GadgetStatusDestroyed, to: GadgetStatusDecommissioned, want: false},
		{name: "destroyed_to_destroyed", from: GadgetStatusDestroyed, to: GadgetStatusDestroyed, want: false},
		{name: "decommissioned_is_terminal", from: GadgetStatusDecommissioned, to: GadgetStatusDeployed, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
				t.Fatalf("%s.CanTransitionTo(%s)=%v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}
