package leaderboard

import (
	"sort"
	"testing"
)

func TestAhead(t *testing.T) {
	tests := []struct {
		name string
		a, b Row
		want bool
	}{
		{"more xp wins", Row{UserID: 2, XPTotal: 200}, Row{UserID: 1, XPTotal: 100}, true},
		{"less xp loses", Row{UserID: 1, XPTotal: 100}, Row{UserID: 2, XPTotal: 200}, false},
		{"xp tie, more energy wins", Row{UserID: 2, XPTotal: 100, Energy: 90}, Row{UserID: 1, XPTotal: 100, Energy: 50}, true},
		{"full tie, older account wins", Row{UserID: 1, XPTotal: 100, Energy: 50}, Row{UserID: 2, XPTotal: 100, Energy: 50}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ahead(tt.a, tt.b); got != tt.want {
				t.Errorf("Ahead(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAheadIsTotalOrder(t *testing.T) {
	rows := []Row{
		{UserID: 1, XPTotal: 100, Energy: 50},
		{UserID: 2, XPTotal: 100, Energy: 50},
		{UserID: 3, XPTotal: 100, Energy: 80},
		{UserID: 4, XPTotal: 300, Energy: 0},
	}

	for _, a := range rows {
		for _, b := range rows {
			if a.UserID == b.UserID {
				continue
			}
			if Ahead(a, b) == Ahead(b, a) {
				t.Errorf("ordering not antisymmetric for users %d and %d", a.UserID, b.UserID)
			}
		}
	}
}

func TestAssignRanks(t *testing.T) {
	rows := []Row{
		{UserID: 4, Username: "dana", Name: "Dana Reyes", XPTotal: 300, Energy: 10},
		{UserID: 3, Username: "cam", Name: "Cam Ito", XPTotal: 100, Energy: 80},
		{UserID: 1, Username: "ash", Name: "Ash Okafor", XPTotal: 100, Energy: 50},
		{UserID: 2, Username: "blake", Name: "Blake", XPTotal: 100, Energy: 50},
	}
	sort.SliceStable(rows, func(i, j int) bool { return Ahead(rows[i], rows[j]) })

	entries := AssignRanks(rows)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	wantOrder := []int64{4, 3, 1, 2}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Errorf("entry %d: rank = %d, want %d", i, e.Rank, i+1)
		}
		if e.UserID != wantOrder[i] {
			t.Errorf("entry %d: user = %d, want %d", i, e.UserID, wantOrder[i])
		}
	}

	// 300 XP: levels cost 100, 150, 200 to clear.
	if entries[0].Level != 3 {
		t.Errorf("level for 300 xp = %d, want 3", entries[0].Level)
	}

	// Full names are abbreviated to "First L."; single names pass through.
	wantDisplay := []string{"Dana R.", "Cam I.", "Ash O.", "Blake"}
	for i, e := range entries {
		if e.DisplayName != wantDisplay[i] {
			t.Errorf("entry %d: display name = %q, want %q", i, e.DisplayName, wantDisplay[i])
		}
	}
}
