package leaderboard

import "testing"

func TestRankEntriesOrdersByPointsDescending(t *testing.T) {
	entries := rankEntries([]Entry{
		{EmployeeID: "b", TotalPoints: 10},
		{EmployeeID: "a", TotalPoints: 30},
		{EmployeeID: "c", TotalPoints: 20},
	})

	if entries[0].EmployeeID != "a" || entries[0].OverallRank != 1 {
		t.Fatalf("expected a at rank 1, got %+v", entries[0])
	}
	if entries[1].EmployeeID != "c" || entries[1].OverallRank != 2 {
		t.Fatalf("expected c at rank 2, got %+v", entries[1])
	}
	if entries[2].EmployeeID != "b" || entries[2].OverallRank != 3 {
		t.Fatalf("expected b at rank 3, got %+v", entries[2])
	}
}

func TestRankEntriesBreaksTiesByEmployeeID(t *testing.T) {
	// Equal totals must always rank the lower employee id first so
	// repeated recomputes produce the same ordering.
	for range 5 {
		entries := rankEntries([]Entry{
			{EmployeeID: "emp-2", TotalPoints: 40},
			{EmployeeID: "emp-1", TotalPoints: 40},
			{EmployeeID: "emp-3", TotalPoints: 40},
		})
		if entries[0].EmployeeID != "emp-1" || entries[1].EmployeeID != "emp-2" || entries[2].EmployeeID != "emp-3" {
			t.Fatalf("unexpected tie order: %s, %s, %s", entries[0].EmployeeID, entries[1].EmployeeID, entries[2].EmployeeID)
		}
		for i, entry := range entries {
			if entry.OverallRank != i+1 {
				t.Fatalf("expected rank %d, got %d", i+1, entry.OverallRank)
			}
		}
	}
}

func TestRankEntriesEmpty(t *testing.T) {
	if entries := rankEntries(nil); len(entries) != 0 {
		t.Fatalf("expected empty result, got %d", len(entries))
	}
}
