package storage

import "testing"

func TestPriorityRank(t *testing.T) {
	got := PriorityRank("t.priority")
	want := "CASE t.priority WHEN 'HIGH' THEN 0 WHEN 'NORMAL' THEN 1 WHEN 'LOW' THEN 2 ELSE 3 END"
	if got != want {
		t.Errorf("PriorityRank = %q, want %q", got, want)
	}
}
