package ledger

import (
	"reflect"
	"testing"
)

func TestSetCompleted(t *testing.T) {
	l := New()

	if err := l.SetCompleted("2024-01-15", true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	if !l.Contains("2024-01-15") {
		t.Error("ledger should contain 2024-01-15")
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}

	// Idempotent insert
	if err := l.SetCompleted("2024-01-15", true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("Len after duplicate insert = %d, want 1", l.Len())
	}

	// Remove
	if err := l.SetCompleted("2024-01-15", false); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	if l.Contains("2024-01-15") {
		t.Error("ledger should not contain 2024-01-15 after removal")
	}

	// Idempotent remove
	if err := l.SetCompleted("2024-01-15", false); err != nil {
		t.Fatalf("SetCompleted(remove twice) failed: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len = %d, want 0", l.Len())
	}
}

func TestSetCompleted_MalformedDate(t *testing.T) {
	l := New()
	if err := l.SetCompleted("01/15/2024", true); err == nil {
		t.Error("SetCompleted with malformed date should fail")
	}
	if l.Len() != 0 {
		t.Errorf("malformed date must not mutate the ledger, Len = %d", l.Len())
	}
}

func TestDates_SortedAscending(t *testing.T) {
	l := New()
	for _, d := range []string{"2024-03-01", "2024-01-15", "2024-02-10", "2024-01-01"} {
		if err := l.SetCompleted(d, true); err != nil {
			t.Fatalf("SetCompleted(%q) failed: %v", d, err)
		}
	}

	want := []string{"2024-01-01", "2024-01-15", "2024-02-10", "2024-03-01"}
	if got := l.Dates(); !reflect.DeepEqual(got, want) {
		t.Errorf("Dates = %v, want %v", got, want)
	}
	if got := l.Latest(); got != "2024-03-01" {
		t.Errorf("Latest = %q, want 2024-03-01", got)
	}
}

func TestFromEncoded_Deduplicates(t *testing.T) {
	l := FromEncoded([]int{20240115, 20240101, 20240115})
	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2", l.Len())
	}
	want := []int{20240101, 20240115}
	if got := l.Encoded(); !reflect.DeepEqual(got, want) {
		t.Errorf("Encoded = %v, want %v", got, want)
	}
}

func TestRecords(t *testing.T) {
	l, err := FromDates([]string{"2024-01-02", "2024-01-01"})
	if err != nil {
		t.Fatalf("FromDates failed: %v", err)
	}

	records := l.Records("habit-1")
	if len(records) != 2 {
		t.Fatalf("Records length = %d, want 2", len(records))
	}
	first := records[0]
	if first.HabitID != "habit-1" || first.Date != "2024-01-01" || !first.Completed {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.CompletedAt != "2024-01-01T00:00:00.000Z" {
		t.Errorf("CompletedAt = %q, want midnight UTC timestamp", first.CompletedAt)
	}
}

func TestRecordsInRange(t *testing.T) {
	l, err := FromDates([]string{"2024-01-02"})
	if err != nil {
		t.Fatalf("FromDates failed: %v", err)
	}

	records, err := l.RecordsInRange("h", "2024-01-01", "2024-01-03")
	if err != nil {
		t.Fatalf("RecordsInRange failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("RecordsInRange length = %d, want 3", len(records))
	}
	if records[0].Completed || !records[1].Completed || records[2].Completed {
		t.Errorf("completion flags = %v %v %v, want false true false",
			records[0].Completed, records[1].Completed, records[2].Completed)
	}
	if records[0].CompletedAt != "" {
		t.Errorf("uncompleted record should have empty CompletedAt, got %q", records[0].CompletedAt)
	}

	if _, err := l.RecordsInRange("h", "2024-01-03", "2024-01-01"); err == nil {
		t.Error("RecordsInRange with inverted window should fail")
	}
}

func TestBatchApply(t *testing.T) {
	a := New()
	b := New()
	ledgers := map[string]*Ledger{"a": a, "b": b}

	changes := []Change{
		{HabitID: "a", Date: "2024-01-01", Completed: true},
		{HabitID: "b", Date: "2024-01-01", Completed: true},
		{HabitID: "a", Date: "2024-01-02", Completed: true},
		{HabitID: "a", Date: "2024-01-01", Completed: false},
	}

	affected, err := BatchApply(ledgers, changes)
	if err != nil {
		t.Fatalf("BatchApply failed: %v", err)
	}

	if !reflect.DeepEqual(affected, []string{"a", "b"}) {
		t.Errorf("affected = %v, want [a b]", affected)
	}
	if a.Len() != 1 || !a.Contains("2024-01-02") {
		t.Errorf("habit a ledger = %v, want only 2024-01-02", a.Dates())
	}
	if b.Len() != 1 || !b.Contains("2024-01-01") {
		t.Errorf("habit b ledger = %v, want only 2024-01-01", b.Dates())
	}
}

func TestBatchApply_RejectsBeforeMutation(t *testing.T) {
	a := New()
	if err := a.SetCompleted("2024-01-01", true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	ledgers := map[string]*Ledger{"a": a}

	_, err := BatchApply(ledgers, []Change{
		{HabitID: "a", Date: "2024-01-02", Completed: true},
		{HabitID: "missing", Date: "2024-01-02", Completed: true},
	})
	if err == nil {
		t.Fatal("BatchApply with unknown habit should fail")
	}
	if a.Len() != 1 {
		t.Errorf("failed batch must not mutate any ledger, got %v", a.Dates())
	}

	_, err = BatchApply(ledgers, []Change{
		{HabitID: "a", Date: "bad-date", Completed: true},
	})
	if err == nil {
		t.Fatal("BatchApply with malformed date should fail")
	}
	if a.Len() != 1 {
		t.Errorf("failed batch must not mutate any ledger, got %v", a.Dates())
	}
}
