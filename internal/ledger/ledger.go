package ledger

import (
	"fmt"
	"sort"

	"github.com/julianstephens/tend/internal/dateutil"
)

// Ledger is a habit's completion history: a sparse, sorted set of
// integer-encoded (YYYYMMDD) calendar dates on which the habit was completed.
// Absence from the set is the sole representation of "not completed". The
// order-preserving date encoding means the slice's numeric order is also
// calendar order.
type Ledger struct {
	days []int
}

// CompletionRecord is a derived view of one ledger member. Records are
// synthesized on demand; they are never stored independently.
type CompletionRecord struct {
	HabitID     string `json:"habit_id"`
	Date        string `json:"date"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// Change is a single completion toggle destined for a habit's ledger.
type Change struct {
	HabitID   string `json:"habit_id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// FromEncoded builds a ledger from already-encoded YYYYMMDD integers, sorting
// and deduplicating them. This is the path from storage.
func FromEncoded(days []int) *Ledger {
	l := &Ledger{days: make([]int, 0, len(days))}
	for _, d := range days {
		l.insert(d)
	}
	return l
}

// FromDates builds a ledger from YYYY-MM-DD strings. Malformed dates are
// rejected; this is a mutation boundary.
func FromDates(dates []string) (*Ledger, error) {
	l := New()
	for _, d := range dates {
		if err := l.SetCompleted(d, true); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// SetCompleted inserts the date into the set when completed is true and
// removes it otherwise. Both directions are idempotent. Malformed dates are
// rejected here so the streak calculator never sees them.
func (l *Ledger) SetCompleted(date string, completed bool) error {
	n, err := dateutil.Encode(date)
	if err != nil {
		return fmt.Errorf("cannot record completion: %w", err)
	}
	if completed {
		l.insert(n)
	} else {
		l.remove(n)
	}
	return nil
}

// Contains reports whether the date is marked completed.
func (l *Ledger) Contains(date string) bool {
	n, err := dateutil.Encode(date)
	if err != nil {
		return false
	}
	i := sort.SearchInts(l.days, n)
	return i < len(l.days) && l.days[i] == n
}

// Len returns the number of completed dates.
func (l *Ledger) Len() int {
	return len(l.days)
}

// Latest returns the most recent completed date, or empty when the ledger is
// empty.
func (l *Ledger) Latest() string {
	if len(l.days) == 0 {
		return ""
	}
	d, err := dateutil.Decode(l.days[len(l.days)-1])
	if err != nil {
		return ""
	}
	return d
}

// Dates returns all completed dates in ascending calendar order.
func (l *Ledger) Dates() []string {
	dates := make([]string, 0, len(l.days))
	for _, n := range l.days {
		d, err := dateutil.Decode(n)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// Encoded returns a copy of the underlying sorted YYYYMMDD integers. This is
// the path back to storage.
func (l *Ledger) Encoded() []int {
	out := make([]int, len(l.days))
	copy(out, l.days)
	return out
}

// Records materializes the completion records for every ledger member in
// ascending date order, each with Completed true.
func (l *Ledger) Records(habitID string) []CompletionRecord {
	records := make([]CompletionRecord, 0, len(l.days))
	for _, d := range l.Dates() {
		records = append(records, CompletionRecord{
			HabitID:     habitID,
			Date:        d,
			Completed:   true,
			CompletedAt: d + "T00:00:00.000Z",
		})
	}
	return records
}

// RecordsInRange synthesizes a record for every date in the inclusive window,
// marking dates absent from the set as not completed.
func (l *Ledger) RecordsInRange(habitID, start, end string) ([]CompletionRecord, error) {
	dates, err := dateutil.DateRange(start, end)
	if err != nil {
		return nil, err
	}

	records := make([]CompletionRecord, 0, len(dates))
	for _, d := range dates {
		rec := CompletionRecord{HabitID: habitID, Date: d, Completed: l.Contains(d)}
		if rec.Completed {
			rec.CompletedAt = d + "T00:00:00.000Z"
		}
		records = append(records, rec)
	}
	return records, nil
}

// BatchApply applies many completion changes grouped by habit, mutating each
// habit's ledger once. It returns the ids of affected habits so the caller can
// recompute streaks once per habit rather than once per change. Unknown habit
// ids and malformed dates fail the whole batch before any mutation.
func BatchApply(ledgers map[string]*Ledger, changes []Change) ([]string, error) {
	grouped := make(map[string][]Change)
	order := make([]string, 0)
	for _, ch := range changes {
		if _, ok := ledgers[ch.HabitID]; !ok {
			return nil, fmt.Errorf("unknown habit %q in batch", ch.HabitID)
		}
		if _, err := dateutil.Encode(ch.Date); err != nil {
			return nil, fmt.Errorf("invalid change for habit %q: %w", ch.HabitID, err)
		}
		if _, seen := grouped[ch.HabitID]; !seen {
			order = append(order, ch.HabitID)
		}
		grouped[ch.HabitID] = append(grouped[ch.HabitID], ch)
	}

	for _, id := range order {
		led := ledgers[id]
		for _, ch := range grouped[id] {
			if err := led.SetCompleted(ch.Date, ch.Completed); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

func (l *Ledger) insert(n int) {
	i := sort.SearchInts(l.days, n)
	if i < len(l.days) && l.days[i] == n {
		return
	}
	l.days = append(l.days, 0)
	copy(l.days[i+1:], l.days[i:])
	l.days[i] = n
}

func (l *Ledger) remove(n int) {
	i := sort.SearchInts(l.days, n)
	if i < len(l.days) && l.days[i] == n {
		l.days = append(l.days[:i], l.days[i+1:]...)
	}
}
