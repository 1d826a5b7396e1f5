package recurrence

import "testing"

func TestIsDue(t *testing.T) {
	tests := []struct {
		name string
		date string
		rule Rule
		want bool
	}{
		{
			name: "daily always due",
			date: "2024-01-15",
			rule: Rule{Repetition: Daily},
			want: true,
		},
		{
			name: "daily ignores specific days",
			date: "2024-01-15",
			rule: Rule{Repetition: Daily, SpecificDays: []int{0}},
			want: true,
		},
		{
			name: "weekly due on listed weekday",
			date: "2024-01-07", // Sunday
			rule: Rule{Repetition: Weekly, SpecificDays: []int{0}},
			want: true,
		},
		{
			name: "weekly not due on unlisted weekday",
			date: "2024-01-08", // Monday
			rule: Rule{Repetition: Weekly, SpecificDays: []int{0}},
			want: false,
		},
		{
			name: "weekly multiple days",
			date: "2024-01-10", // Wednesday
			rule: Rule{Repetition: Weekly, SpecificDays: []int{1, 3, 5}},
			want: true,
		},
		{
			name: "weekly with no days is due every day",
			date: "2024-01-09",
			rule: Rule{Repetition: Weekly},
			want: true,
		},
		{
			name: "monthly due on listed day of month",
			date: "2024-01-15",
			rule: Rule{Repetition: Monthly, SpecificDays: []int{1, 15}},
			want: true,
		},
		{
			name: "monthly not due on unlisted day",
			date: "2024-01-14",
			rule: Rule{Repetition: Monthly, SpecificDays: []int{1, 15}},
			want: false,
		},
		{
			name: "monthly with no days is due every day",
			date: "2024-01-14",
			rule: Rule{Repetition: Monthly},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsDue(tt.date, tt.rule)
			if err != nil {
				t.Fatalf("IsDue(%q, %+v) failed: %v", tt.date, tt.rule, err)
			}
			if got != tt.want {
				t.Errorf("IsDue(%q, %+v) = %v, want %v", tt.date, tt.rule, got, tt.want)
			}
		})
	}
}

func TestIsDue_InvalidInputs(t *testing.T) {
	if _, err := IsDue("2024-01-15", Rule{Repetition: "yearly"}); err == nil {
		t.Error("IsDue with unknown repetition should fail")
	}
	if _, err := IsDue("15-01-2024", Rule{Repetition: Weekly, SpecificDays: []int{0}}); err == nil {
		t.Error("IsDue with malformed date should fail")
	}
}

func TestRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		wantErr bool
	}{
		{name: "daily", rule: Rule{Repetition: Daily}},
		{name: "weekly with valid days", rule: Rule{Repetition: Weekly, SpecificDays: []int{0, 6}}},
		{name: "monthly with valid days", rule: Rule{Repetition: Monthly, SpecificDays: []int{1, 31}}},
		{name: "unknown repetition", rule: Rule{Repetition: "biweekly"}, wantErr: true},
		{name: "weekday out of range", rule: Rule{Repetition: Weekly, SpecificDays: []int{7}}, wantErr: true},
		{name: "negative weekday", rule: Rule{Repetition: Weekly, SpecificDays: []int{-1}}, wantErr: true},
		{name: "month day zero", rule: Rule{Repetition: Monthly, SpecificDays: []int{0}}, wantErr: true},
		{name: "month day out of range", rule: Rule{Repetition: Monthly, SpecificDays: []int{32}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.rule, err, tt.wantErr)
			}
		})
	}
}

func TestGapThreshold(t *testing.T) {
	if got := GapThreshold(Daily); got != 1 {
		t.Errorf("GapThreshold(Daily) = %d, want 1", got)
	}
	if got := GapThreshold(Weekly); got != 7 {
		t.Errorf("GapThreshold(Weekly) = %d, want 7", got)
	}
	if got := GapThreshold(Monthly); got != 31 {
		t.Errorf("GapThreshold(Monthly) = %d, want 31", got)
	}
}
