package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

// 2026-03-02 - понедельник
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestResolveSlots(t *testing.T) {
	tests := []struct {
		name  string
		date  time.Time
		rules domain.RuleSet
		want  []types.TimeString
	}{
		{
			name:  "final step equal to end is excluded",
			date:  monday,
			rules: domain.RuleSet{Weekly: []domain.WeeklyRule{{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30"}}},
			want:  []types.TimeString{"09:00", "09:30", "10:00"},
		},
		{
			name:  "partial final step starting before end is included",
			date:  monday,
			rules: domain.RuleSet{Weekly: []domain.WeeklyRule{{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:15"}}},
			want:  []types.TimeString{"09:00", "09:30", "10:00"},
		},
		{
			name:  "start aligned up to step boundary",
			date:  monday,
			rules: domain.RuleSet{Weekly: []domain.WeeklyRule{{DayOfWeek: 1, StartTime: "09:10", EndTime: "10:15"}}},
			want:  []types.TimeString{"09:30", "10:00"},
		},
		{
			name: "weekly and date rules are unioned without duplicates",
			date: monday,
			rules: domain.RuleSet{
				Weekly: []domain.WeeklyRule{{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}},
				Dates:  []domain.DateRule{{Date: monday, StartTime: "09:30", EndTime: "11:00"}},
			},
			want: []types.TimeString{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name: "result is ascending regardless of rule order",
			date: monday,
			rules: domain.RuleSet{Weekly: []domain.WeeklyRule{
				{DayOfWeek: 1, StartTime: "15:00", EndTime: "16:00"},
				{DayOfWeek: 1, StartTime: "08:00", EndTime: "08:30"},
			}},
			want: []types.TimeString{"08:00", "15:00", "15:30"},
		},
		{
			name:  "start equal to end yields nothing",
			date:  monday,
			rules: domain.RuleSet{Weekly: []domain.WeeklyRule{{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}}},
			want:  []types.TimeString{},
		},
		{
			name:  "no applicable rule yields nothing",
			date:  monday,
			rules: domain.RuleSet{Weekly: []domain.WeeklyRule{{DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00"}}},
			want:  []types.TimeString{},
		},
		{
			name:  "date rule on another day is ignored",
			date:  monday,
			rules: domain.RuleSet{Dates: []domain.DateRule{{Date: monday.AddDate(0, 0, 1), StartTime: "09:00", EndTime: "12:00"}}},
			want:  []types.TimeString{},
		},
		{
			name:  "rule running to the end of day",
			date:  monday,
			rules: domain.RuleSet{Weekly: []domain.WeeklyRule{{DayOfWeek: 1, StartTime: "22:30", EndTime: "23:59"}}},
			want:  []types.TimeString{"22:30", "23:00", "23:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSlots(tt.date, tt.rules)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSlots_MalformedRuleFailsFast(t *testing.T) {
	rules := domain.RuleSet{Weekly: []domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
		{ID: 7, DayOfWeek: 1, StartTime: "9 am", EndTime: "10:00"},
	}}

	slots, err := ResolveSlots(monday, rules)
	assert.Nil(t, slots)
	assert.ErrorIs(t, err, domain.ErrInvalidRule)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResolveSlots_MalformedRuleOnOtherDayIsNotConsulted(t *testing.T) {
	rules := domain.RuleSet{Weekly: []domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
		{DayOfWeek: 3, StartTime: "bad", EndTime: "10:00"},
	}}

	slots, err := ResolveSlots(monday, rules)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, slots)
}

func TestIsDateAvailable(t *testing.T) {
	rules := domain.RuleSet{
		Weekly: []domain.WeeklyRule{{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}},
		Dates:  []domain.DateRule{{Date: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), StartTime: "12:00", EndTime: "13:00"}},
	}

	assert.True(t, IsDateAvailable(monday, rules), "weekday match")
	assert.True(t, IsDateAvailable(monday.AddDate(0, 0, 7), rules), "next monday")
	assert.True(t, IsDateAvailable(time.Date(2026, 3, 7, 18, 0, 0, 0, time.UTC), rules), "exact date match")
	assert.False(t, IsDateAvailable(monday.AddDate(0, 0, 1), rules), "tuesday")
	assert.False(t, IsDateAvailable(monday, domain.RuleSet{}), "no rules")
}

func TestNoMatchingRule_NotAvailableAndNoSlots(t *testing.T) {
	rules := domain.RuleSet{Weekly: []domain.WeeklyRule{{DayOfWeek: 5, StartTime: "09:00", EndTime: "17:00"}}}

	for d := 0; d < 7; d++ {
		date := monday.AddDate(0, 0, d)
		if date.Weekday() == time.Friday {
			continue
		}
		assert.False(t, IsDateAvailable(date, rules))
		slots, err := ResolveSlots(date, rules)
		require.NoError(t, err)
		assert.Empty(t, slots)
	}
}

func TestAvailableDates(t *testing.T) {
	rules := domain.RuleSet{
		Weekly: []domain.WeeklyRule{{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}},
		Dates:  []domain.DateRule{{Date: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), StartTime: "12:00", EndTime: "13:00"}},
	}

	got := AvailableDates(monday, monday.AddDate(0, 0, 7), rules)
	require.Len(t, got, 3)
	assert.Equal(t, monday, got[0])
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), got[1])
	assert.Equal(t, monday.AddDate(0, 0, 7), got[2])

	assert.Empty(t, AvailableDates(monday, monday.AddDate(0, 0, 7), domain.RuleSet{}))
}
