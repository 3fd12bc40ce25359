package entity

import (
	"errors"
	"sort"
	"time"

	"healthcare-portal/pkg/timeslot"

	"github.com/google/uuid"
)

var (
	ErrInvalidWeekday     = errors.New("day must be a lowercase weekday name")
	ErrInvalidTimeRange   = errors.New("start time must be before end time")
	ErrRangeOutsideHours  = errors.New("availability must fall between 06:00 and 22:00")
	ErrInvalidVacationSet = errors.New("vacation start date must not be after end date")
)

// Weekdays in template order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// IsValidWeekday reports whether day is one of Weekdays.
func IsValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// DoctorAvailability is one contiguous bookable range on a weekday.
// StartTime and EndTime are stored in canonical "HH:MM" form.
type DoctorAvailability struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DayOfWeek string    `gorm:"type:varchar(10);not null" json:"day_of_week"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DoctorAvailability) TableName() string {
	return "doctor_availabilities"
}

// Validate checks the weekday, that the range is non-empty and that it lies
// inside the booking window.
func (a *DoctorAvailability) Validate() error {
	if !IsValidWeekday(a.DayOfWeek) {
		return ErrInvalidWeekday
	}
	start, err := timeslot.Parse(a.StartTime)
	if err != nil {
		return err
	}
	end, err := timeslot.Parse(a.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return ErrInvalidTimeRange
	}
	if start < bookingWindowOpen || end > bookingWindowClose {
		return ErrRangeOutsideHours
	}
	a.StartTime, a.EndTime = start.String(), end.String()
	return nil
}

// DoctorBlockedDate closes a single calendar date.
type DoctorBlockedDate struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	BlockedDate time.Time `gorm:"type:date;not null" json:"blocked_date"`
	Reason      string    `gorm:"type:varchar(255)" json:"reason,omitempty"`
}

func (DoctorBlockedDate) TableName() string {
	return "doctor_blocked_dates"
}

// DoctorVacation closes every date in [StartDate, EndDate].
type DoctorVacation struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Reason    string    `gorm:"type:varchar(255)" json:"reason,omitempty"`
}

func (DoctorVacation) TableName() string {
	return "doctor_vacations"
}

// Covers reports whether date falls inside the vacation, both ends inclusive.
func (v *DoctorVacation) Covers(date time.Time) bool {
	d := timeslot.DateOnly(date)
	return !d.Before(timeslot.DateOnly(v.StartDate)) && !d.After(timeslot.DateOnly(v.EndDate))
}

// WeeklyTemplate is a doctor's recurring availability plus date overrides.
type WeeklyTemplate struct {
	DoctorID     uuid.UUID
	Availability []DoctorAvailability
	BlockedDates []DoctorBlockedDate
	Vacations    []DoctorVacation
}

// RangesFor returns the availability ranges defined for a weekday.
func (t *WeeklyTemplate) RangesFor(day string) []DoctorAvailability {
	var ranges []DoctorAvailability
	for _, a := range t.Availability {
		if a.DayOfWeek == day {
			ranges = append(ranges, a)
		}
	}
	return ranges
}

// IsClosedOn reports whether a blocked date or vacation covers date.
func (t *WeeklyTemplate) IsClosedOn(date time.Time) bool {
	d := timeslot.DateOnly(date)
	for _, b := range t.BlockedDates {
		if timeslot.DateOnly(b.BlockedDate).Equal(d) {
			return true
		}
	}
	for i := range t.Vacations {
		if t.Vacations[i].Covers(d) {
			return true
		}
	}
	return false
}

// CandidateSlots expands every range of date's weekday in step-minute
// increments. Overlapping ranges are merged; the result is ascending.
func (t *WeeklyTemplate) CandidateSlots(date time.Time, step int) []string {
	if t == nil || t.IsClosedOn(date) {
		return []string{}
	}

	seen := make(map[string]struct{})
	slots := make([]string, 0)
	for _, r := range t.RangesFor(timeslot.Weekday(date)) {
		start, err := timeslot.Parse(r.StartTime)
		if err != nil {
			continue
		}
		end, err := timeslot.Parse(r.EndTime)
		if err != nil {
			continue
		}
		for _, s := range timeslot.Generate(start, end, step) {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			slots = append(slots, s)
		}
	}

	// zero-padded HH:MM sorts chronologically
	sort.Strings(slots)
	return slots
}

// Validate normalizes and checks every entry of the template.
func (t *WeeklyTemplate) Validate() error {
	for i := range t.Availability {
		if err := t.Availability[i].Validate(); err != nil {
			return err
		}
	}
	for _, v := range t.Vacations {
		if v.StartDate.After(v.EndDate) {
			return ErrInvalidVacationSet
		}
	}
	return nil
}
