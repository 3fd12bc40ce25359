package service

import (
	"context"
	"errors"
	"time"

	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/internal/domain/repository"
	"healthcare-portal/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// SlotResult is the open slots of one doctor on one date.
type SlotResult struct {
	Doctor *entity.DoctorProfile
	Date   time.Time
	Day    string
	Slots  []string
}

// SlotCalculator derives bookable slots from a doctor's weekly template minus
// the doctor's active appointments.
type SlotCalculator struct {
	log          *logrus.Logger
	doctorRepo   repository.DoctorProfileRepository
	scheduleRepo repository.DoctorScheduleRepository
	apptRepo     repository.AppointmentRepository
	step         int
}

func NewSlotCalculator(
	log *logrus.Logger,
	doctorRepo repository.DoctorProfileRepository,
	scheduleRepo repository.DoctorScheduleRepository,
	apptRepo repository.AppointmentRepository,
) *SlotCalculator {
	return &SlotCalculator{
		log:          log,
		doctorRepo:   doctorRepo,
		scheduleRepo: scheduleRepo,
		apptRepo:     apptRepo,
		step:         timeslot.DefaultStep,
	}
}

// Calculate loads the doctor, template and booked times concurrently, then
// returns the candidate slots that are not booked. It has no side effects.
func (c *SlotCalculator) Calculate(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time) (*SlotResult, error) {
	date = timeslot.DateOnly(date)

	var (
		doctor   *entity.DoctorProfile
		template *entity.WeeklyTemplate
		booked   []string
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		doctor, err = c.doctorRepo.FindByUserID(db, doctorID)
		return err
	})
	g.Go(func() error {
		var err error
		template, err = c.scheduleRepo.FindTemplate(db, doctorID)
		return err
	})
	g.Go(func() error {
		var err error
		booked, err = c.apptRepo.FindBookedTimes(db, doctorID, date)
		return err
	})
	if err := g.Wait(); err != nil {
		c.log.Warnf("Failed to load availability for doctor %s on %s: %+v", doctorID, date.Format(timeslot.DateLayout), err)
		return nil, err
	}

	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return &SlotResult{
		Doctor: doctor,
		Date:   date,
		Day:    timeslot.Weekday(date),
		Slots:  ExcludeBooked(template.CandidateSlots(date, c.step), booked),
	}, nil
}

// ExcludeBooked keeps the order of candidates and drops every booked time.
func ExcludeBooked(candidates, booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	free := make([]string, 0, len(candidates))
	for _, slot := range candidates {
		if _, ok := taken[slot]; ok {
			continue
		}
		free = append(free, slot)
	}
	return free
}
