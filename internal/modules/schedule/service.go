package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"fieldbook/internal/domain"
	"fieldbook/internal/modules/pricing"
	"fieldbook/internal/repository"
)

// SlotDuration is the fixed length of every generated slot.
const SlotDuration = 30 * time.Minute

type Service struct {
	slots      SlotRepository
	rules      RuleRepository
	fields     FieldRepository
	facilities FacilityRepository

	nowFn func() time.Time
}

func NewService(
	slots SlotRepository,
	rules RuleRepository,
	fields FieldRepository,
	facilities FacilityRepository,
) *Service {
	return &Service{
		slots:      slots,
		rules:      rules,
		fields:     fields,
		facilities: facilities,
		nowFn:      time.Now,
	}
}

// Generate produces fixed-duration slots for a field over a date range.
// The run is all-or-nothing: if any candidate slot already exists, nothing is
// created and the duplicate dates come back on ErrDuplicateSchedule.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date", ErrValidation)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date", ErrValidation)
	}

	now := s.nowFn()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if startDate.Before(today) {
		return nil, fmt.Errorf("%w: start date must not be before today", ErrValidation)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: start date must not be after end date", ErrValidation)
	}
	if req.DailyStartTime >= req.DailyEndTime {
		return nil, fmt.Errorf("%w: daily start time must be before daily end time", ErrValidation)
	}

	field, err := s.fields.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: field %d", ErrNotFound, req.FieldID)
		}
		return nil, fmt.Errorf("load field: %w", err)
	}
	facility, err := s.facilities.GetByID(ctx, field.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("load facility: %w", err)
	}
	if req.DailyStartTime < facility.OpenTime {
		return nil, fmt.Errorf("%w: daily start time is before facility opening time %s", ErrValidation, facility.OpenTime)
	}
	if req.DailyEndTime > facility.CloseTime {
		return nil, fmt.Errorf("%w: daily end time is after facility closing time %s", ErrValidation, facility.CloseTime)
	}

	rules, err := s.rules.ListByField(ctx, req.FieldID)
	if err != nil {
		return nil, fmt.Errorf("list pricing rules: %w", err)
	}

	existing, err := s.slots.ListByFieldBetween(ctx, req.FieldID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("load existing schedule: %w", err)
	}
	taken := make(map[string]struct{}, len(existing))
	for _, sl := range existing {
		taken[slotKey(sl.Date, sl.StartTime, sl.EndTime)] = struct{}{}
	}

	startMin := clockToMinutes(req.DailyStartTime)
	endMin := clockToMinutes(req.DailyEndTime)
	stepMin := int(SlotDuration.Minutes())

	var staged []domain.Slot
	dupDates := make(map[time.Time]struct{})

	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		if date.Before(today) {
			continue
		}
		// Walk the daily window in fixed steps; a remainder shorter than the
		// slot duration is dropped rather than emitted as a partial slot.
		for cur := startMin; cur+stepMin <= endMin; cur += stepMin {
			slotStart := minutesToClock(cur)
			slotEnd := minutesToClock(cur + stepMin)

			if date.Equal(today) && cur+stepMin <= now.Hour()*60+now.Minute() {
				continue
			}

			if _, dup := taken[slotKey(date, slotStart, slotEnd)]; dup {
				dupDates[date] = struct{}{}
				continue
			}

			staged = append(staged, domain.Slot{
				FieldID:   req.FieldID,
				Date:      date,
				StartTime: slotStart,
				EndTime:   slotEnd,
				Price:     pricing.ResolvePrice(rules, slotStart),
				Status:    domain.SlotAvailable,
				Notes:     req.Notes,
			})
		}
	}

	if len(dupDates) > 0 {
		return &GenerateResult{DuplicateDates: collapseDateRanges(dupDates)}, ErrDuplicateSchedule
	}
	if len(staged) == 0 {
		return nil, ErrNothingToGenerate
	}

	if err := s.slots.BulkCreate(ctx, staged); err != nil {
		// A concurrent generation run can land the same slots between our
		// duplicate scan and the insert; the unique index reports it.
		if errors.Is(err, repository.ErrDuplicateSlot) {
			return nil, ErrDuplicateSchedule
		}
		return nil, fmt.Errorf("bulk insert slots: %w", err)
	}

	return &GenerateResult{CreatedCount: len(staged)}, nil
}

func slotKey(date time.Time, start, end string) string {
	return date.Format("2006-01-02") + "|" + start + "|" + end
}

func clockToMinutes(clock string) int {
	hh := int(clock[0]-'0')*10 + int(clock[1]-'0')
	mm := int(clock[3]-'0')*10 + int(clock[4]-'0')
	return hh*60 + mm
}

func minutesToClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// collapseDateRanges renders the dates as contiguous dd/MM ranges,
// e.g. "03/01–05/01; 09/01".
func collapseDateRanges(dates map[time.Time]struct{}) string {
	if len(dates) == 0 {
		return ""
	}
	sorted := make([]time.Time, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var parts []string
	rangeStart, prev := sorted[0], sorted[0]
	flush := func() {
		if rangeStart.Equal(prev) {
			parts = append(parts, rangeStart.Format("02/01"))
		} else {
			parts = append(parts, rangeStart.Format("02/01")+"–"+prev.Format("02/01"))
		}
	}
	for _, d := range sorted[1:] {
		if d.Sub(prev) == 24*time.Hour {
			prev = d
			continue
		}
		flush()
		rangeStart, prev = d, d
	}
	flush()
	return strings.Join(parts, "; ")
}
