package availability

import (
	"time"

	"github.com/craftday/workshop-booking-service/internal/calendar"
	"github.com/craftday/workshop-booking-service/internal/domain"
)

// Unavailability reasons shown to users
const (
	ReasonFullyBooked = "Fully booked"
	ReasonUnavailable = "Unavailable"
)

// MaterializeWindow lays out the bookable slots of a config over its booking
// window, starting from the day containing now (workshop timezone). Occupancy
// is keyed by canonical slot start instant; blackout rules mask the minutes
// they cover. Past slots are included, projection filters them per viewer.
func MaterializeWindow(
	cfg *domain.WorkshopConfig,
	loc *time.Location,
	now time.Time,
	occupancy map[string]int,
	rules []domain.BlackoutRule,
) []domain.DaySlotRecord {
	windowDays := cfg.BookingWindowDays
	if windowDays < 1 {
		windowDays = domain.DefaultBookingWindowDays
	}

	rulesByDay := make(map[string][]domain.BlackoutRule)
	for _, rule := range rules {
		key := calendar.DateKey(rule.Date, loc)
		rulesByDay[key] = append(rulesByDay[key], rule)
	}

	localNow := now.In(loc)
	firstDay := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)

	days := make([]domain.DaySlotRecord, 0, windowDays)
	for d := 0; d < windowDays; d++ {
		day := firstDay.AddDate(0, 0, d)
		key := calendar.DateKey(day, loc)
		days = append(days, domain.DaySlotRecord{
			DateKey: key,
			Slots:   materializeDay(cfg, day, occupancy, rulesByDay[key]),
		})
	}

	return days
}

func materializeDay(cfg *domain.WorkshopConfig, day time.Time, occupancy map[string]int, rules []domain.BlackoutRule) []domain.Slot {
	duration := cfg.SlotDurationMinutes
	if duration <= 0 {
		duration = domain.DefaultSlotDurationMinutes
	}
	capacity := cfg.EffectiveSlotCapacity()

	opening := day.Add(time.Duration(cfg.OpeningHour) * time.Hour)
	closing := day.Add(time.Duration(cfg.ClosingHour) * time.Hour)
	step := time.Duration(duration) * time.Minute

	slots := make([]domain.Slot, 0, cfg.SlotsPerDay())
	for start := opening; !start.Add(step).After(closing); start = start.Add(step) {
		slot := domain.Slot{
			SlotStartAt: start,
			SlotEndAt:   start.Add(step),
		}

		booked := occupancy[calendar.CanonicalizeTime(start)]
		remaining := capacity - booked
		if remaining < 0 {
			remaining = 0
		}

		minuteOfDay := start.Hour()*60 + start.Minute()
		if rule := coveringRule(rules, minuteOfDay); rule != nil {
			slot.IsAvailable = false
			slot.RemainingCapacity = 0
			slot.Reason = rule.Reason
			if slot.Reason == "" {
				slot.Reason = ReasonUnavailable
			}
		} else if remaining == 0 {
			slot.IsAvailable = false
			slot.RemainingCapacity = 0
			slot.Reason = ReasonFullyBooked
		} else {
			slot.IsAvailable = true
			slot.RemainingCapacity = remaining
		}

		slots = append(slots, slot)
	}

	return slots
}

func coveringRule(rules []domain.BlackoutRule, minuteOfDay int) *domain.BlackoutRule {
	for i := range rules {
		if rules[i].CoversMinute(minuteOfDay) {
			return &rules[i]
		}
	}
	return nil
}
