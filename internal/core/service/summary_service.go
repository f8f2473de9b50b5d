package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// maxWindowDays caps the span of a summary window.
const maxWindowDays = 365

// SummaryService rolls meal and dream records up into per-calendar-day
// summaries over a paginated date window.
type SummaryService struct {
	gate   ports.Gate
	meals  ports.MealRepository
	dreams ports.DreamRepository
	now    func() time.Time
}

func NewSummaryService(gate ports.Gate, meals ports.MealRepository, dreams ports.DreamRepository) *SummaryService {
	return &SummaryService{gate: gate, meals: meals, dreams: dreams, now: time.Now}
}

// daySlice is the run of calendar days a page covers, plus navigation.
type daySlice struct {
	start time.Time // first day of the page
	days  int       // number of days on the page
	info  domain.PageInfo
}

// sliceWindow validates [from, to] and derives the page's day slice.
// The requested page is echoed in the navigation block even when the
// offset had to be clamped into [1, totalPages].
func sliceWindow(from, to time.Time, p domain.Pagination) (daySlice, error) {
	from, to = domain.Day(from), domain.Day(to)
	if to.Before(from) {
		return daySlice{}, domain.ErrDatesUnordered
	}

	totalDays := int(to.Sub(from).Hours()/24) + 1
	if totalDays-1 > maxWindowDays {
		return daySlice{}, &domain.OutOfBoundsError{Min: 0, Max: maxWindowDays}
	}

	p = p.Normalized()
	totalPages := p.TotalPages(uint32(totalDays))

	page := p.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	offset := int(page-1) * int(p.PerPage)
	days := totalDays - offset
	if days > int(p.PerPage) {
		days = int(p.PerPage)
	}

	return daySlice{
		start: from.AddDate(0, 0, offset),
		days:  days,
		info:  domain.NewPageInfo(p.Page, totalPages),
	}, nil
}

// queryBounds is [start, stop+1day): records carry a time-of-day component
// while the window is calendar-day aligned.
func (s daySlice) queryBounds() (time.Time, time.Time) {
	return s.start, s.start.AddDate(0, 0, s.days)
}

// --- Dream summaries ---

func (s *SummaryService) DreamRange(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, from, to time.Time, p domain.Pagination) (*ports.PagedDreamSummaries, error) {
	babyID, err := s.gate.RequireBaby(ctx, u, babyUUID)
	if err != nil {
		return nil, err
	}
	slice, err := sliceWindow(from, to, p)
	if err != nil {
		return nil, err
	}

	lo, hi := slice.queryBounds()
	records, err := s.dreams.ListInRange(ctx, babyID, lo, hi)
	if err != nil {
		return nil, err
	}

	out := &ports.PagedDreamSummaries{Data: []ports.DreamSummary{}, PageInfo: slice.info}
	for i := 0; i < slice.days; i++ {
		day := slice.start.AddDate(0, 0, i)
		var minutes int64
		matched := 0
		for _, d := range records {
			// Dreams roll up on the day they closed.
			if d.ToDate != nil && domain.Day(*d.ToDate).Equal(day) {
				minutes += d.Minutes()
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		out.Data = append(out.Data, ports.DreamSummary{
			Date:    day.Format(domain.DateLayout),
			Summary: domain.FormatMinutes(minutes),
			Minutes: minutes,
		})
	}
	return out, nil
}

func (s *SummaryService) DreamAll(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, p domain.Pagination) (*ports.PagedDreamSummaries, error) {
	babyID, err := s.gate.RequireBaby(ctx, u, babyUUID)
	if err != nil {
		return nil, err
	}
	first, last, err := s.dreams.FirstAndLastDate(ctx, babyID)
	if err != nil {
		return nil, err
	}
	return s.DreamRange(ctx, u, babyUUID, first, last, p)
}

func (s *SummaryService) DreamLastDays(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, days int, p domain.Pagination) (*ports.PagedDreamSummaries, error) {
	from, to, err := s.lastDaysWindow(days)
	if err != nil {
		return nil, err
	}
	return s.DreamRange(ctx, u, babyUUID, from, to, p)
}

// --- Meal summaries ---

func (s *SummaryService) MealRange(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, from, to time.Time, p domain.Pagination) (*ports.PagedMealSummaries, error) {
	babyID, err := s.gate.RequireBaby(ctx, u, babyUUID)
	if err != nil {
		return nil, err
	}
	slice, err := sliceWindow(from, to, p)
	if err != nil {
		return nil, err
	}

	lo, hi := slice.queryBounds()
	records, err := s.meals.ListInRange(ctx, babyID, lo, hi)
	if err != nil {
		return nil, err
	}

	out := &ports.PagedMealSummaries{Data: []ports.MealSummary{}, PageInfo: slice.info}
	for i := 0; i < slice.days; i++ {
		day := slice.start.AddDate(0, 0, i)
		var nursing int64
		var formula int32
		total := 0
		for _, m := range records {
			if !domain.Day(m.Date).Equal(day) {
				continue
			}
			total++
			if m.Elapsed != nil {
				nursing += int64(*m.Elapsed)
			}
			if m.Quantity != nil {
				formula += int32(*m.Quantity)
			}
		}
		if total == 0 {
			continue
		}
		out.Data = append(out.Data, ports.MealSummary{
			Date:    day.Format(domain.DateLayout),
			Total:   total,
			Nursing: domain.FormatMinutes(nursing),
			Formula: formula,
		})
	}
	return out, nil
}

func (s *SummaryService) MealAll(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, p domain.Pagination) (*ports.PagedMealSummaries, error) {
	babyID, err := s.gate.RequireBaby(ctx, u, babyUUID)
	if err != nil {
		return nil, err
	}
	first, last, err := s.meals.FirstAndLastDate(ctx, babyID)
	if err != nil {
		return nil, err
	}
	return s.MealRange(ctx, u, babyUUID, first, last, p)
}

func (s *SummaryService) MealLastDays(ctx context.Context, u domain.CurrentUser, babyUUID uuid.UUID, days int, p domain.Pagination) (*ports.PagedMealSummaries, error) {
	from, to, err := s.lastDaysWindow(days)
	if err != nil {
		return nil, err
	}
	return s.MealRange(ctx, u, babyUUID, from, to, p)
}

func (s *SummaryService) lastDaysWindow(days int) (time.Time, time.Time, error) {
	if days < 1 || days > maxWindowDays {
		return time.Time{}, time.Time{}, &domain.OutOfBoundsError{Min: 0, Max: maxWindowDays}
	}
	today := domain.Day(s.now().UTC())
	return today.AddDate(0, 0, -days), today, nil
}
