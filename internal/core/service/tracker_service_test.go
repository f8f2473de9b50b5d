package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

type trackerFixture struct {
	babies  *stubBabyRepo
	meals   *stubMealRepo
	dreams  *stubDreamRepo
	weights *stubWeightRepo
	svc     *TrackerService
	owner   domain.CurrentUser
	baby    *domain.Baby
}

func newTrackerFixture() *trackerFixture {
	babies := newStubBabyRepo()
	meals := &stubMealRepo{}
	dreams := &stubDreamRepo{}
	weights := &stubWeightRepo{}

	baby := ownedBaby(babies, 7)
	owner := domain.CurrentUser{
		ID: 7, Username: "marta", Roles: []domain.Role{domain.RoleUser}, Active: true,
		Babies: []uuid.UUID{baby.UUID},
	}

	return &trackerFixture{
		babies:  babies,
		meals:   meals,
		dreams:  dreams,
		weights: weights,
		svc:     NewTrackerService(NewGate(babies), meals, dreams, weights, discardLogger),
		owner:   owner,
		baby:    baby,
	}
}

func i16(v int16) *int16 { return &v }

func ts(s string) *time.Time {
	t, err := domain.ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return &t
}

// --- Meals ---

func TestTracker_AddMeal(t *testing.T) {
	f := newTrackerFixture()

	meal, err := f.svc.AddMeal(context.Background(), f.owner, f.baby.UUID, ports.MealInput{
		Date:     ts("2026-08-01 09:30:00"),
		Quantity: i16(120),
		Elapsed:  i16(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meal.ID == 0 {
		t.Error("expected an assigned id")
	}
	if *meal.Quantity != 120 || *meal.Elapsed != 10 {
		t.Errorf("values not carried through: %+v", meal)
	}
}

func TestTracker_AddMeal_DefaultsToNow(t *testing.T) {
	f := newTrackerFixture()

	before := time.Now().UTC()
	meal, err := f.svc.AddMeal(context.Background(), f.owner, f.baby.UUID, ports.MealInput{Quantity: i16(90)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meal.Date.Before(before.Add(-time.Second)) {
		t.Errorf("an omitted date must default to now, got %v", meal.Date)
	}
}

func TestTracker_AddMeal_NegativeValues(t *testing.T) {
	f := newTrackerFixture()

	for name, input := range map[string]ports.MealInput{
		"quantity": {Quantity: i16(-1)},
		"elapsed":  {Elapsed: i16(-5)},
	} {
		_, err := f.svc.AddMeal(context.Background(), f.owner, f.baby.UUID, input)
		var oob *domain.OutOfBoundsError
		if !errors.As(err, &oob) {
			t.Errorf("%s: expected OutOfBoundsError, got %v", name, err)
		}
	}
	if len(f.meals.meals) != 0 {
		t.Error("rejected meals must not be stored")
	}
}

func TestTracker_AddMeal_GateAndActive(t *testing.T) {
	f := newTrackerFixture()

	if _, err := f.svc.AddMeal(context.Background(), domain.Guest(), f.baby.UUID, ports.MealInput{}); !errors.Is(err, domain.ErrLoginRequired) {
		t.Errorf("guest: expected ErrLoginRequired, got %v", err)
	}

	stranger := domain.CurrentUser{ID: 9, Roles: []domain.Role{domain.RoleUser}, Active: true, Babies: []uuid.UUID{}}
	if _, err := f.svc.AddMeal(context.Background(), stranger, f.baby.UUID, ports.MealInput{}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-owner: expected ErrForbidden, got %v", err)
	}

	inactive := f.owner
	inactive.Active = false
	if _, err := f.svc.AddMeal(context.Background(), inactive, f.baby.UUID, ports.MealInput{}); !errors.Is(err, domain.ErrNoActiveUser) {
		t.Errorf("inactive owner: expected ErrNoActiveUser, got %v", err)
	}
}

func TestTracker_MealsByDay(t *testing.T) {
	f := newTrackerFixture()

	_, _ = f.svc.AddMeal(context.Background(), f.owner, f.baby.UUID, ports.MealInput{Date: ts("2026-08-01 09:30:00"), Quantity: i16(120)})
	_, _ = f.svc.AddMeal(context.Background(), f.owner, f.baby.UUID, ports.MealInput{Date: ts("2026-08-01 15:00:00"), Elapsed: i16(20)})
	_, _ = f.svc.AddMeal(context.Background(), f.owner, f.baby.UUID, ports.MealInput{Date: ts("2026-08-02 08:00:00"), Quantity: i16(100)})

	day, _ := domain.ParseDate("2026-08-01")
	meals, err := f.svc.MealsByDay(context.Background(), f.owner, f.baby.UUID, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meals) != 2 {
		t.Errorf("expected 2 meals on 2026-08-01, got %d", len(meals))
	}

	empty, _ := domain.ParseDate("2026-08-10")
	_, err = f.svc.MealsByDay(context.Background(), f.owner, f.baby.UUID, empty)
	var noRec *domain.NoRecordError
	if !errors.As(err, &noRec) {
		t.Fatalf("empty day: expected NoRecordError, got %v", err)
	}
	if !noRec.Date.Equal(empty) {
		t.Errorf("NoRecordError must carry the requested day, got %v", noRec.Date)
	}
}

// --- Dreams ---

func TestTracker_AddDream_StartStopCycle(t *testing.T) {
	f := newTrackerFixture()

	started, err := f.svc.AddDream(context.Background(), f.owner, f.baby.UUID, ports.DreamInput{From: ts("2026-08-01 20:00:00")})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !started.Open() {
		t.Fatal("a started dream must be open")
	}

	closed, err := f.svc.AddDream(context.Background(), f.owner, f.baby.UUID, ports.DreamInput{To: ts("2026-08-02 04:00:00")})
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if closed.Open() {
		t.Fatal("stopping must close the dream")
	}
	if closed.ID != started.ID {
		t.Errorf("stop must close the dream that was started, got id %d want %d", closed.ID, started.ID)
	}
	if closed.Minutes() != 8*60 {
		t.Errorf("expected 480 minutes, got %d", closed.Minutes())
	}
}

func TestTracker_AddDream_SecondOpenRefused(t *testing.T) {
	f := newTrackerFixture()

	if _, err := f.svc.AddDream(context.Background(), f.owner, f.baby.UUID, ports.DreamInput{From: ts("2026-08-01 20:00:00")}); err != nil {
		t.Fatalf("first start: %v", err)
	}

	_, err := f.svc.AddDream(context.Background(), f.owner, f.baby.UUID, ports.DreamInput{From: ts("2026-08-01 21:00:00")})
	var invalid *domain.InvalidValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("second start: expected InvalidValueError, got %v", err)
	}
	if len(f.dreams.dreams) != 1 {
		t.Errorf("only one dream may exist, got %d", len(f.dreams.dreams))
	}
}

func TestTracker_AddDream_StopWithoutOpen(t *testing.T) {
	f := newTrackerFixture()

	_, err := f.svc.AddDream(context.Background(), f.owner, f.baby.UUID, ports.DreamInput{To: ts("2026-08-02 04:00:00")})
	if !errors.Is(err, domain.ErrNoEntryFound) {
		t.Errorf("expected ErrNoEntryFound, got %v", err)
	}
}

func TestTracker_AddDream_CompleteInterval(t *testing.T) {
	f := newTrackerFixture()

	dream, err := f.svc.AddDream(context.Background(), f.owner, f.baby.UUID, ports.DreamInput{
		From: ts("2026-07-30 13:00:00"),
		To:   ts("2026-07-30 14:30:00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dream.Minutes() != 90 {
		t.Errorf("expected 90 minutes, got %d", dream.Minutes())
	}
}

func TestTracker_AddDream_UnorderedInterval(t *testing.T) {
	f := newTrackerFixture()

	_, err := f.svc.AddDream(context.Background(), f.owner, f.baby.UUID, ports.DreamInput{
		From: ts("2026-07-30 14:30:00"),
		To:   ts("2026-07-30 13:00:00"),
	})
	if !errors.Is(err, domain.ErrDatesUnordered) {
		t.Errorf("expected ErrDatesUnordered, got %v", err)
	}
}

func TestTracker_AddDream_EmptyBody(t *testing.T) {
	f := newTrackerFixture()

	_, err := f.svc.AddDream(context.Background(), f.owner, f.baby.UUID, ports.DreamInput{})
	if !errors.Is(err, domain.ErrEmptyBody) {
		t.Errorf("expected ErrEmptyBody, got %v", err)
	}
}

// --- Weights ---

func TestTracker_AddWeight(t *testing.T) {
	f := newTrackerFixture()

	w, err := f.svc.AddWeight(context.Background(), f.owner, f.baby.UUID, ports.WeightInput{
		Date:  ts("2026-08-01 10:15:00"),
		Value: 4.56789,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Value != 4.567 {
		t.Errorf("weight must be truncated to three decimals, got %v", w.Value)
	}
	want, _ := domain.ParseDate("2026-08-01")
	if !w.Date.Equal(want) {
		t.Errorf("weight date must be day-aligned, got %v", w.Date)
	}
}

func TestTracker_AddWeight_NonPositive(t *testing.T) {
	f := newTrackerFixture()

	for _, v := range []float64{0, -1.2} {
		_, err := f.svc.AddWeight(context.Background(), f.owner, f.baby.UUID, ports.WeightInput{Value: v})
		var invalid *domain.InvalidValueError
		if !errors.As(err, &invalid) {
			t.Errorf("value %v: expected InvalidValueError, got %v", v, err)
		}
	}
}

func TestTracker_PatchWeight(t *testing.T) {
	f := newTrackerFixture()

	w, _ := f.svc.AddWeight(context.Background(), f.owner, f.baby.UUID, ports.WeightInput{Value: 4.5})

	v := 4.72519
	patched, err := f.svc.PatchWeight(context.Background(), f.owner, f.baby.UUID, w.ID, domain.WeightPatch{Value: &v})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patched.Value != 4.725 {
		t.Errorf("patched value must be clamped, got %v", patched.Value)
	}

	if _, err := f.svc.PatchWeight(context.Background(), f.owner, f.baby.UUID, w.ID, domain.WeightPatch{}); !errors.Is(err, domain.ErrEmptyBody) {
		t.Errorf("empty patch: expected ErrEmptyBody, got %v", err)
	}

	if _, err := f.svc.PatchWeight(context.Background(), f.owner, f.baby.UUID, 999, domain.WeightPatch{Value: &v}); !errors.Is(err, domain.ErrNoEntryFound) {
		t.Errorf("unknown row: expected ErrNoEntryFound, got %v", err)
	}
}
