package handler

import (
	"github.com/cuna-app/cuna/internal/core/domain"
)

// UserDto is the wire shape of a user row.
type UserDto struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     *string `json:"email,omitempty"`
	Name      *string `json:"name,omitempty"`
	Surname   *string `json:"surname,omitempty"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func newUserDto(u *domain.User) UserDto {
	return UserDto{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Surname:   u.Surname,
		Active:    u.Active,
		CreatedAt: u.CreatedAt.UTC().Format(domain.TimestampLayout),
		UpdatedAt: u.UpdatedAt.UTC().Format(domain.TimestampLayout),
	}
}

// BabyDto exposes the opaque UUID; the integer id never leaves the service.
type BabyDto struct {
	UniqueID  string `json:"uniqueid"`
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
	AddedOn   string `json:"added_on"`
}

func newBabyDto(b domain.Baby) BabyDto {
	return BabyDto{
		UniqueID:  b.UUID.String(),
		Name:      b.Name,
		Birthdate: b.Birthdate.UTC().Format(domain.DateLayout),
		AddedOn:   b.AddedOn.UTC().Format(domain.TimestampLayout),
	}
}

func newBabyDtos(babies []domain.Baby) []BabyDto {
	out := make([]BabyDto, 0, len(babies))
	for _, b := range babies {
		out = append(out, newBabyDto(b))
	}
	return out
}

// SessionDto is the JSON:API-flavoured identity view returned by the auth
// endpoints. Guests render id 1 with an empty baby_info.
type SessionDto struct {
	ID         int64             `json:"id"`
	Type       string            `json:"type"`
	Attributes SessionAttributes `json:"attributes"`
}

type SessionAttributes struct {
	Username string    `json:"username"`
	BabyInfo []BabyDto `json:"baby_info"`
}

func newSessionDto(u domain.CurrentUser, babies []domain.Baby) SessionDto {
	return SessionDto{
		ID:   u.ID,
		Type: "user",
		Attributes: SessionAttributes{
			Username: u.Username,
			BabyInfo: newBabyDtos(babies),
		},
	}
}

// MealDto is the wire shape of a meal record.
type MealDto struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Quantity *int16 `json:"quantity,omitempty"`
	Elapsed  *int16 `json:"elapsed,omitempty"`
}

func newMealDto(m domain.Meal) MealDto {
	return MealDto{
		ID:       m.ID,
		Date:     m.Date.UTC().Format(domain.DateLayout),
		Time:     m.Date.UTC().Format(domain.ClockLayout),
		Quantity: m.Quantity,
		Elapsed:  m.Elapsed,
	}
}

func newMealDtos(meals []domain.Meal) []MealDto {
	out := make([]MealDto, 0, len(meals))
	for _, m := range meals {
		out = append(out, newMealDto(m))
	}
	return out
}

// DreamDto renders closed dreams with their elapsed duration; open dreams
// omit to_date and elapsed.
type DreamDto struct {
	ID       int64   `json:"id"`
	FromDate string  `json:"from_date"`
	ToDate   *string `json:"to_date,omitempty"`
	Elapsed  *string `json:"elapsed,omitempty"`
}

func newDreamDto(d domain.Dream) DreamDto {
	dto := DreamDto{
		ID:       d.ID,
		FromDate: d.FromDate.UTC().Format(domain.TimestampLayout),
	}
	if d.ToDate != nil {
		to := d.ToDate.UTC().Format(domain.TimestampLayout)
		elapsed := domain.FormatMinutes(d.Minutes())
		dto.ToDate = &to
		dto.Elapsed = &elapsed
	}
	return dto
}

func newDreamDtos(dreams []domain.Dream) []DreamDto {
	out := make([]DreamDto, 0, len(dreams))
	for _, d := range dreams {
		out = append(out, newDreamDto(d))
	}
	return out
}

// WeightDto is the wire shape of a weight measurement.
type WeightDto struct {
	ID    int64   `json:"id"`
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

func newWeightDto(w domain.Weight) WeightDto {
	return WeightDto{
		ID:    w.ID,
		Date:  w.Date.UTC().Format(domain.DateLayout),
		Value: w.Value,
	}
}

func newWeightDtos(weights []domain.Weight) []WeightDto {
	out := make([]WeightDto, 0, len(weights))
	for _, w := range weights {
		out = append(out, newWeightDto(w))
	}
	return out
}
