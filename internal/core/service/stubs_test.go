package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	byID      map[int64]*domain.User
	nextID    int64
	insertErr error
	findErr   error // if set, FindByID returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[int64]*domain.User), nextID: 1}
}

func (r *stubUserRepo) seed(u domain.User) *domain.User {
	if u.ID == 0 {
		r.nextID++
		u.ID = r.nextID
	} else if u.ID > r.nextID {
		r.nextID = u.ID
	}
	clone := u
	r.byID[clone.ID] = &clone
	return &clone
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	for _, existing := range r.byID {
		if existing.Username == user.Username {
			return nil, domain.ErrDuplicateUser
		}
	}
	r.nextID++
	clone := *user
	clone.ID = r.nextID
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNoUser
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNoUser
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id int64, patch domain.ProfilePatch) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNoUser
	}
	if patch.Email != nil {
		u.Email = patch.Email
	}
	if patch.Name != nil {
		u.Name = patch.Name
	}
	if patch.Surname != nil {
		u.Surname = patch.Surname
	}
	u.UpdatedAt = time.Now().UTC()
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id int64, active bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNoUser
	}
	u.Active = active
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNoUser
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) DeleteInactiveOlderThan(_ context.Context, days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	var removed int64
	for id, u := range r.byID {
		if id == domain.AnonymousID || u.Active || u.UpdatedAt.After(cutoff) {
			continue
		}
		delete(r.byID, id)
		removed++
	}
	return removed, nil
}

func (r *stubUserRepo) List(_ context.Context, p domain.Pagination) ([]domain.User, error) {
	ids := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.byID[id])
	}
	p = p.Normalized()
	skip := int(p.Page-1) * int(p.PerPage)
	if skip >= len(out) {
		return []domain.User{}, nil
	}
	end := skip + int(p.PerPage)
	if end > len(out) {
		end = len(out)
	}
	return out[skip:end], nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

type stubRoleRepo struct {
	byUser map[int64][]domain.Role
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{byUser: make(map[int64][]domain.Role)}
}

func (r *stubRoleRepo) Add(_ context.Context, userID int64, role domain.Role) error {
	for _, got := range r.byUser[userID] {
		if got == role {
			return nil
		}
	}
	r.byUser[userID] = append(r.byUser[userID], role)
	return nil
}

func (r *stubRoleRepo) Remove(_ context.Context, userID int64, role domain.Role) error {
	kept := r.byUser[userID][:0]
	for _, got := range r.byUser[userID] {
		if got != role {
			kept = append(kept, got)
		}
	}
	r.byUser[userID] = kept
	return nil
}

func (r *stubRoleRepo) ListRoleIDs(_ context.Context, userID int64) ([]domain.Role, error) {
	return append([]domain.Role(nil), r.byUser[userID]...), nil
}

func (r *stubRoleRepo) GroupedCounts(_ context.Context) ([]ports.RoleCount, error) {
	counts := map[domain.Role]int64{}
	for _, roles := range r.byUser {
		for _, role := range roles {
			counts[role]++
		}
	}
	out := make([]ports.RoleCount, 0, 3)
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleUser, domain.RoleAnonymous} {
		out = append(out, ports.RoleCount{Role: role, Name: role.String(), Users: counts[role]})
	}
	return out, nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (domain.Role, error) {
	role, ok := domain.RoleFromName(name)
	if !ok {
		return domain.RoleAnonymous, domain.ErrNoEntryFound
	}
	return role, nil
}

type stubBabyRepo struct {
	byID   map[int64]*domain.Baby
	owners map[int64][]int64 // userID → baby ids
	nextID int64
}

func newStubBabyRepo() *stubBabyRepo {
	return &stubBabyRepo{byID: make(map[int64]*domain.Baby), owners: make(map[int64][]int64)}
}

func (r *stubBabyRepo) Insert(_ context.Context, userID int64, name string, birthdate time.Time) (*domain.Baby, error) {
	r.nextID++
	b := &domain.Baby{
		ID:        r.nextID,
		UUID:      uuid.New(),
		Name:      name,
		Birthdate: birthdate,
		UserID:    userID,
		AddedOn:   time.Now().UTC(),
	}
	r.byID[b.ID] = b
	r.owners[userID] = append(r.owners[userID], b.ID)
	clone := *b
	return &clone, nil
}

func (r *stubBabyRepo) FindByUUID(_ context.Context, id uuid.UUID) (*domain.Baby, error) {
	for _, b := range r.byID {
		if b.UUID == id {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrNoEntryFound
}

func (r *stubBabyRepo) FindByID(_ context.Context, id int64) (*domain.Baby, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNoEntryFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBabyRepo) ListForUser(_ context.Context, userID int64, _ domain.Pagination) ([]domain.Baby, error) {
	out := []domain.Baby{}
	for _, id := range r.owners[userID] {
		if b, ok := r.byID[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBabyRepo) DeleteIfOwner(_ context.Context, babyID, userID int64) error {
	for i, id := range r.owners[userID] {
		if id == babyID {
			r.owners[userID] = append(r.owners[userID][:i], r.owners[userID][i+1:]...)
			delete(r.byID, babyID)
			return nil
		}
	}
	return domain.ErrNoEntryFound
}

func (r *stubBabyRepo) Share(_ context.Context, userID, babyID int64) error {
	for _, id := range r.owners[userID] {
		if id == babyID {
			return nil
		}
	}
	r.owners[userID] = append(r.owners[userID], babyID)
	return nil
}

func (r *stubBabyRepo) ListUUIDsForUser(_ context.Context, userID int64) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for _, id := range r.owners[userID] {
		if b, ok := r.byID[id]; ok {
			out = append(out, b.UUID)
		}
	}
	return out, nil
}

func (r *stubBabyRepo) IDFromUUID(_ context.Context, id uuid.UUID) (int64, error) {
	for _, b := range r.byID {
		if b.UUID == id {
			return b.ID, nil
		}
	}
	return 0, domain.ErrNoEntryFound
}

type stubSessionStore struct {
	data    map[string]string
	ttls    map[string]time.Duration
	getErr  error
	putErr  error
	delErr  error
	puts    int
	deletes int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (s *stubSessionStore) Put(_ context.Context, key, payload string, ttl time.Duration) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.puts++
	s.data[key] = payload
	s.ttls[key] = ttl
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	payload, ok := s.data[key]
	if !ok {
		return "", ports.ErrCacheMiss
	}
	return payload, nil
}

func (s *stubSessionStore) Exists(_ context.Context, key string) (bool, error) {
	if s.getErr != nil {
		return false, s.getErr
	}
	_, ok := s.data[key]
	return ok, nil
}

func (s *stubSessionStore) Del(_ context.Context, key string) error {
	if s.delErr != nil {
		return s.delErr
	}
	s.deletes++
	delete(s.data, key)
	delete(s.ttls, key)
	return nil
}

type stubMealRepo struct {
	meals  []domain.Meal
	nextID int64
}

func (r *stubMealRepo) Insert(_ context.Context, meal *domain.Meal) (*domain.Meal, error) {
	r.nextID++
	clone := *meal
	clone.ID = r.nextID
	r.meals = append(r.meals, clone)
	out := clone
	return &out, nil
}

func (r *stubMealRepo) ListByBaby(_ context.Context, babyID int64, p domain.Pagination) ([]domain.Meal, error) {
	out := []domain.Meal{}
	for _, m := range r.meals {
		if m.BabyID == babyID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMealRepo) ListInRange(_ context.Context, babyID int64, from, toExclusive time.Time) ([]domain.Meal, error) {
	out := []domain.Meal{}
	for _, m := range r.meals {
		if m.BabyID == babyID && !m.Date.Before(from) && m.Date.Before(toExclusive) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMealRepo) FirstAndLastDate(_ context.Context, babyID int64) (time.Time, time.Time, error) {
	var first, last time.Time
	found := false
	for _, m := range r.meals {
		if m.BabyID != babyID {
			continue
		}
		if !found || m.Date.Before(first) {
			first = m.Date
		}
		if !found || m.Date.After(last) {
			last = m.Date
		}
		found = true
	}
	if !found {
		return time.Time{}, time.Time{}, domain.ErrNoEntryFound
	}
	return first, last, nil
}

type stubDreamRepo struct {
	dreams []domain.Dream
	nextID int64
}

func (r *stubDreamRepo) Insert(_ context.Context, dream *domain.Dream) (*domain.Dream, error) {
	r.nextID++
	clone := *dream
	clone.ID = r.nextID
	r.dreams = append(r.dreams, clone)
	out := clone
	return &out, nil
}

func (r *stubDreamRepo) ListByBaby(_ context.Context, babyID int64, p domain.Pagination) ([]domain.Dream, error) {
	out := []domain.Dream{}
	for _, d := range r.dreams {
		if d.BabyID == babyID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubDreamRepo) ListInRange(_ context.Context, babyID int64, from, toExclusive time.Time) ([]domain.Dream, error) {
	out := []domain.Dream{}
	for _, d := range r.dreams {
		if d.BabyID != babyID || d.ToDate == nil {
			continue
		}
		if !d.ToDate.Before(from) && d.ToDate.Before(toExclusive) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubDreamRepo) FirstAndLastDate(_ context.Context, babyID int64) (time.Time, time.Time, error) {
	var first, last time.Time
	found := false
	for _, d := range r.dreams {
		if d.BabyID != babyID || d.ToDate == nil {
			continue
		}
		if !found || d.ToDate.Before(first) {
			first = *d.ToDate
		}
		if !found || d.ToDate.After(last) {
			last = *d.ToDate
		}
		found = true
	}
	if !found {
		return time.Time{}, time.Time{}, domain.ErrNoEntryFound
	}
	return first, last, nil
}

func (r *stubDreamRepo) FindOpen(_ context.Context, babyID int64) (*domain.Dream, error) {
	for i := len(r.dreams) - 1; i >= 0; i-- {
		if r.dreams[i].BabyID == babyID && r.dreams[i].ToDate == nil {
			clone := r.dreams[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrNoEntryFound
}

func (r *stubDreamRepo) CloseOpen(_ context.Context, babyID int64, to time.Time) (*domain.Dream, error) {
	for i := len(r.dreams) - 1; i >= 0; i-- {
		if r.dreams[i].BabyID == babyID && r.dreams[i].ToDate == nil {
			r.dreams[i].ToDate = &to
			clone := r.dreams[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrNoEntryFound
}

type stubWeightRepo struct {
	weights []domain.Weight
	nextID  int64
}

func (r *stubWeightRepo) Insert(_ context.Context, weight *domain.Weight) (*domain.Weight, error) {
	r.nextID++
	clone := *weight
	clone.ID = r.nextID
	r.weights = append(r.weights, clone)
	out := clone
	return &out, nil
}

func (r *stubWeightRepo) ListByBaby(_ context.Context, babyID int64, p domain.Pagination) ([]domain.Weight, error) {
	out := []domain.Weight{}
	for _, w := range r.weights {
		if w.BabyID == babyID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *stubWeightRepo) ListInRange(_ context.Context, babyID int64, from, toExclusive time.Time) ([]domain.Weight, error) {
	out := []domain.Weight{}
	for _, w := range r.weights {
		if w.BabyID == babyID && !w.Date.Before(from) && w.Date.Before(toExclusive) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *stubWeightRepo) Patch(_ context.Context, id, babyID int64, patch domain.WeightPatch) (*domain.Weight, error) {
	for i := range r.weights {
		if r.weights[i].ID == id && r.weights[i].BabyID == babyID {
			if patch.Date != nil {
				r.weights[i].Date = *patch.Date
			}
			if patch.Value != nil {
				r.weights[i].Value = *patch.Value
			}
			clone := r.weights[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrNoEntryFound
}

type stubStatsRepo struct {
	counts []ports.TableCount
}

func (r *stubStatsRepo) CountTables(_ context.Context) ([]ports.TableCount, error) {
	return r.counts, nil
}

// ownedBaby seeds a baby owned by userID and returns it.
func ownedBaby(r *stubBabyRepo, userID int64) *domain.Baby {
	b, _ := r.Insert(context.Background(), userID, "Mia", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	return b
}

// projectionFor builds the CurrentUser a cached session would carry.
func projectionFor(u *domain.User, roles []domain.Role, babies []uuid.UUID) domain.CurrentUser {
	if babies == nil {
		babies = []uuid.UUID{}
	}
	anonymous := false
	for _, r := range roles {
		if r == domain.RoleAnonymous {
			anonymous = true
		}
	}
	return domain.CurrentUser{
		ID:        u.ID,
		Anonymous: anonymous,
		Username:  u.Username,
		Roles:     roles,
		Active:    u.Active,
		Babies:    babies,
	}
}
