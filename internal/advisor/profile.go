package advisor

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"portfolioadvisor/internal/allocation"
)

// User is a stored investor profile. Recommendations computed for a user
// read risk, instruments, rates and amount from it.
type User struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Age             int     `json:"age,omitempty"`
	Income          float64 `json:"income,omitempty"`
	InvestmentGoals string  `json:"investment_goals,omitempty"`
	allocation.Profile
	Rates     allocation.Rates `json:"rates"`
	CreatedAt time.Time        `json:"created_at"`
}

// UserPatch holds the fields of a profile update. Nil fields are left as
// they are.
type UserPatch struct {
	Name                *string                    `json:"name"`
	Age                 *int                       `json:"age"`
	Income              *float64                   `json:"income"`
	InvestmentGoals     *string                    `json:"investment_goals"`
	RiskPreference      *allocation.RiskPreference `json:"risk_preference"`
	SelectedInstruments *[]allocation.Instrument   `json:"selected_instruments"`
	Rates               *allocation.Rates          `json:"rates"`
	InvestableAmount    *float64                   `json:"investable_amount"`
}

func (p UserPatch) apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Income != nil {
		u.Income = *p.Income
	}
	if p.InvestmentGoals != nil {
		u.InvestmentGoals = *p.InvestmentGoals
	}
	if p.RiskPreference != nil {
		u.Risk = *p.RiskPreference
	}
	if p.SelectedInstruments != nil {
		u.Instruments = slices.Clone(*p.SelectedInstruments)
	}
	if p.Rates != nil {
		u.Rates = maps.Clone(*p.Rates)
	}
	if p.InvestableAmount != nil {
		u.InvestableAmount = *p.InvestableAmount
	}
}

// ProfileStore keeps user profiles. Get and Update return ErrNotFound for
// unknown IDs.
type ProfileStore interface {
	Create(ctx context.Context, u User) error
	Get(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, u User) error
}

// MemoryProfileStore is a process-local ProfileStore.
type MemoryProfileStore struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{users: make(map[string]User)}
}

func (m *MemoryProfileStore) Create(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; ok {
		return fmt.Errorf("user %q already exists", u.ID)
	}
	m.users[u.ID] = u
	return nil
}

func (m *MemoryProfileStore) Get(_ context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	return &u, nil
}

func (m *MemoryProfileStore) Update(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return fmt.Errorf("user %q: %w", u.ID, ErrNotFound)
	}
	m.users[u.ID] = u
	return nil
}

var _ ProfileStore = (*MemoryProfileStore)(nil)

func checkUser(u User) error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: name is required", allocation.ErrInvalidProfile)
	}
	for inst, r := range u.Rates {
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return fmt.Errorf("%w: rate for %s must be a non-negative number", allocation.ErrInvalidInput, inst)
		}
	}
	return nil
}

// CreateUser stores a new profile under a fresh ID.
func (s *Service) CreateUser(ctx context.Context, u User) (*User, error) {
	u.Name = strings.TrimSpace(u.Name)
	if err := checkUser(u); err != nil {
		return nil, err
	}
	u.ID = s.newID().String()
	u.CreatedAt = s.now().UTC()
	if err := s.profiles.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}
	s.logger.Infow("user created", "user_id", u.ID, "risk", u.Risk)
	return &u, nil
}

func (s *Service) User(ctx context.Context, id string) (*User, error) {
	return s.profiles.Get(ctx, strings.TrimSpace(id))
}

// UpdateUser applies patch to the stored profile.
func (s *Service) UpdateUser(ctx context.Context, id string, patch UserPatch) (*User, error) {
	u, err := s.User(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.apply(u)
	u.Name = strings.TrimSpace(u.Name)
	if err := checkUser(*u); err != nil {
		return nil, err
	}
	if err := s.profiles.Update(ctx, *u); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}
	return u, nil
}

// RecommendForUser runs Recommend with the stored profile and rates.
func (s *Service) RecommendForUser(ctx context.Context, id, location string) (*Record, error) {
	u, err := s.User(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Recommend(ctx, Request{
		UserID:   u.ID,
		Profile:  u.Profile,
		Rates:    u.Rates,
		Location: location,
	})
}
