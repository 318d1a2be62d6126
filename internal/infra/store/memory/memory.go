// Package memory holds the volatile simulated backend. State lives for
// the lifetime of the process and resets on restart.
package memory

import (
	"context"
	"math/rand"
	"sync"

	"github.com/Tsedii1275/campusadmin/internal/core/domain"
	"github.com/Tsedii1275/campusadmin/internal/infra/store"
)

// defaultCampus is assigned to users created through the fallback
// path; the live service derives campus from the creator's scope.
const defaultCampus = "Main Campus"

// Store is the in-memory backend. One RWMutex guards both the user
// collection and the profile singleton; all writes go through Store
// methods. Concurrent mutations are last-writer-wins.
type Store struct {
	mu      sync.RWMutex
	users   []domain.User
	profile domain.Profile
	delay   Delayer
}

// Option configures a Store.
type Option func(*Store)

// WithDelay substitutes the latency simulation. Tests pass NoDelay to
// keep the store deterministic and fast.
func WithDelay(d Delayer) Option {
	return func(s *Store) { s.delay = d }
}

// NewStore creates a store seeded with the fixed roster and the fixed
// administrator profile.
func NewStore(opts ...Option) *Store {
	s := &Store{
		users:   seedUsers(),
		profile: seedProfile(),
		delay:   DefaultDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListUsers returns a snapshot copy in insertion order.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	if err := s.delay.Wait(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// CreateUser assigns the next id, derives the avatar from the name and
// appends the record. Ids increase monotonically: max(existing)+1, or
// 1 for an empty collection.
func (s *Store) CreateUser(ctx context.Context, in domain.CreateUserInput) (domain.User, error) {
	if err := s.delay.Wait(ctx); err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := domain.User{
		ID:     s.nextID(),
		Name:   in.Name,
		Email:  in.Email,
		Role:   in.Role,
		Status: in.Status,
		Campus: defaultCampus,
		Avatar: domain.Initials(in.Name),
	}
	s.users = append(s.users, u)
	return u, nil
}

// UpdateUser replaces the editable fields and recomputes the avatar.
// Id and email are preserved.
func (s *Store) UpdateUser(ctx context.Context, id int64, in domain.UpdateUserInput) (domain.User, error) {
	if err := s.delay.Wait(ctx); err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.User{}, store.ErrNotFound
	}

	u := &s.users[i]
	u.Name = in.Name
	u.Role = in.Role
	u.Campus = in.Campus
	u.Status = in.Status
	u.Avatar = domain.Initials(in.Name)
	return *u, nil
}

// UpdateUserStatus flips only the status field.
func (s *Store) UpdateUserStatus(ctx context.Context, id int64, status domain.UserStatus) (domain.User, error) {
	if err := s.delay.Wait(ctx); err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.User{}, store.ErrNotFound
	}

	s.users[i].Status = status
	return s.users[i], nil
}

// ResetPassword issues a temporary password. Unlike the other
// mutations it does not check that id exists; the live endpoint
// behaves the same way, so the gap is kept rather than papered over.
func (s *Store) ResetPassword(ctx context.Context, id int64) (string, error) {
	if err := s.delay.Wait(ctx); err != nil {
		return "", err
	}
	return tempPassword(), nil
}

// GetProfile returns the singleton.
func (s *Store) GetProfile(ctx context.Context) (domain.Profile, error) {
	if err := s.delay.Wait(ctx); err != nil {
		return domain.Profile{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile, nil
}

// UpdateProfile merges the editable fields into the singleton. Id,
// email and role stay untouched.
func (s *Store) UpdateProfile(ctx context.Context, in domain.UpdateProfileInput) (domain.Profile, error) {
	if err := s.delay.Wait(ctx); err != nil {
		return domain.Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile.Name = in.Name
	s.profile.Department = in.Department
	return s.profile, nil
}

// Len reports the current user count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *Store) nextID() int64 {
	var max int64
	for _, u := range s.users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

func (s *Store) indexOf(id int64) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func tempPassword() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = passwordAlphabet[rand.Intn(len(passwordAlphabet))]
	}
	return "Temp" + string(b) + "!"
}
