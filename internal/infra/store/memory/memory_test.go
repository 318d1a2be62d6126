package memory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Tsedii1275/campusadmin/internal/core/domain"
	"github.com/Tsedii1275/campusadmin/internal/infra/store"
)

func newTestStore() *Store {
	return NewStore(WithDelay(NoDelay{}))
}

func TestListUsersReturnsSnapshot(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	first, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("Expected seeded users")
	}

	// Mutating the snapshot must not leak into the store.
	first[0].Name = "Mutated"
	second, _ := s.ListUsers(ctx)
	if second[0].Name == "Mutated" {
		t.Error("Expected ListUsers to return a copy")
	}

	// Insertion order is stable across calls.
	for i := range second {
		if second[i].ID != first[i].ID {
			t.Errorf("Order changed at %d: %d vs %d", i, second[i].ID, first[i].ID)
		}
	}
}

func TestCreateUserAssignsMonotonicIDs(t *testing.T) {
	s := &Store{delay: NoDelay{}} // empty collection
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		u, err := s.CreateUser(ctx, domain.CreateUserInput{
			Name: "Test User", Email: "t@example.com", Role: "Staff", Status: domain.StatusActive,
		})
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if u.ID != i {
			t.Errorf("Expected id %d, got %d", i, u.ID)
		}
	}
}

func TestCreateUserDerivesAvatarAndCampus(t *testing.T) {
	s := newTestStore()
	u, err := s.CreateUser(context.Background(), domain.CreateUserInput{
		Name: "Jean Paul Sartre", Email: "jp@example.com", Role: "Trainer", Status: domain.StatusActive,
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if u.Avatar != "JP" {
		t.Errorf("Avatar = %q, want JP", u.Avatar)
	}
	if u.Campus != defaultCampus {
		t.Errorf("Campus = %q, want %q", u.Campus, defaultCampus)
	}
}

func TestUpdateUserReplacesFieldsAndRecomputesAvatar(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	before, _ := s.ListUsers(ctx)
	target := before[0]

	got, err := s.UpdateUser(ctx, target.ID, domain.UpdateUserInput{
		Name: "Worknesh Degefa", Role: "Dean", Campus: "Health Sciences Campus", Status: domain.StatusInactive,
	})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if got.Avatar != "WD" {
		t.Errorf("Avatar = %q, want WD", got.Avatar)
	}
	if got.ID != target.ID || got.Email != target.Email {
		t.Error("Expected id and email to be preserved")
	}
	if got.Role != "Dean" || got.Status != domain.StatusInactive {
		t.Errorf("Unexpected record: %+v", got)
	}
}

func TestUpdateUserUnknownID(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	before, _ := s.ListUsers(ctx)
	_, err := s.UpdateUser(ctx, 999999, domain.UpdateUserInput{Name: "Nobody"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	after, _ := s.ListUsers(ctx)
	if len(after) != len(before) {
		t.Error("Expected collection to be unchanged")
	}
	for i := range after {
		if after[i] != before[i] {
			t.Errorf("Record %d changed: %+v vs %+v", i, after[i], before[i])
		}
	}
}

func TestUpdateUserStatusTouchesOnlyStatus(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	before, _ := s.ListUsers(ctx)
	target := before[0]

	got, err := s.UpdateUserStatus(ctx, target.ID, domain.StatusInactive)
	if err != nil {
		t.Fatalf("UpdateUserStatus failed: %v", err)
	}
	if got.Status != domain.StatusInactive {
		t.Errorf("Status = %q, want Inactive", got.Status)
	}

	want := target
	want.Status = domain.StatusInactive
	if got != want {
		t.Errorf("Other fields changed: %+v vs %+v", got, want)
	}

	if _, err := s.UpdateUserStatus(ctx, 999999, domain.StatusActive); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestResetPasswordFormat(t *testing.T) {
	s := newTestStore()

	// No existence check today, even for absent ids.
	pw, err := s.ResetPassword(context.Background(), 999999)
	if err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if !strings.HasPrefix(pw, "Temp") || !strings.HasSuffix(pw, "!") {
		t.Errorf("Password %q does not match Temp...! shape", pw)
	}
	if len(pw) != len("Temp")+8+1 {
		t.Errorf("Password length = %d, want %d", len(pw), len("Temp")+9)
	}
}

func TestProfileUpdateMergesFields(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	before, _ := s.GetProfile(ctx)
	got, err := s.UpdateProfile(ctx, domain.UpdateProfileInput{Name: "New Name", Department: "Registrar Office"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if got.Name != "New Name" || got.Department != "Registrar Office" {
		t.Errorf("Unexpected profile: %+v", got)
	}
	if got.ID != before.ID || got.Email != before.Email || got.Role != before.Role {
		t.Error("Expected id, email and role to be untouched")
	}

	again, _ := s.GetProfile(ctx)
	if again != got {
		t.Error("Expected read to observe the update")
	}
}

func TestDelayHonorsCancellation(t *testing.T) {
	s := NewStore() // default latency
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.ListUsers(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
