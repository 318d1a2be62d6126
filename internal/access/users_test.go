package access

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Tsedii1275/campusadmin/internal/core/domain"
	"github.com/Tsedii1275/campusadmin/internal/infra/api"
	"github.com/Tsedii1275/campusadmin/internal/infra/store"
	"github.com/Tsedii1275/campusadmin/internal/infra/store/memory"
)

// stubTransport answers every method with the same payload or error
// and counts calls.
type stubTransport struct {
	payload json.RawMessage
	err     error
	calls   int
}

func (s *stubTransport) Get(ctx context.Context, path string) (json.RawMessage, error) {
	s.calls++
	return s.payload, s.err
}

func (s *stubTransport) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	s.calls++
	return s.payload, s.err
}

func (s *stubTransport) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	s.calls++
	return s.payload, s.err
}

func (s *stubTransport) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	s.calls++
	return s.payload, s.err
}

var errUnreachable = &api.Error{Kind: api.KindNetworkUnreachable}

func testLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func newUsersFacade(t Transport, mode Mode, c Cache) (*Users, *memory.Store) {
	log := testLogger()
	s := memory.NewStore(memory.WithDelay(memory.NoDelay{}))
	return NewUsers(t, s, NewPolicy(mode, log), c, log), s
}

func TestFetchPrefersLivePayload(t *testing.T) {
	live := []domain.User{{ID: 42, Name: "Live User", Avatar: "LU", Status: domain.StatusActive}}
	raw, _ := json.Marshal(live)
	tr := &stubTransport{payload: raw}

	users, _ := newUsersFacade(tr, ModeLive, NopCache{})
	got, err := users.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != 42 {
		t.Errorf("Unexpected list: %+v", got)
	}
}

func TestFetchFallsBackAndStaysIdempotent(t *testing.T) {
	tr := &stubTransport{err: errUnreachable}
	users, st := newUsersFacade(tr, ModeLive, NopCache{})
	ctx := context.Background()

	want, _ := st.ListUsers(ctx)
	for i := 0; i < 3; i++ {
		got, err := users.Fetch(ctx)
		if err != nil {
			t.Fatalf("Fetch %d failed: %v", i, err)
		}
		if len(got) != len(want) {
			t.Fatalf("Fetch %d returned %d users, want %d", i, len(got), len(want))
		}
		for j := range got {
			if got[j] != want[j] {
				t.Errorf("Fetch %d record %d = %+v, want %+v", i, j, got[j], want[j])
			}
		}
	}
}

func TestFetchCachesLiveReads(t *testing.T) {
	raw, _ := json.Marshal([]domain.User{{ID: 1, Name: "Cached"}})
	tr := &stubTransport{payload: raw}
	users, _ := newUsersFacade(tr, ModeLive, NewMemoryCache(time.Minute))
	ctx := context.Background()

	users.Fetch(ctx)
	users.Fetch(ctx)
	if tr.calls != 1 {
		t.Errorf("Expected 1 transport call, got %d", tr.calls)
	}
}

func TestCreateSurfacesServerRejection(t *testing.T) {
	tr := &stubTransport{err: &api.Error{
		Kind: api.KindServerRejected, Status: 409, Message: "Email already exists",
	}}
	users, st := newUsersFacade(tr, ModeLive, NopCache{})

	before := st.Len()
	_, err := users.Create(context.Background(), domain.CreateUserInput{
		Name: "Dup User", Email: "dup@example.com", Role: "Staff", Status: domain.StatusActive,
	})
	if err == nil {
		t.Fatal("Expected error")
	}
	if err.Error() != "Email already exists" {
		t.Errorf("Error message = %q, want %q", err.Error(), "Email already exists")
	}
	if st.Len() != before {
		t.Error("Expected local store to be unmodified")
	}
}

func TestCreateFallsBackOnTimeout(t *testing.T) {
	tr := &stubTransport{err: &api.Error{Kind: api.KindTimeout}}
	cache := NewMemoryCache(time.Minute)
	users, _ := newUsersFacade(tr, ModeLive, cache)
	ctx := context.Background()

	u, err := users.Create(ctx, domain.CreateUserInput{
		Name: "Test User", Email: "test@example.com", Role: "Staff", Status: domain.StatusActive,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.Avatar != "TU" {
		t.Errorf("Avatar = %q, want TU", u.Avatar)
	}

	// Read-after-write: the next fetch (also degraded) must include
	// the new record.
	got, err := users.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	found := false
	for _, x := range got {
		if x.ID == u.ID && x.Name == "Test User" && x.Avatar == "TU" {
			found = true
		}
	}
	if !found {
		t.Errorf("Created user missing from subsequent read: %+v", got)
	}
}

func TestUpdateSurfacesNotFound(t *testing.T) {
	tr := &stubTransport{err: errUnreachable}
	users, st := newUsersFacade(tr, ModeLive, NopCache{})
	ctx := context.Background()

	before, _ := st.ListUsers(ctx)
	_, err := users.Update(ctx, 999999, domain.UpdateUserInput{
		Name: "Nobody", Role: "Staff", Campus: "Main Campus", Status: domain.StatusActive,
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	after, _ := st.ListUsers(ctx)
	if len(after) != len(before) {
		t.Error("Expected collection unchanged")
	}
}

func TestSetStatusRejectsInvalidStatus(t *testing.T) {
	tr := &stubTransport{}
	users, _ := newUsersFacade(tr, ModeLive, NopCache{})

	if _, err := users.SetStatus(context.Background(), 1, "Suspended"); err == nil {
		t.Fatal("Expected error for invalid status")
	}
	if tr.calls != 0 {
		t.Error("Expected no transport call for invalid input")
	}
}

func TestSetStatusFallbackObservedByRead(t *testing.T) {
	tr := &stubTransport{err: errUnreachable}
	users, _ := newUsersFacade(tr, ModeLive, NewMemoryCache(time.Minute))
	ctx := context.Background()

	before, _ := users.Fetch(ctx)
	target := before[0]

	updated, err := users.SetStatus(ctx, target.ID, domain.StatusInactive)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if updated.Status != domain.StatusInactive {
		t.Errorf("Status = %q", updated.Status)
	}

	after, _ := users.Fetch(ctx)
	for _, x := range after {
		if x.ID == target.ID && x.Status != domain.StatusInactive {
			t.Error("Read did not observe the status write")
		}
	}
}

func TestResetPasswordFallback(t *testing.T) {
	tr := &stubTransport{err: errUnreachable}
	users, _ := newUsersFacade(tr, ModeLive, NopCache{})

	pw, err := users.ResetPassword(context.Background(), 999999)
	if err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if !strings.HasPrefix(pw, "Temp") || !strings.HasSuffix(pw, "!") {
		t.Errorf("Password %q does not match Temp...! shape", pw)
	}
}

func TestResetPasswordLivePayload(t *testing.T) {
	raw, _ := json.Marshal(map[string]string{"temporaryPassword": "TempXyz12345!"})
	tr := &stubTransport{payload: raw}
	users, _ := newUsersFacade(tr, ModeLive, NopCache{})

	pw, err := users.ResetPassword(context.Background(), 3)
	if err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if pw != "TempXyz12345!" {
		t.Errorf("Password = %q", pw)
	}
}

func TestForcedMockNeverContactsTransport(t *testing.T) {
	tr := &stubTransport{payload: json.RawMessage(`[]`)}
	users, _ := newUsersFacade(tr, ModeMock, NopCache{})
	ctx := context.Background()

	users.Fetch(ctx)
	users.Create(ctx, domain.CreateUserInput{Name: "Mock Only", Status: domain.StatusActive})
	users.SetStatus(ctx, 1, domain.StatusInactive)
	users.ResetPassword(ctx, 1)

	if tr.calls != 0 {
		t.Errorf("Expected 0 transport calls in mock mode, got %d", tr.calls)
	}
}
