package access

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Tsedii1275/campusadmin/internal/core/domain"
	"github.com/Tsedii1275/campusadmin/internal/infra/api"
	"github.com/Tsedii1275/campusadmin/internal/infra/store"
)

// Users exposes the user-collection operations. Each call makes at
// most one transport attempt and at most one store attempt.
type Users struct {
	transport Transport
	store     store.Backend
	policy    *Policy
	cache     Cache
	log       *slog.Logger
}

func NewUsers(t Transport, s store.Backend, p *Policy, c Cache, log *slog.Logger) *Users {
	return &Users{
		transport: t,
		store:     s,
		policy:    p,
		cache:     c,
		log:       log.With("family", FamilyUsers),
	}
}

// Fetch lists users. It degrades silently: any live-path failure is
// answered from the local store with a logged warning, so callers
// always get a renderable list.
func (u *Users) Fetch(ctx context.Context) ([]domain.User, error) {
	if u.policy.MockForced() {
		return u.store.ListUsers(ctx)
	}

	if raw, ok := u.cache.Get(ctx, FamilyUsers); ok {
		if users, err := decode[[]domain.User](raw); err == nil {
			return users, nil
		}
		u.cache.Invalidate(ctx, FamilyUsers)
	}

	raw, err := u.transport.Get(ctx, "/users")
	if err == nil {
		users, decErr := decode[[]domain.User](raw)
		if decErr == nil {
			u.cache.Set(ctx, FamilyUsers, raw)
			return users, nil
		}
		err = decErr
	}

	u.log.Warn("Listing users from local store", "reason", api.Classify(err).String(), "error", err)
	fallbacksTotal.WithLabelValues(FamilyUsers, "fetch", api.Classify(err).String()).Inc()

	users, storeErr := u.store.ListUsers(ctx)
	if storeErr != nil {
		return nil, storeErr
	}
	if cached, mErr := json.Marshal(users); mErr == nil {
		u.cache.Set(ctx, FamilyUsers, cached)
	}
	return users, nil
}

// Create adds a user. A rejection from a reachable server surfaces
// verbatim; network-class failures create the user locally instead.
func (u *Users) Create(ctx context.Context, in domain.CreateUserInput) (domain.User, error) {
	if !in.Status.Valid() {
		return domain.User{}, fmt.Errorf("invalid status %q", in.Status)
	}

	if u.policy.MockForced() {
		return u.invalidateAfter(ctx, func() (domain.User, error) {
			return u.store.CreateUser(ctx, in)
		})
	}

	raw, err := u.transport.Post(ctx, "/users", in)
	if err == nil {
		if user, decErr := decode[domain.User](raw); decErr == nil {
			u.cache.Invalidate(ctx, FamilyUsers)
			return user, nil
		}
	}

	kind := api.Classify(err)
	if !u.policy.ShouldFallback(kind) {
		return domain.User{}, err
	}

	u.log.Warn("Creating user in local store", "reason", kind.String())
	fallbacksTotal.WithLabelValues(FamilyUsers, "create", kind.String()).Inc()
	return u.invalidateAfter(ctx, func() (domain.User, error) {
		return u.store.CreateUser(ctx, in)
	})
}

// Update replaces a user's editable fields. ErrNotFound from the
// local store is a genuine failure and surfaces.
func (u *Users) Update(ctx context.Context, id int64, in domain.UpdateUserInput) (domain.User, error) {
	if !in.Status.Valid() {
		return domain.User{}, fmt.Errorf("invalid status %q", in.Status)
	}

	if u.policy.MockForced() {
		return u.invalidateAfter(ctx, func() (domain.User, error) {
			return u.store.UpdateUser(ctx, id, in)
		})
	}

	raw, err := u.transport.Put(ctx, fmt.Sprintf("/users/%d", id), in)
	if err == nil {
		if user, decErr := decode[domain.User](raw); decErr == nil {
			u.cache.Invalidate(ctx, FamilyUsers)
			return user, nil
		}
	}

	kind := api.Classify(err)
	if !u.policy.ShouldFallback(kind) {
		return domain.User{}, err
	}

	u.log.Warn("Updating user in local store", "reason", kind.String(), "id", id)
	fallbacksTotal.WithLabelValues(FamilyUsers, "update", kind.String()).Inc()
	return u.invalidateAfter(ctx, func() (domain.User, error) {
		return u.store.UpdateUser(ctx, id, in)
	})
}

// SetStatus flips a user between Active and Inactive.
func (u *Users) SetStatus(ctx context.Context, id int64, status domain.UserStatus) (domain.User, error) {
	if !status.Valid() {
		return domain.User{}, fmt.Errorf("invalid status %q", status)
	}

	if u.policy.MockForced() {
		return u.invalidateAfter(ctx, func() (domain.User, error) {
			return u.store.UpdateUserStatus(ctx, id, status)
		})
	}

	body := map[string]domain.UserStatus{"status": status}
	raw, err := u.transport.Patch(ctx, fmt.Sprintf("/users/%d/status", id), body)
	if err == nil {
		if user, decErr := decode[domain.User](raw); decErr == nil {
			u.cache.Invalidate(ctx, FamilyUsers)
			return user, nil
		}
	}

	kind := api.Classify(err)
	if !u.policy.ShouldFallback(kind) {
		return domain.User{}, err
	}

	u.log.Warn("Updating user status in local store", "reason", kind.String(), "id", id)
	fallbacksTotal.WithLabelValues(FamilyUsers, "set_status", kind.String()).Inc()
	return u.invalidateAfter(ctx, func() (domain.User, error) {
		return u.store.UpdateUserStatus(ctx, id, status)
	})
}

// ResetPassword issues a temporary password for a user. The local
// path issues one even for ids the store has never seen; it mirrors
// the live endpoint's behavior.
func (u *Users) ResetPassword(ctx context.Context, id int64) (string, error) {
	if u.policy.MockForced() {
		pw, err := u.store.ResetPassword(ctx, id)
		if err == nil {
			u.cache.Invalidate(ctx, FamilyUsers)
		}
		return pw, err
	}

	raw, err := u.transport.Post(ctx, fmt.Sprintf("/users/%d/reset-password", id), nil)
	if err == nil {
		var payload struct {
			TemporaryPassword string `json:"temporaryPassword"`
		}
		if decErr := json.Unmarshal(raw, &payload); decErr == nil && payload.TemporaryPassword != "" {
			u.cache.Invalidate(ctx, FamilyUsers)
			return payload.TemporaryPassword, nil
		}
		err = &api.Error{Kind: api.KindUnknown, Message: "malformed reset-password response"}
	}

	kind := api.Classify(err)
	if !u.policy.ShouldFallback(kind) {
		return "", err
	}

	u.log.Warn("Issuing temporary password locally", "reason", kind.String(), "id", id)
	fallbacksTotal.WithLabelValues(FamilyUsers, "reset_password", kind.String()).Inc()
	pw, storeErr := u.store.ResetPassword(ctx, id)
	if storeErr == nil {
		u.cache.Invalidate(ctx, FamilyUsers)
	}
	return pw, storeErr
}

func (u *Users) invalidateAfter(ctx context.Context, fn func() (domain.User, error)) (domain.User, error) {
	user, err := fn()
	if err != nil {
		return domain.User{}, err
	}
	u.cache.Invalidate(ctx, FamilyUsers)
	return user, nil
}
