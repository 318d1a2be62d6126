package access

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Tsedii1275/campusadmin/internal/core/domain"
	"github.com/Tsedii1275/campusadmin/internal/infra/api"
	"github.com/Tsedii1275/campusadmin/internal/infra/store"
)

// Account exposes the profile-singleton operations and the password
// change action.
type Account struct {
	transport Transport
	store     store.Backend
	policy    *Policy
	cache     Cache
	log       *slog.Logger
}

func NewAccount(t Transport, s store.Backend, p *Policy, c Cache, log *slog.Logger) *Account {
	return &Account{
		transport: t,
		store:     s,
		policy:    p,
		cache:     c,
		log:       log.With("family", FamilyProfile),
	}
}

// FetchProfile reads the profile singleton, degrading silently to the
// local store like Users.Fetch.
func (a *Account) FetchProfile(ctx context.Context) (domain.Profile, error) {
	if a.policy.MockForced() {
		return a.store.GetProfile(ctx)
	}

	if raw, ok := a.cache.Get(ctx, FamilyProfile); ok {
		if p, err := decode[domain.Profile](raw); err == nil {
			return p, nil
		}
		a.cache.Invalidate(ctx, FamilyProfile)
	}

	raw, err := a.transport.Get(ctx, "/users/me")
	if err == nil {
		p, decErr := decode[domain.Profile](raw)
		if decErr == nil {
			a.cache.Set(ctx, FamilyProfile, raw)
			return p, nil
		}
		err = decErr
	}

	a.log.Warn("Reading profile from local store", "reason", api.Classify(err).String(), "error", err)
	fallbacksTotal.WithLabelValues(FamilyProfile, "fetch", api.Classify(err).String()).Inc()

	p, storeErr := a.store.GetProfile(ctx)
	if storeErr != nil {
		return domain.Profile{}, storeErr
	}
	if cached, mErr := json.Marshal(p); mErr == nil {
		a.cache.Set(ctx, FamilyProfile, cached)
	}
	return p, nil
}

// UpdateProfile merges the editable fields into the singleton.
func (a *Account) UpdateProfile(ctx context.Context, in domain.UpdateProfileInput) (domain.Profile, error) {
	if a.policy.MockForced() {
		p, err := a.store.UpdateProfile(ctx, in)
		if err == nil {
			a.cache.Invalidate(ctx, FamilyProfile)
		}
		return p, err
	}

	raw, err := a.transport.Put(ctx, "/users/me", in)
	if err == nil {
		if p, decErr := decode[domain.Profile](raw); decErr == nil {
			a.cache.Invalidate(ctx, FamilyProfile)
			return p, nil
		}
	}

	kind := api.Classify(err)
	if !a.policy.ShouldFallback(kind) {
		return domain.Profile{}, err
	}

	a.log.Warn("Updating profile in local store", "reason", kind.String())
	fallbacksTotal.WithLabelValues(FamilyProfile, "update", kind.String()).Inc()
	p, storeErr := a.store.UpdateProfile(ctx, in)
	if storeErr == nil {
		a.cache.Invalidate(ctx, FamilyProfile)
	}
	return p, storeErr
}

// ChangePassword submits a credential change. There is no local state
// to mutate, so the recovered path is a simulated acceptance: the call
// reports success without contacting anything.
func (a *Account) ChangePassword(ctx context.Context, in domain.ChangePasswordInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	if a.policy.MockForced() {
		return nil
	}

	_, err := a.transport.Post(ctx, "/auth/change-password", in)
	if err == nil {
		return nil
	}

	kind := api.Classify(err)
	if !a.policy.ShouldFallback(kind) {
		return err
	}

	a.log.Warn("Accepting password change locally", "reason", kind.String())
	fallbacksTotal.WithLabelValues(FamilyProfile, "change_password", kind.String()).Inc()
	return nil
}
