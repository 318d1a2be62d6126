// Package access composes the transport client, the fallback policy
// and the simulated backend into the per-entity operations consumed by
// CLI commands and UI bindings.
package access

import (
	"log/slog"

	"github.com/Tsedii1275/campusadmin/internal/infra/api"
)

// Mode selects how operations are routed.
type Mode string

const (
	// ModeLive contacts the admin API and falls back to the local
	// store only on network-class failures.
	ModeLive Mode = "live"

	// ModeMock never contacts the admin API; every operation routes
	// straight to the local store.
	ModeMock Mode = "mock"
)

// Policy decides whether a classified failure may be recovered by the
// simulated backend.
type Policy struct {
	mode Mode
	log  *slog.Logger
}

func NewPolicy(mode Mode, log *slog.Logger) *Policy {
	return &Policy{mode: mode, log: log}
}

// MockForced reports whether live routing is disabled entirely.
func (p *Policy) MockForced() bool { return p.mode == ModeMock }

// ShouldFallback is the one place the recovery asymmetry lives:
// timeouts and unreachable networks are recovered locally, but an
// explicit rejection from a reachable server is authoritative and must
// never be replaced by a locally synthesized success.
func (p *Policy) ShouldFallback(kind api.Kind) bool {
	switch kind {
	case api.KindTimeout, api.KindNetworkUnreachable:
		return true
	case api.KindServerRejected:
		return false
	default:
		p.log.Warn("Unclassified transport failure, using local store", "kind", kind.String())
		return true
	}
}
