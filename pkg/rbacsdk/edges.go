package rbacsdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
)

// Relationship synchronization. Roles, policies, capabilities and endpoints
// are tied together by many-to-many edges owned by the remote authority.
// EdgeSync keeps a local per-owner view of one edge table and the rule for
// keeping it honest is strict: every successful mutation discards the
// owner's cached set rather than merging speculatively, because the server
// may apply validation or dedup logic the client does not model. Cache
// entries carry no TTL; invalidation is purely mutation-driven.

// Relation names one edge table by the owning collection and the related
// segment, e.g. {Owner: "roles", Related: "policies"}.
type Relation struct {
	Owner   string
	Related string
}

// The three edge tables the service exposes.
var (
	RelationRolePolicies       = Relation{Owner: "roles", Related: "policies"}
	RelationPolicyCapabilities = Relation{Owner: "policies", Related: "capabilities"}
	RelationPolicyEndpoints    = Relation{Owner: "policies", Related: "endpoints"}
)

// EdgeSync links and unlinks edges of one relation and serves cached edge
// sets for owners whose view is still confirmed. Safe for concurrent use.
type EdgeSync struct {
	client *SDKClient
	rel    Relation

	mu    sync.Mutex
	edges map[int64][]int64
	valid map[int64]bool

	// gen counts invalidations per owner and epoch counts full resets. A
	// fetch captures both before going to the network and its result is
	// only cached when neither moved, so a mutation that lands while the
	// fetch is in flight keeps the entry invalid instead of being
	// overwritten by the stale pre-mutation set.
	gen   map[int64]uint64
	epoch uint64
}

func newEdgeSync(client *SDKClient, rel Relation) *EdgeSync {
	return &EdgeSync{
		client: client,
		rel:    rel,
		edges:  make(map[int64][]int64),
		valid:  make(map[int64]bool),
		gen:    make(map[int64]uint64),
	}
}

// Edges returns the synchronizer for rel, creating it on first use. All
// callers of a session share one cache per relation, so an invalidation by
// one caller is observed by the rest.
func (s *Session) Edges(rel Relation) *EdgeSync {
	s.mu.Lock()
	defer s.mu.Unlock()

	es, ok := s.edges[rel]
	if !ok {
		es = newEdgeSync(s.client, rel)
		s.edges[rel] = es
	}
	return es
}

// RolePolicies returns the role to policy edge synchronizer.
func (s *Session) RolePolicies() *EdgeSync { return s.Edges(RelationRolePolicies) }

// PolicyCapabilities returns the policy to capability edge synchronizer.
func (s *Session) PolicyCapabilities() *EdgeSync { return s.Edges(RelationPolicyCapabilities) }

// PolicyEndpoints returns the policy to endpoint edge synchronizer.
func (s *Session) PolicyEndpoints() *EdgeSync { return s.Edges(RelationPolicyEndpoints) }

// Link attaches the full batch of related ids to the owner in one call.
// On success the owner's cached edge set is invalidated, to be refetched on
// the next read.
func (e *EdgeSync) Link(ctx context.Context, ownerID int64, relatedIDs []int64) error {
	resp, err := e.client.doJSON(ctx, http.MethodPost, e.ownerPath(ownerID), linkRequest{IDs: relatedIDs}, true)
	if err != nil {
		return err
	}

	if err := e.client.discardBody(resp, http.StatusOK); err != nil {
		return err
	}

	e.Invalidate(ownerID)
	return nil
}

// Unlink removes exactly one edge. An edge that no longer exists on the
// server is an acceptable outcome, not an error: concurrent operators race,
// and the caller-visible contract only promises the edge is gone afterward.
func (e *EdgeSync) Unlink(ctx context.Context, ownerID, relatedID int64) error {
	path := fmt.Sprintf("%s/%d", e.ownerPath(ownerID), relatedID)
	resp, err := e.client.do(ctx, http.MethodDelete, path, nil, true)
	if err != nil {
		return err
	}

	if err := e.client.discardBody(resp, http.StatusNoContent); err != nil {
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		// Already absent; fall through and invalidate like a normal unlink.
	}

	e.Invalidate(ownerID)
	return nil
}

// ListEdgesFor returns the owner's edge set. A confirmed cached set is
// served as-is; an invalid or missing entry triggers a fresh fetch which
// then becomes the confirmed view, unless a mutation invalidated the owner
// while the fetch was in flight. In that case the fetched set is returned
// to the caller but not cached, and the next read fetches again.
func (e *EdgeSync) ListEdgesFor(ctx context.Context, ownerID int64) ([]int64, error) {
	e.mu.Lock()
	if e.valid[ownerID] {
		cached := slices.Clone(e.edges[ownerID])
		e.mu.Unlock()
		return cached, nil
	}
	gen, epoch := e.gen[ownerID], e.epoch
	e.mu.Unlock()

	resp, err := e.client.do(ctx, http.MethodGet, e.ownerPath(ownerID), nil, true)
	if err != nil {
		return nil, err
	}

	var edgeResp edgeListResponse
	if err := e.client.decodeJSON(resp, &edgeResp, http.StatusOK); err != nil {
		return nil, err
	}

	confirmed := dedupeIDs(edgeResp.IDs)

	e.mu.Lock()
	if e.gen[ownerID] == gen && e.epoch == epoch {
		e.edges[ownerID] = confirmed
		e.valid[ownerID] = true
	}
	e.mu.Unlock()

	return slices.Clone(confirmed), nil
}

// Invalidate discards the cached edge set for one owner.
func (e *EdgeSync) Invalidate(ownerID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.edges, ownerID)
	delete(e.valid, ownerID)
	e.gen[ownerID]++
}

// InvalidateAll discards every cached edge set for this relation.
func (e *EdgeSync) InvalidateAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.edges = make(map[int64][]int64)
	e.valid = make(map[int64]bool)
	e.epoch++
}

func (e *EdgeSync) ownerPath(ownerID int64) string {
	return fmt.Sprintf("/api/auth/admin/%s/%d/%s", e.rel.Owner, ownerID, e.rel.Related)
}

// dedupeIDs drops duplicate ids while preserving server order. A pair
// appears at most once in the local view.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
