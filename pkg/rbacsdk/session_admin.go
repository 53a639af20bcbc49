package rbacsdk

import (
	"context"
	"fmt"
	"net/http"
)

// Reference-entity management. The six admin collections (roles, policies,
// capabilities, endpoints, ui-pages, page-actions) share one CRUD shape, so
// a single generic resource handles all of them instead of six copies of
// the same four calls.

// AdminResource provides CRUD over one reference-entity collection under
// /api/auth/admin. Obtain instances from the Session accessors below.
type AdminResource[T any] struct {
	session    *Session
	collection string
}

// listEnvelope wraps admin collection listings.
type listEnvelope[T any] struct {
	Items []T `json:"items"`
}

// List retrieves every entity in the collection.
func (r AdminResource[T]) List(ctx context.Context) ([]T, error) {
	resp, err := r.session.client.do(ctx, http.MethodGet, r.path(), nil, true)
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope[T]
	if err := r.session.client.decodeJSON(resp, &envelope, http.StatusOK); err != nil {
		return nil, err
	}

	return envelope.Items, nil
}

// Create adds an entity and returns the server's view of it, id assigned.
func (r AdminResource[T]) Create(ctx context.Context, entity T) (*T, error) {
	resp, err := r.session.client.doJSON(ctx, http.MethodPost, r.path(), entity, true)
	if err != nil {
		return nil, err
	}

	var created T
	if err := r.session.client.decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}

	return &created, nil
}

// Update replaces the entity with the given id.
func (r AdminResource[T]) Update(ctx context.Context, id int64, entity T) (*T, error) {
	resp, err := r.session.client.doJSON(ctx, http.MethodPut, r.itemPath(id), entity, true)
	if err != nil {
		return nil, err
	}

	var updated T
	if err := r.session.client.decodeJSON(resp, &updated, http.StatusOK); err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes the entity with the given id.
func (r AdminResource[T]) Delete(ctx context.Context, id int64) error {
	resp, err := r.session.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, true)
	if err != nil {
		return err
	}

	return r.session.client.discardBody(resp, http.StatusNoContent)
}

func (r AdminResource[T]) path() string {
	return "/api/auth/admin/" + r.collection
}

func (r AdminResource[T]) itemPath(id int64) string {
	return fmt.Sprintf("/api/auth/admin/%s/%d", r.collection, id)
}

// AdminRoles manages the role collection.
func (s *Session) AdminRoles() AdminResource[Role] {
	return AdminResource[Role]{session: s, collection: "roles"}
}

// AdminPolicies manages the policy collection.
func (s *Session) AdminPolicies() AdminResource[Policy] {
	return AdminResource[Policy]{session: s, collection: "policies"}
}

// AdminCapabilities manages the capability collection.
func (s *Session) AdminCapabilities() AdminResource[Capability] {
	return AdminResource[Capability]{session: s, collection: "capabilities"}
}

// AdminEndpoints manages the protected-endpoint collection.
func (s *Session) AdminEndpoints() AdminResource[Endpoint] {
	return AdminResource[Endpoint]{session: s, collection: "endpoints"}
}

// AdminUIPages manages the UI page collection.
func (s *Session) AdminUIPages() AdminResource[UIPage] {
	return AdminResource[UIPage]{session: s, collection: "ui-pages"}
}

// AdminPageActions manages the page action collection.
func (s *Session) AdminPageActions() AdminResource[PageAction] {
	return AdminResource[PageAction]{session: s, collection: "page-actions"}
}
