// Package authz enforces document ownership.
//
// Every read or write of a user-owned record goes through the Guard: it
// resolves the caller, fetches the document, and compares the document's
// owner to the caller by exact ID match. There is no hierarchical or group
// ownership. The guard never mutates anything itself; callers that write do
// so only after the guard returns, and the returned document reflects the
// pre-write state.
package authz

import (
	"context"
	"errors"
	"fmt"

	"cookshelf/internal/domain"
	"cookshelf/internal/domain/services"
)

// Table identifies an ownership-bearing table. The set is closed: only
// tables listed here participate in guarded access.
type Table string

const (
	TableRecipeBooks Table = "recipeBooks"
	TableRecipes     Table = "recipes"
)

// Action describes what the caller intends to do with the document once
// authorized. It only affects denial messages; the check itself is
// identical for reads and writes.
type Action string

const (
	ActionQuery    Action = "query"
	ActionMutation Action = "mutation"
)

// Owned is any record carrying an owning-user reference.
type Owned interface {
	Owner() string
}

// FetchFn loads a document of a concrete table's schema by ID. It must
// return an error wrapping domain.ErrNotFound when the ID does not resolve;
// the guard replaces that with its own message naming the table.
type FetchFn[D Owned] func(ctx context.Context, id string) (D, error)

// Guard gates access to owned documents.
// It holds only the identity resolver; the per-table fetch is supplied by
// the caller so each call site stays statically typed to its schema.
type Guard struct {
	identity services.IdentityResolver
}

// NewGuard creates a new ownership guard
func NewGuard(identity services.IdentityResolver) *Guard {
	return &Guard{identity: identity}
}

// Document fetches the document with the given ID from the given table and
// returns it if and only if the caller owns it.
//
// Failure modes, all terminal for the call:
//   - domain.ErrUnauthorized: no resolvable caller identity
//   - domain.ErrNotFound: no document with this ID in the table
//   - domain.ErrForbidden: the document exists but the caller is not its owner
func Document[D Owned](ctx context.Context, g *Guard, table Table, action Action, id string, fetch FetchFn[D]) (D, error) {
	var zero D

	user, err := g.identity.CurrentUser(ctx)
	if err != nil {
		return zero, err
	}

	doc, err := fetch(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return zero, fmt.Errorf("%s document (id:%s) not found: %w", table, id, domain.ErrNotFound)
		}
		return zero, fmt.Errorf("fetch %s document for auth: %w", table, err)
	}

	if doc.Owner() != user.ID {
		return zero, fmt.Errorf("unauthorized %s attempt by %s on %s table for doc id=%s: %w",
			action, user.ID, table, id, domain.ErrForbidden)
	}

	return doc, nil
}
