// Package store holds the registry of enrolled users' faceprint templates.
package store

import (
	"context"
	"errors"

	"github.com/kozaktomas/face-vault/internal/faceprint"
)

// ErrUserNotFound is returned by Remove when the user id is not enrolled.
var ErrUserNotFound = errors.New("user not found")

// MaxUserIDLength bounds template keys, matching the sensor's user id limit.
const MaxUserIDLength = 30

// TemplateStore maps user ids to exactly one faceprint template each.
//
// Entries are written atomically as whole records. List enumerates user ids
// in lexicographic order; the order is part of the contract because the
// authentication match scan is first-hit in enumeration order.
type TemplateStore interface {
	// Upsert creates or replaces the template for a user.
	Upsert(ctx context.Context, userID string, fp faceprint.Faceprints) error
	// Lookup returns the stored template, or nil if the user is not enrolled.
	Lookup(ctx context.Context, userID string) (*faceprint.Faceprints, error)
	// List returns all enrolled user ids in lexicographic order.
	List(ctx context.Context) ([]string, error)
	// Remove deletes one user, ErrUserNotFound if absent.
	Remove(ctx context.Context, userID string) error
	// Clear empties the store unconditionally.
	Clear(ctx context.Context) error
	// Count returns the number of enrolled users.
	Count(ctx context.Context) (int, error)
}
