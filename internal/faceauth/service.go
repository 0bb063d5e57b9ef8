// Package faceauth implements the application service that ties the device
// session to the template store: enrollment, authentication with the
// match-and-maybe-update cycle, and user management.
package faceauth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/kozaktomas/face-vault/internal/device"
	"github.com/kozaktomas/face-vault/internal/faceprint"
	"github.com/kozaktomas/face-vault/internal/store"
)

// ErrExtractionFailed reports a session that terminated without a usable
// faceprint payload.
var ErrExtractionFailed = errors.New("faceprint extraction failed")

// EnrollResult is the outcome of one enroll operation.
type EnrollResult struct {
	SessionID string
	UserID    string
	Status    device.EnrollStatus
}

// AuthOutcome is the outcome of one authenticate operation. Matched is false
// when extraction succeeded but no stored template satisfied the matcher.
type AuthOutcome struct {
	SessionID string
	Status    device.AuthenticateStatus
	Matched   bool
	UserID    string
	Updated   bool
}

// Service owns a device session and a template store. The mutex serializes
// whole operations so a match-and-update cycle never interleaves with
// another writer reading the same template.
type Service struct {
	mu    sync.Mutex
	dev   device.Session
	store store.TemplateStore
}

func NewService(dev device.Session, st store.TemplateStore) *Service {
	return &Service{
		dev:   dev,
		store: st,
	}
}

// Enroll runs one extraction session and, on success, stores the extracted
// faceprint under userID. A failed extraction leaves the store untouched.
// Re-enrolling an existing user replaces the whole template, including the
// enrollment-time descriptor.
func (s *Service) Enroll(ctx context.Context, userID string, obs EnrollObserver) (EnrollResult, error) {
	id, err := NormalizeUserID(userID)
	if err != nil {
		return EnrollResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	collector := &enrollCollector{
		tracker: faceprint.NewPoseTracker(),
		obs:     obs,
	}
	result := EnrollResult{
		SessionID: uuid.NewString(),
		UserID:    id,
	}

	if err := s.dev.ExtractFaceprintsForEnroll(ctx, collector); err != nil {
		return result, fmt.Errorf("could not run enroll session: %w", err)
	}
	result.Status = collector.status
	if collector.status != device.EnrollSuccess || collector.extraction == nil {
		return result, fmt.Errorf("enroll %q: %w: %s", id, ErrExtractionFailed, collector.status)
	}

	fp := faceprint.NewEnrolled(*collector.extraction)
	if err := s.store.Upsert(ctx, id, fp); err != nil {
		return result, fmt.Errorf("could not store template for %q: %w", id, err)
	}
	return result, nil
}

// Authenticate runs one extraction session and scans stored templates in
// enumeration order, stopping at the first user the matcher accepts. When
// the matcher asks for an update, the updated template replaces the stored
// one before the method returns.
func (s *Service) Authenticate(ctx context.Context, obs AuthObserver) (AuthOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collector := &authCollector{obs: obs}
	outcome := AuthOutcome{
		SessionID: uuid.NewString(),
	}

	if err := s.dev.ExtractFaceprintsForAuth(ctx, collector); err != nil {
		return outcome, fmt.Errorf("could not run auth session: %w", err)
	}
	outcome.Status = collector.status
	if collector.status != device.AuthSuccess || collector.extraction == nil {
		return outcome, fmt.Errorf("authenticate: %w: %s", ErrExtractionFailed, collector.status)
	}

	scanned := faceprint.Scanned(*collector.extraction)

	users, err := s.store.List(ctx)
	if err != nil {
		return outcome, fmt.Errorf("could not list users: %w", err)
	}
	for _, userID := range users {
		existing, err := s.store.Lookup(ctx, userID)
		if err != nil {
			return outcome, fmt.Errorf("could not load template for %q: %w", userID, err)
		}
		if existing == nil {
			continue
		}
		match := s.dev.MatchFaceprints(scanned, *existing)
		if !match.Success {
			continue
		}
		outcome.Matched = true
		outcome.UserID = userID
		if match.ShouldUpdate {
			if err := s.store.Upsert(ctx, userID, match.Updated); err != nil {
				return outcome, fmt.Errorf("could not store updated template for %q: %w", userID, err)
			}
			outcome.Updated = true
		}
		return outcome, nil
	}
	return outcome, nil
}

// ListUsers returns stored user ids in the store's enumeration order.
func (s *Service) ListUsers(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List(ctx)
}

// RemoveUser deletes one user's template. It returns store.ErrUserNotFound
// when the id is unknown.
func (s *Service) RemoveUser(ctx context.Context, userID string) error {
	id, err := NormalizeUserID(userID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Remove(ctx, id)
}

// ClearUsers deletes every stored template.
func (s *Service) ClearUsers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Clear(ctx)
}

// Count returns the number of stored templates.
func (s *Service) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Count(ctx)
}
