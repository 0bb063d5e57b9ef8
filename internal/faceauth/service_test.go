package faceauth

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/kozaktomas/face-vault/internal/device"
	"github.com/kozaktomas/face-vault/internal/faceprint"
	"github.com/kozaktomas/face-vault/internal/store"
)

// fakeSession is a scripted device session. Scripted enroll and auth
// sessions are consumed in order; matching is delegated to matchFn so tests
// can observe the scan order and short-circuit behavior.
type fakeSession struct {
	enrollScripts []fakeEnroll
	authScripts   []fakeAuth
	matchFn       func(scanned, existing faceprint.Faceprints) device.MatchResult
	matchCalls    []faceprint.Faceprints
}

type fakeEnroll struct {
	poses      []faceprint.Pose
	hints      []device.EnrollStatus
	status     device.EnrollStatus
	extraction *faceprint.Extraction
}

type fakeAuth struct {
	hints      []device.AuthenticateStatus
	status     device.AuthenticateStatus
	extraction *faceprint.Extraction
}

func (f *fakeSession) ExtractFaceprintsForEnroll(ctx context.Context, cb device.EnrollExtractionCallback) error {
	if len(f.enrollScripts) == 0 {
		return errors.New("no enroll script queued")
	}
	script := f.enrollScripts[0]
	f.enrollScripts = f.enrollScripts[1:]
	for _, hint := range script.hints {
		cb.OnHint(hint)
	}
	for _, pose := range script.poses {
		cb.OnProgress(pose)
	}
	cb.OnResult(script.status, script.extraction)
	return nil
}

func (f *fakeSession) ExtractFaceprintsForAuth(ctx context.Context, cb device.AuthExtractionCallback) error {
	if len(f.authScripts) == 0 {
		return errors.New("no auth script queued")
	}
	script := f.authScripts[0]
	f.authScripts = f.authScripts[1:]
	for _, hint := range script.hints {
		cb.OnHint(hint)
	}
	cb.OnResult(script.status, script.extraction)
	return nil
}

func (f *fakeSession) MatchFaceprints(scanned, existing faceprint.Faceprints) device.MatchResult {
	f.matchCalls = append(f.matchCalls, existing)
	if f.matchFn == nil {
		return device.MatchResult{}
	}
	return f.matchFn(scanned, existing)
}

func (f *fakeSession) QueryDeviceInfo(ctx context.Context) (device.Info, error) {
	return device.Info{FirmwareVersion: "fake", SerialNumber: "fake"}, nil
}

func (f *fakeSession) Ping(ctx context.Context) error { return nil }

func (f *fakeSession) CapturePreview(ctx context.Context, frames int, cb device.PreviewCallback) error {
	return nil
}

func (f *fakeSession) Close() error { return nil }

func extraction(version int, seed int16) *faceprint.Extraction {
	e := &faceprint.Extraction{
		Version:             version,
		NumberOfDescriptors: 1,
		FeaturesType:        faceprint.FeaturesTypeW10,
	}
	for i := range e.Descriptor {
		e.Descriptor[i] = seed + int16(i%7)
	}
	return e
}

type recordedPose struct {
	pose faceprint.Pose
	next faceprint.Pose
	done bool
}

type recordingObserver struct {
	poses       []recordedPose
	enrollHints []device.EnrollStatus
}

func (o *recordingObserver) PoseObserved(pose, next faceprint.Pose, done bool) {
	o.poses = append(o.poses, recordedPose{pose: pose, next: next, done: done})
}

func (o *recordingObserver) Hint(hint device.EnrollStatus) {
	o.enrollHints = append(o.enrollHints, hint)
}

type recordingAuthObserver struct {
	hints []device.AuthenticateStatus
}

func (o *recordingAuthObserver) Hint(hint device.AuthenticateStatus) {
	o.hints = append(o.hints, hint)
}

func TestEnrollStoresTemplateWithMatchingVectors(t *testing.T) {
	dev := &fakeSession{
		enrollScripts: []fakeEnroll{{
			poses:      []faceprint.Pose{faceprint.PoseCenter, faceprint.PoseLeft, faceprint.PoseRight},
			hints:      []device.EnrollStatus{device.EnrollCameraStarted, device.EnrollFaceDetected},
			status:     device.EnrollSuccess,
			extraction: extraction(8, 100),
		}},
	}
	st := store.NewMemoryStore()
	svc := NewService(dev, st)
	obs := &recordingObserver{}

	result, err := svc.Enroll(context.Background(), "alice", obs)
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if result.Status != device.EnrollSuccess {
		t.Errorf("expected success status, got %s", result.Status)
	}
	if result.UserID != "alice" {
		t.Errorf("expected user id alice, got %q", result.UserID)
	}
	if result.SessionID == "" {
		t.Error("expected a session id")
	}

	fp, err := st.Lookup(context.Background(), "alice")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if fp == nil {
		t.Fatal("expected stored template")
	}
	if fp.OrigDescriptor != fp.AvgDescriptor {
		t.Error("expected enrollment and adaptive vectors to match after enroll")
	}
	if len(obs.poses) != 3 {
		t.Fatalf("expected 3 pose callbacks, got %d", len(obs.poses))
	}
	if !obs.poses[2].done {
		t.Error("expected last pose callback to report done")
	}
	if len(obs.enrollHints) != 2 {
		t.Errorf("expected 2 hints, got %d", len(obs.enrollHints))
	}
}

func TestEnrollFailureLeavesStoreUntouched(t *testing.T) {
	dev := &fakeSession{
		enrollScripts: []fakeEnroll{{
			status:     device.EnrollFailure,
			extraction: nil,
		}},
	}
	st := store.NewMemoryStore()
	svc := NewService(dev, st)

	result, err := svc.Enroll(context.Background(), "alice", nil)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected extraction failure, got %v", err)
	}
	if result.Status != device.EnrollFailure {
		t.Errorf("expected failure status, got %s", result.Status)
	}
	count, err := st.Count(context.Background())
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty store, got %d templates", count)
	}
}

func TestEnrollRejectsInvalidUserID(t *testing.T) {
	dev := &fakeSession{}
	svc := NewService(dev, store.NewMemoryStore())

	for _, id := range []string{"", "   ", "this user id is way too long to be accepted here"} {
		if _, err := svc.Enroll(context.Background(), id, nil); !errors.Is(err, ErrInvalidUserID) {
			t.Errorf("id %q: expected invalid user id error, got %v", id, err)
		}
	}
	if len(dev.enrollScripts) != 0 {
		t.Error("expected no enroll sessions to be consumed")
	}
}

func TestAuthenticateFirstHitShortCircuits(t *testing.T) {
	// alice does not match; bob and carol both would. The scan must accept
	// bob and never evaluate carol.
	dev := &fakeSession{
		authScripts: []fakeAuth{{
			status:     device.AuthSuccess,
			extraction: extraction(8, 100),
		}},
		matchFn: func(scanned, existing faceprint.Faceprints) device.MatchResult {
			return device.MatchResult{Success: existing.OrigDescriptor[0] != 1}
		},
	}
	st := store.NewMemoryStore()
	ctx := context.Background()
	for _, u := range []struct {
		id   string
		seed int16
	}{{"alice", 1}, {"bob", 2}, {"carol", 3}} {
		if err := st.Upsert(ctx, u.id, faceprint.NewEnrolled(*extraction(8, u.seed))); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}
	svc := NewService(dev, st)

	outcome, err := svc.Authenticate(ctx, nil)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if !outcome.Matched || outcome.UserID != "bob" {
		t.Fatalf("expected match for bob, got matched=%v user=%q", outcome.Matched, outcome.UserID)
	}
	if len(dev.matchCalls) != 2 {
		t.Errorf("expected scan to stop after bob, matcher called %d times", len(dev.matchCalls))
	}
}

func TestAuthenticateNoMatchLeavesStoreUntouched(t *testing.T) {
	dev := &fakeSession{
		authScripts: []fakeAuth{{
			hints:      []device.AuthenticateStatus{device.AuthCameraStarted},
			status:     device.AuthSuccess,
			extraction: extraction(8, 100),
		}},
		matchFn: func(scanned, existing faceprint.Faceprints) device.MatchResult {
			return device.MatchResult{Success: false}
		},
	}
	st := store.NewMemoryStore()
	ctx := context.Background()
	original := faceprint.NewEnrolled(*extraction(8, 1))
	if err := st.Upsert(ctx, "alice", original); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	svc := NewService(dev, st)
	obs := &recordingAuthObserver{}

	outcome, err := svc.Authenticate(ctx, obs)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if outcome.Matched {
		t.Error("expected no match")
	}
	if outcome.Status != device.AuthSuccess {
		t.Errorf("expected extraction success status, got %s", outcome.Status)
	}
	if len(obs.hints) != 1 {
		t.Errorf("expected 1 hint, got %d", len(obs.hints))
	}
	stored, err := st.Lookup(ctx, "alice")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if *stored != original {
		t.Error("expected stored template to be unchanged")
	}
}

func TestAuthenticateUpdatePreservesEnrollmentVector(t *testing.T) {
	updated := faceprint.NewEnrolled(*extraction(8, 1))
	for i := range updated.AvgDescriptor {
		updated.AvgDescriptor[i] += 5
	}
	dev := &fakeSession{
		authScripts: []fakeAuth{{
			status:     device.AuthSuccess,
			extraction: extraction(8, 100),
		}},
		matchFn: func(scanned, existing faceprint.Faceprints) device.MatchResult {
			return device.MatchResult{Success: true, ShouldUpdate: true, Updated: updated}
		},
	}
	st := store.NewMemoryStore()
	ctx := context.Background()
	original := faceprint.NewEnrolled(*extraction(8, 1))
	if err := st.Upsert(ctx, "alice", original); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	svc := NewService(dev, st)

	outcome, err := svc.Authenticate(ctx, nil)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if !outcome.Matched || outcome.UserID != "alice" {
		t.Fatalf("expected match for alice, got matched=%v user=%q", outcome.Matched, outcome.UserID)
	}
	if !outcome.Updated {
		t.Error("expected outcome to report a template update")
	}
	stored, err := st.Lookup(ctx, "alice")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.OrigDescriptor != original.OrigDescriptor {
		t.Error("expected enrollment-time vector to survive the update")
	}
	if stored.AvgDescriptor == original.AvgDescriptor {
		t.Error("expected adaptive vector to change")
	}
}

func TestAuthenticateFailedExtraction(t *testing.T) {
	dev := &fakeSession{
		authScripts: []fakeAuth{{
			status:     device.AuthNoFaceDetected,
			extraction: nil,
		}},
	}
	svc := NewService(dev, store.NewMemoryStore())

	outcome, err := svc.Authenticate(context.Background(), nil)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected extraction failure, got %v", err)
	}
	if outcome.Status != device.AuthNoFaceDetected {
		t.Errorf("expected no-face status, got %s", outcome.Status)
	}
	if len(dev.matchCalls) != 0 {
		t.Error("expected matcher never to run after a failed extraction")
	}
}

func TestRemoveUser(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	if err := st.Upsert(ctx, "alice", faceprint.NewEnrolled(*extraction(8, 1))); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	svc := NewService(&fakeSession{}, st)

	if err := svc.RemoveUser(ctx, "alice"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.RemoveUser(ctx, "alice"); !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("expected user not found, got %v", err)
	}
}

func TestClearUsers(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	for _, id := range []string{"alice", "bob"} {
		if err := st.Upsert(ctx, id, faceprint.NewEnrolled(*extraction(8, 1))); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}
	svc := NewService(&fakeSession{}, st)

	if err := svc.ClearUsers(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected empty store, got %v", users)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := store.NewMemoryStore()
	ctx := context.Background()
	want := map[string]faceprint.Faceprints{
		"alice": faceprint.NewEnrolled(*extraction(8, 1)),
		"bob":   faceprint.NewEnrolled(*extraction(8, 2)),
	}
	for id, fp := range want {
		if err := src.Upsert(ctx, id, fp); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	var buf bytes.Buffer
	exported, err := NewService(&fakeSession{}, src).ExportSnapshot(ctx, &buf)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if exported != 2 {
		t.Fatalf("expected 2 exported templates, got %d", exported)
	}

	dst := store.NewMemoryStore()
	var seen []string
	imported, err := NewService(&fakeSession{}, dst).ImportSnapshot(ctx, &buf, func(id string) {
		seen = append(seen, id)
	})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if imported != 2 {
		t.Fatalf("expected 2 imported templates, got %d", imported)
	}
	if len(seen) != 2 {
		t.Errorf("expected 2 progress callbacks, got %d", len(seen))
	}
	for id, fp := range want {
		got, err := dst.Lookup(ctx, id)
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if got == nil || *got != fp {
			t.Errorf("template for %q did not survive the round trip", id)
		}
	}
}

func TestImportSnapshotRejectsForeignFile(t *testing.T) {
	svc := NewService(&fakeSession{}, store.NewMemoryStore())
	_, err := svc.ImportSnapshot(context.Background(), bytes.NewReader([]byte("not a snapshot")), nil)
	if err == nil {
		t.Fatal("expected import of a foreign file to fail")
	}
}
