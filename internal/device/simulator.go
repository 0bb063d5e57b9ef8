package device

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"sync"

	"github.com/kozaktomas/face-vault/internal/faceprint"
)

// Simulator behavior constants. The descriptor value ranges are arbitrary
// but chosen so that two extractions of the same subject land well inside
// the match threshold while two different subjects land far outside it.
const (
	simTemplateVersion = 8
	simSubjectSpread   = 1000 // subject descriptor elements in [-spread, spread]
	simScanNoise       = 3    // per-extraction jitter in [-noise, noise]
	simMatchThreshold  = 50.0 // mean abs element distance for a match
	simUpdateThreshold = 2.0  // drift above this refreshes the average

	simPreviewWidth  = 640
	simPreviewHeight = 480
)

// EnrollScript scripts one enroll extraction session of the Simulator.
type EnrollScript struct {
	Hints      []EnrollStatus
	Poses      []faceprint.Pose
	Status     EnrollStatus
	Extraction *faceprint.Extraction
}

// AuthScript scripts one auth extraction session of the Simulator.
type AuthScript struct {
	Hints      []AuthenticateStatus
	Status     AuthenticateStatus
	Extraction *faceprint.Extraction
}

// Simulator is an in-process stand-in for the sensor, used by tests and by
// the CLI when no hardware is attached. Unscripted extractions synthesize a
// stable "subject" descriptor plus per-scan jitter, so enrolling and then
// authenticating within one process behaves like a real round trip.
type Simulator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	info    Info
	subject faceprint.Descriptor
	closed  bool

	enrollQueue []EnrollScript
	authQueue   []AuthScript
}

// NewSimulator creates a simulator with a deterministic subject derived
// from seed.
func NewSimulator(seed int64) *Simulator {
	s := &Simulator{
		rng: rand.New(rand.NewSource(seed)),
		info: Info{
			FirmwareVersion: "sim-2.4.0",
			SerialNumber:    fmt.Sprintf("SIM-%08d", seed%1e8),
		},
	}
	s.subject = s.randomDescriptor(simSubjectSpread)
	return s
}

// ChangeSubject replaces the simulated person in front of the camera.
func (s *Simulator) ChangeSubject() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subject = s.randomDescriptor(simSubjectSpread)
}

// QueueEnroll schedules a scripted outcome for the next enroll extraction.
func (s *Simulator) QueueEnroll(script EnrollScript) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrollQueue = append(s.enrollQueue, script)
}

// QueueAuth schedules a scripted outcome for the next auth extraction.
func (s *Simulator) QueueAuth(script AuthScript) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authQueue = append(s.authQueue, script)
}

func (s *Simulator) randomDescriptor(spread int) faceprint.Descriptor {
	var d faceprint.Descriptor
	for i := range d {
		d[i] = int16(s.rng.Intn(2*spread+1) - spread)
	}
	return d
}

// scan returns the subject descriptor with fresh per-extraction jitter.
func (s *Simulator) scan() faceprint.Descriptor {
	d := s.subject
	for i := range d {
		d[i] += int16(s.rng.Intn(2*simScanNoise+1) - simScanNoise)
	}
	return d
}

func (s *Simulator) newExtraction() *faceprint.Extraction {
	return &faceprint.Extraction{
		Version:             simTemplateVersion,
		NumberOfDescriptors: 1,
		FeaturesType:        faceprint.FeaturesTypeW10,
		Descriptor:          s.scan(),
	}
}

// ExtractFaceprintsForEnroll runs one enroll extraction session. Without a
// queued script it reports all three poses and succeeds.
func (s *Simulator) ExtractFaceprintsForEnroll(ctx context.Context, cb EnrollExtractionCallback) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("enroll extraction: %w", ErrConnection)
	}
	script := EnrollScript{
		Hints:      []EnrollStatus{EnrollCameraStarted, EnrollFaceDetected},
		Poses:      []faceprint.Pose{faceprint.PoseCenter, faceprint.PoseLeft, faceprint.PoseRight},
		Status:     EnrollSuccess,
		Extraction: s.newExtraction(),
	}
	if len(s.enrollQueue) > 0 {
		script = s.enrollQueue[0]
		s.enrollQueue = s.enrollQueue[1:]
	}
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("enroll extraction: %w", err)
	}
	for _, hint := range script.Hints {
		cb.OnHint(hint)
	}
	for _, pose := range script.Poses {
		cb.OnProgress(pose)
	}
	if script.Status != EnrollSuccess {
		cb.OnResult(script.Status, nil)
		return nil
	}
	cb.OnResult(EnrollSuccess, script.Extraction)
	return nil
}

// ExtractFaceprintsForAuth runs one auth extraction session. Without a
// queued script it succeeds with a fresh scan of the current subject.
func (s *Simulator) ExtractFaceprintsForAuth(ctx context.Context, cb AuthExtractionCallback) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("auth extraction: %w", ErrConnection)
	}
	script := AuthScript{
		Hints:      []AuthenticateStatus{AuthCameraStarted, AuthFaceDetected},
		Status:     AuthSuccess,
		Extraction: s.newExtraction(),
	}
	if len(s.authQueue) > 0 {
		script = s.authQueue[0]
		s.authQueue = s.authQueue[1:]
	}
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("auth extraction: %w", err)
	}
	for _, hint := range script.Hints {
		cb.OnHint(hint)
	}
	if script.Status != AuthSuccess {
		cb.OnResult(script.Status, nil)
		return nil
	}
	cb.OnResult(AuthSuccess, script.Extraction)
	return nil
}

// MatchFaceprints implements the similarity oracle on the simulated device:
// mean absolute element distance between the average descriptors, with an
// update when the scan drifted measurably from the stored average. The
// refreshed average is the element-wise midpoint; the original descriptor
// is carried through untouched.
func (s *Simulator) MatchFaceprints(scanned, existing faceprint.Faceprints) MatchResult {
	dist := meanAbsDistance(scanned.AvgDescriptor, existing.AvgDescriptor)
	if dist > simMatchThreshold {
		return MatchResult{}
	}

	result := MatchResult{Success: true, Updated: existing}
	if dist > simUpdateThreshold {
		result.ShouldUpdate = true
		for i := range result.Updated.AvgDescriptor {
			mid := (int(existing.AvgDescriptor[i]) + int(scanned.AvgDescriptor[i])) / 2
			result.Updated.AvgDescriptor[i] = int16(mid)
		}
	}
	return result
}

func meanAbsDistance(a, b faceprint.Descriptor) float64 {
	var sum float64
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		sum += float64(d)
	}
	return sum / float64(len(a))
}

// QueryDeviceInfo returns the simulated firmware version and serial number.
func (s *Simulator) QueryDeviceInfo(ctx context.Context) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Info{}, fmt.Errorf("device info: %w", ErrConnection)
	}
	return s.info, nil
}

// Ping checks the simulated link.
func (s *Simulator) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("ping: %w", ErrConnection)
	}
	return ctx.Err()
}

// CapturePreview emits the requested number of synthetic preview frames.
func (s *Simulator) CapturePreview(ctx context.Context, frames int, cb PreviewCallback) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("preview: %w", ErrConnection)
	}
	s.mu.Unlock()

	for n := range frames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		cb.OnPreviewFrame(PreviewFrame{Number: n, Image: syntheticFrame(n)})
	}
	return nil
}

// syntheticFrame renders a gradient that shifts with the frame number, so
// saved previews are visually distinguishable.
func syntheticFrame(n int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, simPreviewWidth, simPreviewHeight))
	shift := uint8(n * 16)
	for y := 0; y < simPreviewHeight; y++ {
		for x := 0; x < simPreviewWidth; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x) + shift,
				G: uint8(y),
				B: uint8(x+y) - shift,
				A: 255,
			})
		}
	}
	return img
}

// Close drops the simulated connection; every later call fails with
// ErrConnection.
func (s *Simulator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
