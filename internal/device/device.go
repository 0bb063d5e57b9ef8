// Package device defines the boundary to the face biometric sensor.
//
// The sensor owns descriptor extraction and descriptor comparison; the host
// talks to it through a Session. Extraction calls block until the session
// reaches its terminal result and deliver progress, hints and the result
// synchronously on the calling goroutine - there is exactly one extraction
// session active per connection at a time, and no callback is delivered
// after the terminal OnResult.
package device

import (
	"context"
	"errors"
	"image"

	"github.com/kozaktomas/face-vault/internal/faceprint"
)

// ErrConnection reports that the device link failed before the session
// delivered any callback.
var ErrConnection = errors.New("device connection error")

// EnrollExtractionCallback receives the callbacks of one enroll extraction
// session. OnProgress and OnHint are advisory and may fire zero or more
// times; OnResult fires exactly once. The extraction payload is non-nil
// only when status is EnrollSuccess.
type EnrollExtractionCallback interface {
	OnResult(status EnrollStatus, extraction *faceprint.Extraction)
	OnProgress(pose faceprint.Pose)
	OnHint(hint EnrollStatus)
}

// AuthExtractionCallback receives the callbacks of one auth extraction
// session. Same contract as EnrollExtractionCallback, without pose progress.
type AuthExtractionCallback interface {
	OnResult(status AuthenticateStatus, extraction *faceprint.Extraction)
	OnHint(hint AuthenticateStatus)
}

// MatchResult is the verdict of the sensor's similarity oracle.
// Updated is meaningful only when Success is true; it carries the existing
// template with a refreshed average descriptor when ShouldUpdate is set.
type MatchResult struct {
	Success      bool
	ShouldUpdate bool
	Updated      faceprint.Faceprints
}

// Info describes the connected device.
type Info struct {
	FirmwareVersion string
	SerialNumber    string
}

// PreviewFrame is one frame from the device's preview camera stream.
type PreviewFrame struct {
	Number int
	Image  image.Image
}

// PreviewCallback receives preview frames.
type PreviewCallback interface {
	OnPreviewFrame(frame PreviewFrame)
}

// Session is an established connection to the sensor.
//
// MatchFaceprints is the vendor similarity oracle: the host never inspects
// descriptor elements, it passes whole templates in and trusts the verdict.
type Session interface {
	ExtractFaceprintsForEnroll(ctx context.Context, cb EnrollExtractionCallback) error
	ExtractFaceprintsForAuth(ctx context.Context, cb AuthExtractionCallback) error
	MatchFaceprints(scanned, existing faceprint.Faceprints) MatchResult
	QueryDeviceInfo(ctx context.Context) (Info, error)
	Ping(ctx context.Context) error
	CapturePreview(ctx context.Context, frames int, cb PreviewCallback) error
	Close() error
}
