package faceauth

import (
	"github.com/kozaktomas/face-vault/internal/device"
	"github.com/kozaktomas/face-vault/internal/faceprint"
)

// EnrollObserver receives advisory callbacks during an enroll extraction so
// the UI can guide the user. Both methods may be called zero or more times
// and never affect the outcome of the session.
type EnrollObserver interface {
	// PoseObserved reports a detected pose and, unless done, the next pose
	// the user should present.
	PoseObserved(pose faceprint.Pose, next faceprint.Pose, done bool)
	Hint(hint device.EnrollStatus)
}

// AuthObserver receives advisory hints during an auth extraction.
type AuthObserver interface {
	Hint(hint device.AuthenticateStatus)
}

// enrollCollector bridges one enroll extraction session: it forwards
// advisory callbacks to the observer, feeds the pose tracker owned by the
// service call, and captures the terminal result. Callbacks arriving after
// the terminal result are dropped, per the session contract.
type enrollCollector struct {
	tracker *faceprint.PoseTracker
	obs     EnrollObserver

	terminal   bool
	status     device.EnrollStatus
	extraction *faceprint.Extraction
}

func (c *enrollCollector) OnResult(status device.EnrollStatus, extraction *faceprint.Extraction) {
	if c.terminal {
		return
	}
	c.terminal = true
	c.status = status
	c.extraction = extraction
}

func (c *enrollCollector) OnProgress(pose faceprint.Pose) {
	if c.terminal {
		return
	}
	next, done := c.tracker.Observe(pose)
	if c.obs != nil {
		c.obs.PoseObserved(pose, next, done)
	}
}

func (c *enrollCollector) OnHint(hint device.EnrollStatus) {
	if c.terminal {
		return
	}
	if c.obs != nil {
		c.obs.Hint(hint)
	}
}

// authCollector is the auth-session counterpart of enrollCollector.
type authCollector struct {
	obs AuthObserver

	terminal   bool
	status     device.AuthenticateStatus
	extraction *faceprint.Extraction
}

func (c *authCollector) OnResult(status device.AuthenticateStatus, extraction *faceprint.Extraction) {
	if c.terminal {
		return
	}
	c.terminal = true
	c.status = status
	c.extraction = extraction
}

func (c *authCollector) OnHint(hint device.AuthenticateStatus) {
	if c.terminal {
		return
	}
	if c.obs != nil {
		c.obs.Hint(hint)
	}
}
