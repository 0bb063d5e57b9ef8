package faceprint

// Pose is a head orientation the sensor asks for during enrollment.
type Pose int

const (
	PoseCenter Pose = iota
	PoseLeft
	PoseRight
)

func (p Pose) String() string {
	switch p {
	case PoseCenter:
		return "Center"
	case PoseLeft:
		return "Left"
	case PoseRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// canonicalPoseOrder fixes which pose is suggested next when several are
// still missing.
var canonicalPoseOrder = []Pose{PoseCenter, PoseLeft, PoseRight}

// PoseTracker tracks which poses the sensor has not yet seen during one
// enrollment session. It is purely advisory: it never gates the session,
// it only tells the UI where the user should look next. Enrollment
// completion is decided by the session's terminal result alone.
type PoseTracker struct {
	required map[Pose]struct{}
}

// NewPoseTracker starts with all three poses required.
func NewPoseTracker() *PoseTracker {
	t := &PoseTracker{required: make(map[Pose]struct{}, len(canonicalPoseOrder))}
	for _, p := range canonicalPoseOrder {
		t.required[p] = struct{}{}
	}
	return t
}

// Observe marks a pose as seen. Observing an already-satisfied pose is a
// no-op. It returns the next required pose in canonical order and whether
// any pose is still missing; when done is true next is meaningless.
func (t *PoseTracker) Observe(pose Pose) (next Pose, done bool) {
	delete(t.required, pose)
	return t.Next()
}

// Next returns the next required pose in canonical order, or done=true
// when every pose has been observed.
func (t *PoseTracker) Next() (next Pose, done bool) {
	for _, p := range canonicalPoseOrder {
		if _, ok := t.required[p]; ok {
			return p, false
		}
	}
	return 0, true
}

// Remaining returns how many poses are still required.
func (t *PoseTracker) Remaining() int {
	return len(t.required)
}
