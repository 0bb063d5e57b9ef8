package faceprint

import "testing"

func TestPoseTrackerCanonicalOrder(t *testing.T) {
	tracker := NewPoseTracker()

	next, done := tracker.Next()
	if done || next != PoseCenter {
		t.Errorf("fresh tracker: next = %v, done = %v, want Center", next, done)
	}

	next, done = tracker.Observe(PoseCenter)
	if done || next != PoseLeft {
		t.Errorf("after Center: next = %v, done = %v, want Left", next, done)
	}

	next, done = tracker.Observe(PoseLeft)
	if done || next != PoseRight {
		t.Errorf("after Left: next = %v, done = %v, want Right", next, done)
	}

	_, done = tracker.Observe(PoseRight)
	if !done {
		t.Error("all poses observed, tracker should be done")
	}
}

func TestPoseTrackerObserveIdempotent(t *testing.T) {
	tracker := NewPoseTracker()

	tracker.Observe(PoseLeft)
	before := tracker.Remaining()
	tracker.Observe(PoseLeft)
	tracker.Observe(PoseLeft)

	if got := tracker.Remaining(); got != before {
		t.Errorf("re-observing a satisfied pose changed remaining: %d -> %d", before, got)
	}
}

func TestPoseTrackerAnyOrder(t *testing.T) {
	tests := []struct {
		name  string
		order []Pose
	}{
		{"right first", []Pose{PoseRight, PoseLeft, PoseCenter}},
		{"left first", []Pose{PoseLeft, PoseCenter, PoseRight}},
		{"with repeats", []Pose{PoseCenter, PoseCenter, PoseRight, PoseLeft}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tracker := NewPoseTracker()
			prev := tracker.Remaining()
			for _, p := range tc.order {
				tracker.Observe(p)
				if tracker.Remaining() > prev {
					t.Fatal("required set grew")
				}
				prev = tracker.Remaining()
			}
			if _, done := tracker.Next(); !done {
				t.Errorf("order %v should satisfy all poses, %d remaining", tc.order, tracker.Remaining())
			}
		})
	}
}

func TestPoseTrackerNotDoneUntilAllSeen(t *testing.T) {
	tracker := NewPoseTracker()
	tracker.Observe(PoseCenter)
	tracker.Observe(PoseRight)

	if _, done := tracker.Next(); done {
		t.Error("tracker done with Left never observed")
	}
}
