// Package faceprint defines the host-side faceprint template model.
//
// A faceprint holds two descriptor vectors for one enrolled user: the
// original vector captured at enrollment and a running-average vector that
// the sensor's match oracle may refresh over successive authentications to
// track slow biometric drift. Descriptors are opaque to the host - they are
// produced and compared on the sensor, the host only stores and copies them.
package faceprint

// DescriptorLength is the number of elements in a descriptor vector.
// Fixed by the sensor firmware, must not change between host and device.
const DescriptorLength = 256

// Descriptor is a fixed-length descriptor vector. It is a value type:
// assignment copies the whole vector and == compares it element-wise,
// which keeps the exact byte layout without manual memory operations.
type Descriptor [DescriptorLength]int16

// FeaturesType tags the descriptor encoding / extraction algorithm version.
type FeaturesType int

const (
	FeaturesTypeW10 FeaturesType = iota
	FeaturesTypeRGB
)

// Faceprints is one user's template record.
//
// OrigDescriptor is written exactly once, when the template is created from
// an enroll extraction. AvgDescriptor starts as a bit-for-bit copy of
// OrigDescriptor and is rewritten only when the match oracle approves an
// update during authentication.
type Faceprints struct {
	Version             int
	NumberOfDescriptors int
	FeaturesType        FeaturesType
	OrigDescriptor      Descriptor
	AvgDescriptor       Descriptor
}

// Extraction is the payload of a successful extraction session: the
// metadata of the sensor's template format plus a single fresh descriptor.
type Extraction struct {
	Version             int
	NumberOfDescriptors int
	FeaturesType        FeaturesType
	Descriptor          Descriptor
}

// NewEnrolled builds a template from an enroll extraction. The single
// extracted vector seeds both the original and the average descriptor;
// the sensor reports only one vector at enrollment time.
func NewEnrolled(e Extraction) Faceprints {
	return Faceprints{
		Version:             e.Version,
		NumberOfDescriptors: e.NumberOfDescriptors,
		FeaturesType:        e.FeaturesType,
		OrigDescriptor:      e.Descriptor,
		AvgDescriptor:       e.Descriptor,
	}
}

// Scanned builds the transient faceprint compared against stored templates
// during authentication. Both vectors carry the fresh scan; the oracle
// decides which one it reads.
func Scanned(e Extraction) Faceprints {
	return Faceprints{
		Version:             e.Version,
		NumberOfDescriptors: e.NumberOfDescriptors,
		FeaturesType:        e.FeaturesType,
		OrigDescriptor:      e.Descriptor,
		AvgDescriptor:       e.Descriptor,
	}
}
