package device

// EnrollStatus is a status code delivered by the sensor during an enroll
// extraction session, either as a mid-session hint or as the terminal result.
type EnrollStatus int

const (
	EnrollSuccess EnrollStatus = iota
	EnrollNoFaceDetected
	EnrollFaceDetected
	EnrollLedFlowSuccess
	EnrollFaceTiltTooHigh
	EnrollFaceTiltTooLow
	EnrollFaceTooFarLeft
	EnrollFaceTooFarRight
	EnrollFaceNotFrontal
	EnrollCameraStarted
	EnrollCameraStopped
	EnrollMultipleFacesDetected
	EnrollFailure
	EnrollDeviceError
)

var enrollStatusNames = map[EnrollStatus]string{
	EnrollSuccess:               "Success",
	EnrollNoFaceDetected:        "NoFaceDetected",
	EnrollFaceDetected:          "FaceDetected",
	EnrollLedFlowSuccess:        "LedFlowSuccess",
	EnrollFaceTiltTooHigh:       "FaceTiltTooHigh",
	EnrollFaceTiltTooLow:        "FaceTiltTooLow",
	EnrollFaceTooFarLeft:        "FaceTooFarLeft",
	EnrollFaceTooFarRight:       "FaceTooFarRight",
	EnrollFaceNotFrontal:        "FaceNotFrontal",
	EnrollCameraStarted:         "CameraStarted",
	EnrollCameraStopped:         "CameraStopped",
	EnrollMultipleFacesDetected: "MultipleFacesDetected",
	EnrollFailure:               "Failure",
	EnrollDeviceError:           "DeviceError",
}

func (s EnrollStatus) String() string {
	if name, ok := enrollStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// AuthenticateStatus is the auth-session counterpart of EnrollStatus.
type AuthenticateStatus int

const (
	AuthSuccess AuthenticateStatus = iota
	AuthNoFaceDetected
	AuthFaceDetected
	AuthLedFlowSuccess
	AuthCameraStarted
	AuthCameraStopped
	AuthForbidden
	AuthFailure
	AuthDeviceError
)

var authStatusNames = map[AuthenticateStatus]string{
	AuthSuccess:        "Success",
	AuthNoFaceDetected: "NoFaceDetected",
	AuthFaceDetected:   "FaceDetected",
	AuthLedFlowSuccess: "LedFlowSuccess",
	AuthCameraStarted:  "CameraStarted",
	AuthCameraStopped:  "CameraStopped",
	AuthForbidden:      "Forbidden",
	AuthFailure:        "Failure",
	AuthDeviceError:    "DeviceError",
}

func (s AuthenticateStatus) String() string {
	if name, ok := authStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}
