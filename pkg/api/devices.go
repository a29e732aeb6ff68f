package api

// EnrollRequest registers a device against the configured enrollment key
// and trades it for a bearer token used on record submissions.
type EnrollRequest struct {
	DeviceID      string `json:"device_id"`
	EnrollmentKey string `json:"enrollment_key"`
}

// TokenResponse carries the issued device token.
type TokenResponse struct {
	AccessToken string `json:"access_token"` // JWT device token
	ExpiresIn   int64  `json:"expires_in"`   // lifetime in seconds
}
