package models

// VisitorTokenResponse is returned when a new visitor identity is issued
type VisitorTokenResponse struct {
	Token     string `json:"token"`
	VisitorID string `json:"visitorId"`
}
