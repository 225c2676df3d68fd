package entities

import "errors"

// Courier holds the delivery-man specific part of a profile.
type Courier struct {
	ID          int64
	City        string
	VehicleType string
	Active      bool
	BaseFee     float64
}

type User struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Image   string
	Role    string
	Courier Courier
}

// Session pairs the bearer token with the profile it authenticates.
type Session struct {
	Token string
	User  User
}

var ErrNotAuthenticated = errors.New("not authenticated")
