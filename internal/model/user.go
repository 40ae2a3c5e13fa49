package model

// User is the external user-management collaborator's view of an account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Caller is the identity threaded explicitly into every service call.
type Caller struct {
	UserID int64
	Admin  bool
}
