package domain

// Session is the client-held proof of authentication: the current user, an
// opaque signed token, and the derived authenticated flag. The zero value is a
// valid anonymous session.
type Session struct {
	User            *User  `json:"user"`
	Token           string `json:"token,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Anonymous returns the unauthenticated session.
func Anonymous() Session {
	return Session{}
}

// Role returns the session's role, or the empty role when anonymous.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
