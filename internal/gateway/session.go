package gateway

// Session is the explicit client-held session state: the token and, for
// students, the registration number. It replaces ambient storage with
// an object owning an init (login) and teardown (logout) lifecycle.
// Navigation handling is single-threaded, so no locking is needed.
type Session struct {
	token string
	regNo string
}

// NewSession returns an empty, unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// Init installs freshly issued session state. Called once per login.
func (s *Session) Init(token, regNo string) {
	s.token = token
	s.regNo = regNo
}

// Clear tears the session down. Token and registration number are
// cleared together; there is no partial logout.
func (s *Session) Clear() {
	s.token = ""
	s.regNo = ""
}

// Token returns the held session token, empty when logged out.
func (s *Session) Token() string { return s.token }

// RegNo returns the held registration number, empty for non-students.
func (s *Session) RegNo() string { return s.regNo }

// Active reports whether a token is currently held. It says nothing
// about validity; Guard.Authorize decides that per navigation.
func (s *Session) Active() bool { return s.token != "" }
