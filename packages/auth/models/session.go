package models

type SessionStatus string

const (
	StatusSignedOut SessionStatus = "signed_out"
	StatusSignedIn  SessionStatus = "signed_in"
	StatusLoading   SessionStatus = "loading"
)

// Session is the explicit auth state handed to whatever needs it.
type Session struct {
	User   *User          `json:"user"`
	Status SessionStatus  `json:"status"`
	Tokens *TokenResponse `json:"tokens,omitempty"`
}

func SignedOut() *Session {
	return &Session{Status: StatusSignedOut}
}

func (s *Session) SignedIn() bool {
	return s != nil && s.Status == StatusSignedIn && s.User != nil
}
