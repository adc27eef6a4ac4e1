package simplenote

// Session is the account identity and token obtained from a successful login.
type Session struct {
	Email string
	Token string
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}
