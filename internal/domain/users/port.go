package users

// SessionIssuer port (interface untuk token sesi)
type SessionIssuer interface {
	Issue(u User) (Session, error)
	Parse(token string) (User, error)
}
