package auth

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bryanwahyu/scamshield/internal/domain/users"
)

const (
	minLoginPassword    = 6
	minRegisterPassword = 8
)

// Service implements the demo sign-in flow. Passwords are checked for shape
// only; there is no credential store behind it.
type Service struct {
	Sessions users.SessionIssuer
}

func NewService(sessions users.SessionIssuer) *Service {
	return &Service{Sessions: sessions}
}

type LoginCommand struct {
	Email    string
	Password string
}

type RegisterCommand struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

type RegisterResult struct {
	User             users.User     `json:"user"`
	PasswordStrength users.Strength `json:"password_strength"`
}

// Login validasi form → terbitkan token sesi demo
func (s *Service) Login(cmd LoginCommand) (users.Session, error) {
	email, err := checkEmail(cmd.Email)
	if err != nil {
		return users.Session{}, err
	}
	if err := checkPassword(cmd.Password, minLoginPassword); err != nil {
		return users.Session{}, err
	}
	return s.Sessions.Issue(users.User{Email: email, Name: users.NameFromEmail(email)})
}

// Register validates the sign-up form. The caller logs in afterwards.
func (s *Service) Register(cmd RegisterCommand) (RegisterResult, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return RegisterResult{}, users.ErrNameRequired
	}
	email, err := checkEmail(cmd.Email)
	if err != nil {
		return RegisterResult{}, err
	}
	if err := checkPassword(cmd.Password, minRegisterPassword); err != nil {
		return RegisterResult{}, err
	}
	if cmd.Confirm == "" {
		return RegisterResult{}, users.ErrConfirmRequired
	}
	if cmd.Confirm != cmd.Password {
		return RegisterResult{}, users.ErrPasswordMismatch
	}
	return RegisterResult{
		User:             users.User{Email: email, Name: name},
		PasswordStrength: users.PasswordStrength(cmd.Password),
	}, nil
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(token string) (users.User, error) {
	if strings.TrimSpace(token) == "" {
		return users.User{}, users.ErrUnauthenticated
	}
	return s.Sessions.Parse(token)
}

func checkEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", users.ErrEmailRequired
	}
	if !users.ValidEmail(email) {
		return "", users.ErrInvalidEmail
	}
	return email, nil
}

func checkPassword(p string, min int) error {
	if p == "" {
		return users.ErrPasswordRequired
	}
	if utf8.RuneCountInString(p) < min {
		return fmt.Errorf("%w: use at least %d characters", users.ErrPasswordTooShort, min)
	}
	return nil
}
