package auth

import (
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/internal/store"
	"github.com/dame6k/beatstore/pkg/common"
	"go.uber.org/zap"
)

const (
	DefaultAdminID       = "admin"
	DefaultAdminName     = "Administrador"
	DefaultAdminEmail    = "admin@beats.com"
	DefaultAdminPassword = "admin123"

	MinPasswordLength = 6
)

var (
	ErrMissingField       = errors.New("auth: missing field")
	ErrWeakPassword       = errors.New("auth: password too short")
	ErrDuplicateEmail     = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// View is what the navigation and admin gate render for the current user.
type View struct {
	LoggedIn    bool   `json:"loggedIn"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	IsAdmin     bool   `json:"isAdmin"`
}

// Service owns the user registry and the session of one profile.
type Service struct {
	users   *store.Repository[[]domain.User]
	session *store.Repository[*domain.Session]
	hasher  PasswordHasher
	now     func() time.Time

	// registry serialises read-modify-write cycles on the users key.
	registry sync.Mutex

	mu      sync.RWMutex
	current *domain.Session
	cancel  func()
}

type Option func(*Service)

func WithHasher(h PasswordHasher) Option {
	return func(s *Service) { s.hasher = h }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService binds the registry and session keys of s. origin identifies
// the page that owns this instance.
func NewService(s store.Store, origin string, opts ...Option) *Service {
	svc := &Service{
		users: store.NewRepository(s, store.KeyUsers, origin,
			func() []domain.User { return []domain.User{} }),
		session: store.NewRepository(s, store.KeySession, origin,
			func() *domain.Session { return nil }),
		hasher: NewBcryptHasher(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Init seeds the admin account, loads the session and starts following
// session changes made by other pages.
func (s *Service) Init() {
	if err := s.EnsureDefaultAdmin(); err != nil {
		zap.L().Error("seed admin failed", zap.String("namespace", "auth"), zap.Error(err))
	}
	s.Reload()
	s.cancel = s.session.Subscribe(s.Reload)
}

func (s *Service) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// EnsureDefaultAdmin adds the seed admin unless an account already uses its email.
func (s *Service) EnsureDefaultAdmin() error {
	s.registry.Lock()
	defer s.registry.Unlock()

	users := s.users.Get()
	if findByEmail(users, DefaultAdminEmail) >= 0 {
		return nil
	}
	hashed, err := s.hasher.Hash(DefaultAdminPassword)
	if err != nil {
		return err
	}
	users = append(users, domain.User{
		ID:        DefaultAdminID,
		Name:      DefaultAdminName,
		Email:     DefaultAdminEmail,
		Password:  hashed,
		Role:      domain.RoleAdmin,
		CreatedAt: common.ISOTime(s.now()),
	})
	if err := s.users.Set(users); err != nil {
		return err
	}
	zap.L().Info("initialized default admin account",
		zap.String("namespace", "auth"),
		zap.String("email", DefaultAdminEmail))
	return nil
}

// Login opens a session for the account matching email and password.
// The email is matched case-insensitively.
func (s *Service) Login(email, password string) (*domain.Session, error) {
	email = normaliseEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingField
	}

	s.registry.Lock()
	defer s.registry.Unlock()
	users := s.users.Get()
	idx := findByEmail(users, email)
	if idx < 0 {
		return nil, ErrInvalidCredentials
	}
	user := users[idx]
	match, outdated := s.hasher.Compare(user.Password, password)
	if !match {
		return nil, ErrInvalidCredentials
	}
	if outdated {
		s.upgradePassword(users, idx, password)
	}

	sess := &domain.Session{
		ID:    common.IfEmptyStr(user.ID, user.Email),
		Email: user.Email,
		Role:  common.IfEmptyStr(user.Role, domain.RoleUser),
		Name:  user.Name,
	}
	if err := s.setSession(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) upgradePassword(users []domain.User, idx int, password string) {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		zap.L().Warn("password upgrade skipped", zap.String("namespace", "auth"), zap.Error(err))
		return
	}
	users[idx].Password = hashed
	if err := s.users.Set(users); err != nil {
		zap.L().Warn("password upgrade not saved", zap.String("namespace", "auth"), zap.Error(err))
	}
}

// Register creates a user account and logs it in. The registry is left
// untouched when any check fails.
func (s *Service) Register(name, email, password string) (*domain.Session, error) {
	name = strings.TrimSpace(name)
	email = normaliseEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingField
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	s.registry.Lock()
	defer s.registry.Unlock()
	users := s.users.Get()
	if findByEmail(users, email) >= 0 {
		return nil, ErrDuplicateEmail
	}
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		ID:        common.UUID(),
		Name:      name,
		Email:     email,
		Password:  hashed,
		Role:      domain.RoleUser,
		CreatedAt: common.ISOTime(s.now()),
	}
	if err := s.users.Set(append(users, user)); err != nil {
		return nil, err
	}

	sess := &domain.Session{ID: user.ID, Email: user.Email, Role: user.Role, Name: user.Name}
	if err := s.setSession(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) Logout() error {
	return s.setSession(nil)
}

func (s *Service) setSession(sess *domain.Session) error {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	if sess == nil {
		return s.session.Clear()
	}
	return s.session.Set(sess)
}

// Reload replaces the in-memory session with the stored one.
func (s *Service) Reload() {
	sess := s.session.Get()
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
}

func (s *Service) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

func (s *Service) IsAdmin() bool {
	return s.Current().IsAdmin()
}

func (s *Service) View() View {
	cur := s.Current()
	if cur == nil {
		return View{}
	}
	return View{
		LoggedIn:    true,
		DisplayName: cur.DisplayName(),
		Email:       cur.Email,
		IsAdmin:     cur.IsAdmin(),
	}
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func findByEmail(users []domain.User, email string) int {
	for i, u := range users {
		if u.Email != "" && strings.EqualFold(u.Email, email) {
			return i
		}
	}
	return -1
}
