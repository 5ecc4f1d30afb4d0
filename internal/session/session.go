package session

import (
	"net/http"

	"github.com/gorilla/sessions"

	"hela9_backend/internal/config"
)

const (
	keyUserID       = "user_id"
	keyRole         = "role"
	keyResetEmail   = "reset_email"
	keyResetAllowed = "reset_allowed"
	keyLanguage     = "language"
)

// Data - то, что хранится в cookie сессии.
type Data struct {
	UserID       string
	Role         string
	ResetEmail   string
	ResetAllowed bool
	Language     string
}

func (d Data) Authenticated() bool { return d.UserID != "" }

// Manager - cookie-сессии поверх gorilla/sessions.
type Manager struct {
	store *sessions.CookieStore
	name  string
}

func NewManager(cfg config.SessionConfig) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	name := cfg.CookieName
	if name == "" {
		name = "hela9_session"
	}
	return &Manager{store: store, name: name}
}

// get никогда не возвращает nil: битая или чужая cookie дает пустую сессию.
func (m *Manager) get(r *http.Request) *sessions.Session {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		s = sessions.NewSession(m.store, m.name)
		opts := *m.store.Options
		s.Options = &opts
		s.IsNew = true
	}
	return s
}

// Load читает текущую сессию.
func (m *Manager) Load(r *http.Request) Data {
	s := m.get(r)
	return Data{
		UserID:       stringValue(s, keyUserID),
		Role:         stringValue(s, keyRole),
		ResetEmail:   stringValue(s, keyResetEmail),
		ResetAllowed: boolValue(s, keyResetAllowed),
		Language:     stringValue(s, keyLanguage),
	}
}

// Login привязывает пользователя к сессии. Язык сохраняется.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID, role string) error {
	s := m.get(r)
	s.Values[keyUserID] = userID
	s.Values[keyRole] = role
	delete(s.Values, keyResetEmail)
	delete(s.Values, keyResetAllowed)
	return s.Save(r, w)
}

// Logout очищает все, кроме выбранного языка.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	lang := stringValue(s, keyLanguage)
	for k := range s.Values {
		delete(s.Values, k)
	}
	if lang != "" {
		s.Values[keyLanguage] = lang
	}
	return s.Save(r, w)
}

func (m *Manager) StartReset(w http.ResponseWriter, r *http.Request, email string) error {
	s := m.get(r)
	s.Values[keyResetEmail] = email
	delete(s.Values, keyResetAllowed)
	return s.Save(r, w)
}

func (m *Manager) AllowReset(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	s.Values[keyResetAllowed] = true
	return s.Save(r, w)
}

func (m *Manager) ClearReset(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	delete(s.Values, keyResetEmail)
	delete(s.Values, keyResetAllowed)
	return s.Save(r, w)
}

func (m *Manager) SetLanguage(w http.ResponseWriter, r *http.Request, lang string) error {
	s := m.get(r)
	s.Values[keyLanguage] = lang
	return s.Save(r, w)
}

func stringValue(s *sessions.Session, key string) string {
	v, _ := s.Values[key].(string)
	return v
}

func boolValue(s *sessions.Session, key string) bool {
	v, _ := s.Values[key].(bool)
	return v
}
