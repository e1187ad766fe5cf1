package settings

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"licensekeeper/internal/domain/preferences"
)

const dateLayout = "2006-01-02"

type Manager struct {
	repo  Repository
	creds CredentialStore
	log   *slog.Logger
}

func NewManager(repo Repository, creds CredentialStore, log *slog.Logger) *Manager {
	return &Manager{
		repo:  repo,
		creds: creds,
		log:   log.With("component", "settings_manager", "credential_store", creds.Name()),
	}
}

func (m *Manager) Load(ctx context.Context) (Settings, error) {
	return m.repo.Load(ctx)
}

func (m *Manager) Save(ctx context.Context, s Settings) error {
	return m.repo.Save(ctx, s)
}

// Set updates a single field addressed by its JSON name, e.g. "filters.subject".
func (m *Manager) Set(ctx context.Context, key, value string) (Settings, error) {
	s, err := m.repo.Load(ctx)
	if err != nil {
		return Settings{}, err
	}

	setter, ok := setters[key]
	if !ok {
		return Settings{}, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := setter(&s, strings.TrimSpace(value)); err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
	}

	if err := m.repo.Save(ctx, s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Keys lists every key accepted by Set.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// An empty email makes every password operation a no-op.
func (m *Manager) SetPassword(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}
	if err := m.creds.Set(ctx, email, password); err != nil {
		m.log.Error("failed to store password", "error", err)
		return fmt.Errorf("store password: %w", err)
	}
	return nil
}

func (m *Manager) GetPassword(ctx context.Context, email string) (string, bool) {
	if email == "" {
		return "", false
	}
	return m.creds.Get(ctx, email)
}

func (m *Manager) ClearPassword(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}
	return m.creds.Clear(ctx, email)
}

func (m *Manager) CredentialStoreName() string {
	return m.creds.Name()
}

var setters = map[string]func(*Settings, string) error{
	"provider": func(s *Settings, v string) error {
		if v == "" {
			return fmt.Errorf("empty provider")
		}
		s.Provider = strings.ToLower(v)
		return nil
	},
	"email":             func(s *Settings, v string) error { s.Email = v; return nil },
	"license_key":       func(s *Settings, v string) error { s.LicenseKey = v; return nil },
	"remember_email":    boolSetter(func(s *Settings) *bool { return &s.RememberEmail }),
	"remember_password": boolSetter(func(s *Settings) *bool { return &s.RememberPassword }),
	"remember_license":  boolSetter(func(s *Settings) *bool { return &s.RememberLicense }),
	"filters.from_email": func(s *Settings, v string) error {
		s.Filters.FromEmail = v
		return nil
	},
	"filters.subject": func(s *Settings, v string) error {
		s.Filters.Subject = v
		return nil
	},
	"filters.date_from": dateSetter(func(s *Settings) *string { return &s.Filters.DateFrom }),
	"filters.date_to":   dateSetter(func(s *Settings) *string { return &s.Filters.DateTo }),
	"filters.file_exts": func(s *Settings, v string) error {
		s.Filters.FileExts = preferences.SplitExtensions(v)
		return nil
	},
}

func boolSetter(field func(*Settings) *bool) func(*Settings, string) error {
	return func(s *Settings, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(s) = b
		return nil
	}
}

func dateSetter(field func(*Settings) *string) func(*Settings, string) error {
	return func(s *Settings, v string) error {
		if v != "" {
			if _, err := time.Parse(dateLayout, v); err != nil {
				return fmt.Errorf("expected YYYY-MM-DD")
			}
		}
		*field(s) = v
		return nil
	}
}
