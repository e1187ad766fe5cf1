package preferences

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"licensekeeper/internal/domain/license"
	"licensekeeper/internal/domain/mirror"
)

// StringCipher encrypts secrets before they leave the machine.
type StringCipher interface {
	EncryptString(value string) (string, error)
	DecryptString(token string) (string, error)
}

type remote interface {
	Lookup(ctx context.Context, key string) (*mirror.Entry, error)
	SavePreferences(ctx context.Context, key string, prefs mirror.Preferences) error
}

// View is the decrypted form handed to the caller.
type View struct {
	Email      string
	Password   string
	Extensions []string
}

type Service struct {
	remote remote
	cipher StringCipher
	log    *slog.Logger
}

func NewService(remote remote, cipher StringCipher, log *slog.Logger) *Service {
	return &Service{
		remote: remote,
		cipher: cipher,
		log:    log.With("component", "preferences_service"),
	}
}

// Save overwrites the account preferences. The password is sent only as
// ciphertext; an empty password clears the stored one.
func (s *Service) Save(ctx context.Context, key string, view View) error {
	key = license.NormalizeKey(key)
	if key == "" {
		return fmt.Errorf("%w: license key is required", mirror.ErrInvalidInput)
	}

	var enc string
	if view.Password != "" {
		var err error
		enc, err = s.cipher.EncryptString(view.Password)
		if err != nil {
			return fmt.Errorf("encrypt password: %w", err)
		}
	}

	prefs := mirror.Preferences{
		Email:       strings.TrimSpace(view.Email),
		PasswordEnc: enc,
		Extensions:  JoinExtensions(view.Extensions),
	}
	if err := s.remote.SavePreferences(ctx, key, prefs); err != nil {
		s.log.Warn("failed to save preferences", "key", license.MaskKey(key), "error", err)
		return err
	}
	return nil
}

// Load yields an empty password when the stored ciphertext cannot be read.
func (s *Service) Load(ctx context.Context, key string) (View, error) {
	e, err := s.remote.Lookup(ctx, license.NormalizeKey(key))
	if err != nil {
		return View{}, err
	}
	return s.FromEntry(e), nil
}

func (s *Service) FromEntry(e *mirror.Entry) View {
	return View{
		Email:      e.SavedEmail,
		Password:   s.decrypt(e.PasswordEnc),
		Extensions: SplitExtensions(e.SavedExtensions),
	}
}

func (s *Service) decrypt(token string) string {
	if token == "" {
		return ""
	}
	plain, err := s.cipher.DecryptString(token)
	if err != nil {
		s.log.Warn("stored password cannot be decrypted", "error", err)
		return ""
	}
	return plain
}

// NormalizeExtensions trims, lower-cases, adds a leading dot and dedupes.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	seen := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || e == "." {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

func JoinExtensions(exts []string) string {
	return strings.Join(NormalizeExtensions(exts), ",")
}

func SplitExtensions(s string) []string {
	return NormalizeExtensions(strings.Split(s, ","))
}
