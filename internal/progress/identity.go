package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/flashbox/internal/repository"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidEmail indicates a learner identity that is not an email address.
var ErrInvalidEmail = errors.New("invalid email")

var validate = validator.New()

type studentRecord struct {
	Email string `json:"email" validate:"required,email"`
}

// ValidateEmail trims and checks a learner email.
func ValidateEmail(email string) (string, error) {
	rec := studentRecord{Email: strings.TrimSpace(email)}
	if err := validate.Struct(rec); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, rec.Email)
	}
	return rec.Email, nil
}

// Identity holds the learner's email, entered once and reused.
type Identity struct {
	kv     repository.KVRepo
	key    string
	logger *slog.Logger
	email  string
}

// NewIdentity creates an identity persisted under key.
func NewIdentity(kv repository.KVRepo, key string, logger *slog.Logger) *Identity {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Identity{kv: kv, key: key, logger: logger}
}

// Load reads the stored identity; anything unreadable leaves it empty.
func (i *Identity) Load(ctx context.Context) {
	i.email = ""
	if i.kv == nil {
		return
	}
	raw, err := i.kv.Get(ctx, i.key)
	if err != nil {
		return
	}
	var rec studentRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		i.logger.DebugContext(ctx, "identity_corrupt", "key", i.key, "error", err)
		return
	}
	i.email = rec.Email
}

// Email returns the learner email, or "" if none was captured.
func (i *Identity) Email() string {
	return i.email
}

// Known reports whether an identity has been captured.
func (i *Identity) Known() bool {
	return i.email != ""
}

// Save validates and stores the email. Only validation errors are returned;
// a failed write keeps the email for this process.
func (i *Identity) Save(ctx context.Context, email string) error {
	clean, err := ValidateEmail(email)
	if err != nil {
		return err
	}
	i.email = clean
	if i.kv == nil {
		return nil
	}
	data, err := json.Marshal(studentRecord{Email: clean})
	if err != nil {
		return fmt.Errorf("encoding identity: %w", err)
	}
	if err := i.kv.Set(ctx, i.key, string(data)); err != nil {
		i.logger.DebugContext(ctx, "identity_save_failed", "key", i.key, "error", err)
	}
	return nil
}
