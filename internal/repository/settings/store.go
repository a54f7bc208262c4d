package settings

import "context"

// Configuration keys owned by this module.
const (
	KeyAccountName = "ACCOUNT_NAME"
	KeyAPIKey      = "API_KEY"
)

// Store is a key-value configuration store. Get returns an empty string for
// an absent key rather than an error; credentials simply read as unset until
// the login flow persists them.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
