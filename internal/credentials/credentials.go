// Package credentials decides where database credentials come from: a
// generated secret carrying inline values, or a reference to a secret that
// already exists in the cluster. Consumers never see the difference — they
// bind to one resolved secret name either way.
package credentials

import "github.com/imamik/dbforge/internal/config"

// Secret data keys. An externally referenced secret must carry the same keys
// a generated one would.
const (
	KeyUsername = "username"
	KeyPassword = "password"
	KeyDatabase = "database"
)

// Source is the resolved credential source.
type Source struct {
	// External is true when the caller referenced an existing secret.
	External bool

	// Ref is the external secret name; set only when External.
	Ref string

	// Inline values; set only when not External.
	Username string
	Password string
	Database string
}

// Resolve picks the credential source. An external reference wins
// unconditionally: inline values supplied alongside it are ignored, matching
// the documented "leave credentials empty when using an existing secret"
// usage. Presence of at least one source is the validator's concern, not
// this function's.
func Resolve(c config.CredentialValues) Source {
	if c.ExistingSecret != "" {
		return Source{External: true, Ref: c.ExistingSecret}
	}
	return Source{
		Username: c.Username,
		Password: c.Password,
		Database: c.Database,
	}
}

// SecretName returns the name every credential consumer binds to: the
// external reference when one was supplied, otherwise the derived default.
func (s Source) SecretName(derived string) string {
	if s.External {
		return s.Ref
	}
	return derived
}
