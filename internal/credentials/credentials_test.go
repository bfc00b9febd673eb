package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/dbforge/internal/config"
)

func TestResolve_Inline(t *testing.T) {
	src := Resolve(config.CredentialValues{
		Username: "app",
		Password: "s3cret",
		Database: "orders",
	})

	assert.False(t, src.External)
	assert.Equal(t, "app", src.Username)
	assert.Equal(t, "s3cret", src.Password)
	assert.Equal(t, "orders", src.Database)
}

func TestResolve_ExternalReferenceWinsUnconditionally(t *testing.T) {
	// Inline values alongside an external reference are ignored, not an
	// error: this mirrors "leave credentials empty when using an existing
	// secret" usage.
	src := Resolve(config.CredentialValues{
		Password:       "ignored",
		ExistingSecret: "prod-db-creds",
	})

	assert.True(t, src.External)
	assert.Equal(t, "prod-db-creds", src.Ref)
	assert.Empty(t, src.Password)
}

func TestResolve_NeitherIsNotAnErrorHere(t *testing.T) {
	// Presence is the validator's concern; resolution stays total.
	src := Resolve(config.CredentialValues{})
	assert.False(t, src.External)
	assert.Empty(t, src.Password)
}

func TestSecretName(t *testing.T) {
	inline := Resolve(config.CredentialValues{Password: "p"})
	assert.Equal(t, "orders-db-credentials", inline.SecretName("orders-db-credentials"))

	external := Resolve(config.CredentialValues{ExistingSecret: "prod-db-creds"})
	assert.Equal(t, "prod-db-creds", external.SecretName("orders-db-credentials"))
}
