package compose

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/dbforge/internal/credentials"
	"github.com/imamik/dbforge/internal/naming"
)

// secret materializes inline credentials. It is only ever built for the
// inline branch; with an external reference the consumers bind to the
// referenced name and no secret document exists in the output.
func (c *composer) secret() *corev1.Secret {
	return &corev1.Secret{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   c.names.Secret,
			Labels: c.names.Labels(naming.ComponentDatabase),
		},
		Type: corev1.SecretTypeOpaque,
		StringData: map[string]string{
			credentials.KeyUsername: c.source.Username,
			credentials.KeyPassword: c.source.Password,
			credentials.KeyDatabase: c.source.Database,
		},
	}
}
