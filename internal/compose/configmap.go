package compose

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/dbforge/internal/naming"
)

// parametersFile is the config file name inside the instance ConfigMap.
const parametersFile = "postgresql.conf"

// configMap renders the non-secret engine parameters. Emitted only when at
// least one parameter is set.
func (c *composer) configMap() *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   c.names.ConfigMap,
			Labels: c.names.Labels(naming.ComponentDatabase),
		},
		Data: map[string]string{
			parametersFile: renderParameters(c.res.Parameters),
		},
	}
}

// renderParameters serializes parameters in sorted key order so the rendered
// file, and the checksum derived from it, are deterministic.
func renderParameters(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s = %s\n", k, params[k])
	}
	return b.String()
}

func parametersChecksum(params map[string]string) string {
	sum := sha256.Sum256([]byte(renderParameters(params)))
	return fmt.Sprintf("%x", sum)
}
