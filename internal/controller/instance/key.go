package instance

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	corev1 "k8s.io/api/core/v1"

	"github.com/firestoned/bindy/internal/resourcebuilder"
)

const (
	tsigKeyBytes = 32 // 256 bits
	saTokenBytes = 32
)

// hasKeyMaterial reports whether secret already carries a generated TSIG
// key, so the caller can decide whether generation is needed at all (spec
// §3 invariant: generated once, preserved verbatim thereafter).
func hasKeyMaterial(secret *corev1.Secret) bool {
	return len(secret.Data[resourcebuilder.SecretKeyTSIGSecret]) > 0
}

// populateKeyMaterial fills secret.Data with a freshly generated TSIG key
// and admin bearer token. It must never be called on a secret that already
// has key material; callers check hasKeyMaterial first.
func populateKeyMaterial(secret *corev1.Secret, instanceName string) error {
	tsigSecret, err := randomBase64(tsigKeyBytes)
	if err != nil {
		return fmt.Errorf("generating TSIG key: %w", err)
	}
	saToken, err := randomBase64(saTokenBytes)
	if err != nil {
		return fmt.Errorf("generating sidecar admin token: %w", err)
	}

	if secret.Data == nil {
		secret.Data = map[string][]byte{}
	}
	secret.Data[resourcebuilder.SecretKeyTSIGName] = []byte(tsigKeyName(instanceName))
	secret.Data[resourcebuilder.SecretKeyTSIGSecret] = []byte(tsigSecret)
	secret.Data[resourcebuilder.SecretKeyAlgorithm] = []byte(resourcebuilder.TSIGAlgorithm)
	secret.Data[resourcebuilder.SecretKeySAToken] = []byte(saToken)
	return nil
}

func tsigKeyName(instanceName string) string {
	return instanceName + "-key."
}

func randomBase64(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
