// internal/workflow/credentials.go
package workflow

import (
	"fmt"

	"github.com/google/uuid"
)

// CredentialIssuer produces the client id and certificate handed over at
// Level-3 approval. Injected so a real deployment can swap in actual PKI
// issuance without touching transition logic.
type CredentialIssuer interface {
	NewClientID() string
	IssueCertificate(publicKey string) string
}

// MockIssuer is the demo issuer: random UUID client ids and a placeholder
// x509 block derived from the declared public key.
type MockIssuer struct{}

func NewMockIssuer() *MockIssuer {
	return &MockIssuer{}
}

func (MockIssuer) NewClientID() string {
	return uuid.NewString()
}

func (MockIssuer) IssueCertificate(publicKey string) string {
	if publicKey == "" {
		return "MOCK_CERT_NO_PUB_KEY"
	}
	subject := publicKey
	if len(subject) > 15 {
		subject = subject[:15]
	}
	return fmt.Sprintf("-----BEGIN CERTIFICATE-----\nMOCK_X509_CERT_GENERATED_VIA_OVSE_PRIVATE_KEY\nSUBJECT_PUB_KEY:%s...\n-----END CERTIFICATE-----", subject)
}
