// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ovse-portal/internal/common/errors"
	"ovse-portal/pkg/registry"
)

func createTestRegistry() *registry.OperationRegistry {
	return &registry.OperationRegistry{
		Version: "test",
		Operations: []registry.Operation{
			{
				ID: "process-action",
				InputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"action": map[string]interface{}{
							"type": "string",
							"enum": []interface{}{"APPROVE", "REJECT", "CORRECTION"},
						},
						"comments": map[string]interface{}{"type": "string"},
						"isFtr":    map[string]interface{}{"type": "boolean"},
					},
					"required":             []interface{}{"action"},
					"additionalProperties": false,
				},
			},
			{ID: "no-schema"},
		},
	}
}

func TestValidateOperation(t *testing.T) {
	v := NewSchemaValidator(createTestRegistry())

	tests := []struct {
		name      string
		operation string
		payload   string
		wantErr   bool
	}{
		{
			name:      "valid approve payload",
			operation: "process-action",
			payload:   `{"action":"APPROVE","comments":"ok","isFtr":true}`,
		},
		{
			name:      "action outside the enum",
			operation: "process-action",
			payload:   `{"action":"ESCALATE"}`,
			wantErr:   true,
		},
		{
			name:      "missing required action",
			operation: "process-action",
			payload:   `{"comments":"hello"}`,
			wantErr:   true,
		},
		{
			name:      "unexpected extra field",
			operation: "process-action",
			payload:   `{"action":"APPROVE","who":"me"}`,
			wantErr:   true,
		},
		{
			name:      "malformed JSON",
			operation: "process-action",
			payload:   `{"action":`,
			wantErr:   true,
		},
		{
			name:      "operation without schema accepts anything",
			operation: "no-schema",
			payload:   `{"whatever":42}`,
		},
		{
			name:      "unregistered operation accepts anything",
			operation: "not-in-registry",
			payload:   `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateOperation(tt.operation, []byte(tt.payload))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeSchemaValidationFailed, errors.CodeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
