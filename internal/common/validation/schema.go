// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"ovse-portal/internal/common/errors"
	"ovse-portal/pkg/registry"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaValidator checks inbound operation payloads against the schemas in
// the operation registry before they reach the workflow engine.
type SchemaValidator struct {
	reg *registry.OperationRegistry
}

func NewSchemaValidator(reg *registry.OperationRegistry) *SchemaValidator {
	return &SchemaValidator{reg: reg}
}

// ValidateOperation validates a raw JSON payload for the named operation.
// Operations without a registered schema are accepted as-is.
func (v *SchemaValidator) ValidateOperation(operationID string, payload []byte) error {
	op, ok := v.reg.Find(operationID)
	if !ok || len(op.InputSchema) == 0 {
		return nil
	}

	schemaLoader := gojsonschema.NewGoLoader(op.InputSchema)
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.NewSchemaValidationFailedError(operationID, fmt.Sprintf("schema error: %v", err))
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, e := range result.Errors() {
			errs[i] = e.String()
		}
		return errors.NewSchemaValidationFailedError(operationID, strings.Join(errs, "; "))
	}

	return nil
}
