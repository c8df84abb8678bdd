package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hireai/resume-intake/internal/common"
)

var (
	candidateSchemaOnce sync.Once
	candidateSchema     *jsonschema.Schema
)

// compiledCandidateSchema compiles the fixed candidate schema on first use.
// The schema is a package constant in all but syntax, so a compile failure
// is a programming error.
func compiledCandidateSchema() *jsonschema.Schema {
	candidateSchemaOnce.Do(func() {
		b, err := json.Marshal(BuildCandidateJSONSchema())
		if err != nil {
			panic(fmt.Sprintf("marshal candidate schema: %v", err))
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("candidate.json", bytes.NewReader(b)); err != nil {
			panic(fmt.Sprintf("add candidate schema: %v", err))
		}
		candidateSchema, err = compiler.Compile("candidate.json")
		if err != nil {
			panic(fmt.Sprintf("compile candidate schema: %v", err))
		}
	})
	return candidateSchema
}

// ValidateCandidateJSON checks that data conforms to the candidate field
// schema. Failures come back as SCHEMA_PARSE_ERROR so callers can route
// them to the fallback path without re-wrapping.
func ValidateCandidateJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return common.NewAppError(common.CodeSchemaParse, "candidate document is not valid JSON", err)
	}
	if err := compiledCandidateSchema().Validate(v); err != nil {
		return common.NewAppError(common.CodeSchemaParse, "candidate document does not match schema", err)
	}
	return nil
}
