package llm

// BuildCandidateJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass this to the extraction service as part of the system
// instruction and also use it locally to validate the response.
func BuildCandidateJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"full_name": nullableString(),
			"email":     nullableString(),
			"phone":     nullableString(),
			"location":  nullableString(),
			"summary":   nullableString(),
			"skills": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"experience": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"title":       nullableString(),
						"company":     nullableString(),
						"duration":    nullableString(),
						"description": nullableString(),
					},
				},
			},
			"education": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]any{
						"degree":      nullableString(),
						"institution": nullableString(),
						"year":        nullableString(),
					},
				},
			},
		},
		// every key must be present; null / [] are the "not found" markers
		"required": []string{
			"full_name", "email", "phone", "location",
			"summary", "skills", "experience", "education",
		},
	}
}

func nullableString() map[string]any {
	return map[string]any{"type": []string{"string", "null"}}
}
