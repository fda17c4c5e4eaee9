package llm

// BuildTestDocumentJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Deliberately permissive about extra keys: recovery should accept
// anything that is structurally a test-item sequence, while rejecting payloads
// where testItems is missing, a single object, or an array of non-objects.
func BuildTestDocumentJSONSchema() map[string]any {
	itemProps := map[string]any{}
	for _, k := range []string{
		"number", "category", "subCategory", "smallCategory",
		"content", "result",
		"jiraResult", "adResult", "iosResult", "pcResult",
	} {
		itemProps[k] = map[string]any{"type": "string"}
	}

	return map[string]any{
		"type":     "object",
		"required": []string{"testItems"},
		"properties": map[string]any{
			"testItems": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":       "object",
					"properties": itemProps,
				},
			},
		},
	}
}
