// ABOUTME: Recommendation result structures returned by the query engine
// ABOUTME: Used by the CLI, MCP tools, and the relevance benchmark
package models

// Recommendation is one ranked result for a query talk
type Recommendation struct {
	Rank        int     `json:"rank"`
	Key         string  `json:"key"`
	DisplayName string  `json:"display_name"`
	Position    int     `json:"position"`
	Score       float64 `json:"score"`
}

// Keys extracts the canonical keys from a ranked result list
func Keys(recs []Recommendation) []string {
	keys := make([]string, len(recs))
	for i, rec := range recs {
		keys[i] = rec.Key
	}
	return keys
}
