// Package ai turns a customer's free-text inventory list into suggested
// manifest items. Suggestions are advisory: the admin reviews them before
// anything is priced, and a provider failure never blocks quoting.
package ai

import "context"

// ManifestSuggester is the provider contract. Gemini is the only
// implementation today; the interface keeps the provider swappable.
type ManifestSuggester interface {
	SuggestManifest(ctx context.Context, inventoryText string) ([]Suggestion, error)
}
