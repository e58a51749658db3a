package usecases

import (
	"encoding/json"
	"fmt"

	"github.com/iainlane/appstream-generator/internal/core/entities"
)

// storedHint is the wire shape one raw Hint takes once persisted: its
// subject has already been resolved to a component id, since a Component
// pointer cannot survive serialization across the store boundary.
type storedHint struct {
	Tag       string            `json:"tag"`
	Variables map[string]string `json:"variables"`
}

// storedHints groups a package's hints by the component id they were
// raised against.
type storedHints map[string][]storedHint

// EncodeHints resolves each hint's subject to a component id and
// serializes the result for persistence under a package's pkid.
func EncodeHints(hints []entities.Hint) ([]byte, error) {
	grouped := make(storedHints)
	for _, h := range hints {
		id := h.Subject.ResolvedID()
		grouped[id] = append(grouped[id], storedHint{Tag: h.Tag, Variables: h.Variables})
	}
	blob, err := json.Marshal(grouped)
	if err != nil {
		return nil, fmt.Errorf("marshal hints: %w", err)
	}
	return blob, nil
}

// decodeHints parses a previously persisted hints blob. An empty blob
// decodes to an empty, non-nil set.
func decodeHints(blob []byte) (storedHints, error) {
	grouped := make(storedHints)
	if len(blob) == 0 {
		return grouped, nil
	}
	if err := json.Unmarshal(blob, &grouped); err != nil {
		return nil, fmt.Errorf("unmarshal hints: %w", err)
	}
	return grouped, nil
}
