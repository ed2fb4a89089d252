package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/volsreport/volsreport/internal/model"
)

// DefaultPath is where the dataset is read from when no path is configured.
const DefaultPath = "data/input.json"

// requiredKeys lists the keys each object must carry, by object kind.
var requiredKeys = map[string][]string{
	"record":          {"as_of", "totals", "dismantled_2025", "key_branches", "rostelecom"},
	"totals":          {"found", "legalized", "removed_2025", "removed_2024", "in_work", "rostelecom"},
	"dismantled_2025": {"branch", "count"},
	"key_branches":    {"branch", "in_work", "note", "risk"},
	"rostelecom":      {"branch", "note"},
}

// Load reads and decodes the dataset at path.
func Load(path string) (*model.Record, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided dataset path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	rec, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Decode reads a dataset from r.
func Decode(r io.Reader) (*model.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	if err := checkRequired(data); err != nil {
		return nil, err
	}

	var rec model.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &rec, nil
}

// checkRequired walks the raw document and reports the first required key
// that is absent or null, as a dotted path such as "key_branches[2].risk".
func checkRequired(data []byte) error {
	root, err := object(data, "")
	if err != nil {
		return err
	}
	if err := requireKeys(root, "", requiredKeys["record"]); err != nil {
		return err
	}

	totals, err := object(root["totals"], "totals")
	if err != nil {
		return err
	}
	if err := requireKeys(totals, "totals", requiredKeys["totals"]); err != nil {
		return err
	}

	for _, list := range []string{"dismantled_2025", "key_branches", "rostelecom"} {
		var items []json.RawMessage
		if err := json.Unmarshal(root[list], &items); err != nil {
			return fmt.Errorf("%w: %s must be a list", ErrMalformed, list)
		}
		for i, raw := range items {
			at := fmt.Sprintf("%s[%d]", list, i)
			item, err := object(raw, at)
			if err != nil {
				return err
			}
			if err := requireKeys(item, at, requiredKeys[list]); err != nil {
				return err
			}
		}
	}
	return nil
}

func object(data []byte, at string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		if at == "" {
			return nil, fmt.Errorf("%w: top level must be an object", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %s must be an object", ErrMalformed, at)
	}
	return obj, nil
}

func requireKeys(obj map[string]json.RawMessage, at string, keys []string) error {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			if at == "" {
				return fmt.Errorf("%w: %s", ErrMissingField, key)
			}
			return fmt.Errorf("%w: %s.%s", ErrMissingField, at, key)
		}
	}
	return nil
}
