package langchain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// idListKey is the single key accepted when a model wraps the list in an object.
const idListKey = "app_ids"

// ParseIDList decodes a model reply into game IDs.
//
// Accepted shapes are a JSON array, or an object with the single key
// "app_ids" holding an array. Each element must be a positive integer literal
// or a string of decimal digits. Anything else is rejected with
// ErrMalformedIDList; the reply is never evaluated.
func ParseIDList(s string) ([]int64, error) {
	data := []byte(strings.TrimSpace(s))
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty reply", ErrMalformedIDList)
	}

	if data[0] == '{' {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedIDList, err)
		}
		inner, ok := wrapper[idListKey]
		if !ok || len(wrapper) != 1 {
			return nil, fmt.Errorf("%w: object must contain only %q", ErrMalformedIDList, idListKey)
		}
		data = bytes.TrimSpace(inner)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedIDList, err)
	}

	ids := make([]int64, 0, len(items))
	for i, item := range items {
		id, err := parseIDItem(item)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrMalformedIDList, i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseIDItem(item json.RawMessage) (int64, error) {
	text := string(item)
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(item, &text); err != nil {
			return 0, err
		}
		if text == "" || strings.TrimLeft(text, "0123456789") != "" {
			return 0, fmt.Errorf("not a digit string: %q", text)
		}
	}
	// ParseInt rejects fractions, exponents and every non-numeric token
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive: %d", id)
	}
	return id, nil
}
