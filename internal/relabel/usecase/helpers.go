package usecase

import (
	"encoding/json"
	"errors"
	"fmt"

	"label-renamer/internal/relabel"
	pkgLabelStudio "label-renamer/pkg/labelstudio"
)

// remoteError tags a repository error as a remote failure, keeping the
// client's classification reachable through errors.Is.
func remoteError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, relabel.ErrRemote, err)
}

// projectError is remoteError with 404 mapped to ErrProjectNotFound.
func projectError(projectID int, err error) error {
	if errors.Is(err, pkgLabelStudio.ErrNotFound) {
		return fmt.Errorf("project %d: %w: %w", projectID, relabel.ErrProjectNotFound, err)
	}
	return remoteError(fmt.Sprintf("project %d", projectID), err)
}

// rewriteResult renames oldLabel to newLabel in every result item whose
// value.<field> is exactly [oldLabel]. Items that do not match are returned
// as the same raw bytes. The second return value counts rewritten items.
func rewriteResult(items []json.RawMessage, fields []string, oldLabel, newLabel string) ([]json.RawMessage, int, error) {
	out := make([]json.RawMessage, len(items))
	matched := 0

	for i, raw := range items {
		rewritten, ok, err := rewriteItem(raw, fields, oldLabel, newLabel)
		if err != nil {
			return nil, 0, fmt.Errorf("result item %d: %w", i, err)
		}
		if ok {
			out[i] = rewritten
			matched++
			continue
		}
		out[i] = raw
	}
	return out, matched, nil
}

func rewriteItem(raw json.RawMessage, fields []string, oldLabel, newLabel string) (json.RawMessage, bool, error) {
	var item map[string]json.RawMessage
	if err := json.Unmarshal(raw, &item); err != nil {
		// Not an object; nothing to rename.
		return nil, false, nil
	}

	var value map[string]json.RawMessage
	if err := json.Unmarshal(item["value"], &value); err != nil || value == nil {
		return nil, false, nil
	}

	changed := false
	for _, field := range fields {
		var labels []string
		if err := json.Unmarshal(value[field], &labels); err != nil {
			continue
		}
		if len(labels) != 1 || labels[0] != oldLabel {
			continue
		}
		enc, err := json.Marshal([]string{newLabel})
		if err != nil {
			return nil, false, err
		}
		value[field] = enc
		changed = true
	}
	if !changed {
		return nil, false, nil
	}

	encValue, err := json.Marshal(value)
	if err != nil {
		return nil, false, err
	}
	item["value"] = encValue

	encItem, err := json.Marshal(item)
	if err != nil {
		return nil, false, err
	}
	return encItem, true, nil
}
