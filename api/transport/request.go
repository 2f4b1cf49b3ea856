package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fastygo/tasks/domain"
)

var (
	errNotObject    = errors.New("body must be a JSON object")
	errMissingTitle = errors.New("title is required")
)

// DecodeTaskInput parses a creation body. Unknown fields are ignored.
func DecodeTaskInput(body []byte) (domain.TaskInput, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return domain.TaskInput{}, err
	}

	var input domain.TaskInput
	raw, ok := fields["title"]
	if !ok {
		return input, domain.Invalid(errMissingTitle)
	}
	if input.Title, err = decodeString("title", raw); err != nil {
		return input, err
	}

	if raw, ok := fields["description"]; ok {
		if input.Description, err = decodeNullableString("description", raw); err != nil {
			return input, err
		}
	}
	return input, nil
}

// DecodeTaskPatch parses an update body, recording which fields were sent.
func DecodeTaskPatch(body []byte) (domain.TaskPatch, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return domain.TaskPatch{}, err
	}

	var patch domain.TaskPatch
	if raw, ok := fields["title"]; ok {
		title, err := decodeString("title", raw)
		if err != nil {
			return patch, err
		}
		patch.Title = &title
	}
	if raw, ok := fields["description"]; ok {
		desc, err := decodeNullableString("description", raw)
		if err != nil {
			return patch, err
		}
		patch.Description = domain.Optional{Set: true, Value: desc}
	}
	if raw, ok := fields["completed"]; ok {
		if isNull(raw) {
			return patch, domain.Invalid(errors.New("completed must not be null"))
		}
		var completed bool
		if err := json.Unmarshal(raw, &completed); err != nil {
			return patch, domain.Invalid(fmt.Errorf("completed: %w", err))
		}
		patch.Completed = &completed
	}
	return patch, nil
}

func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, domain.Invalid(err)
	}
	if fields == nil {
		return nil, domain.Invalid(errNotObject)
	}
	return fields, nil
}

func decodeString(name string, raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", domain.Invalid(fmt.Errorf("%s must not be null", name))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", domain.Invalid(fmt.Errorf("%s: %w", name, err))
	}
	return s, nil
}

func decodeNullableString(name string, raw json.RawMessage) (*string, error) {
	if isNull(raw) {
		return nil, nil
	}
	s, err := decodeString(name, raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
