package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Text is a scalar the backend sends either as a JSON string or a number
// (phone numbers, project sizes).
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("text: expected string or number, got %s", data)
	}
	*t = Text(n.String())
	return nil
}

// FileList is a list of uploaded file names; a single string is accepted.
type FileList []string

func (f *FileList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = FileList{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = FileList{}
		} else {
			*f = FileList{s}
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*f = FileList(list)
	return nil
}

// Ref is a reference to another document: either a bare id or the populated
// document itself.
type Ref[T any] struct {
	ID    string
	Value *T
}

func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	r.ID, r.Value = "", nil
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		return json.Unmarshal(data, &r.ID)
	case '{':
		var id struct {
			ID string `json:"_id"`
		}
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		r.ID, r.Value = id.ID, &v
		return nil
	}
	// numeric ids are tolerated and kept as text
	if _, err := strconv.ParseFloat(string(data), 64); err == nil {
		r.ID = string(data)
		return nil
	}
	return fmt.Errorf("ref: unexpected value %s", data)
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Value != nil {
		return json.Marshal(r.Value)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}
