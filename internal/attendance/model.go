package attendance

import (
	"bytes"
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// Record represents a single gym check-in as returned by the collection endpoint.
type Record struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	TimeIn string `json:"timeIn"`
}

// UnmarshalJSON normalizes records at the network boundary. Missing fields
// decode to empty strings, and the identifier may arrive as "id" or "_id",
// either as a string or a number.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      json.RawMessage `json:"id"`
		MongoID json.RawMessage `json:"_id"`
		Name    *string         `json:"name"`
		Date    *string         `json:"date"`
		TimeIn  *string         `json:"timeIn"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Record{
		ID:     decodeID(raw.ID),
		Name:   deref(raw.Name),
		Date:   deref(raw.Date),
		TimeIn: deref(raw.TimeIn),
	}
	if r.ID == "" {
		r.ID = decodeID(raw.MongoID)
	}
	return nil
}

// DateKey returns the calendar-day key used for display, filtering, and grouping.
func (r Record) DateKey() string {
	return DatePrefix(r.Date)
}

// Draft is the unsaved entry composed in the add-attendance form.
type Draft struct {
	Name   string `json:"name" validate:"required"`
	Date   string `json:"date" validate:"required"`
	TimeIn string `json:"timeIn" validate:"required"`
}

// DraftField identifies one input of the add-attendance form.
type DraftField uint8

const (
	// FieldName is the member name input.
	FieldName DraftField = iota
	// FieldDate is the visit date input.
	FieldDate
	// FieldTimeIn is the check-in time input.
	FieldTimeIn
)

var validate = validator.New()

// Complete reports whether every field is non-empty. Whitespace counts as a value.
func (d Draft) Complete() bool {
	return validate.Struct(d) == nil
}

// Get returns the value of a single draft field.
func (d Draft) Get(field DraftField) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldDate:
		return d.Date
	case FieldTimeIn:
		return d.TimeIn
	default:
		return ""
	}
}

// With returns a copy of the draft with one field replaced.
func (d Draft) With(field DraftField, value string) Draft {
	switch field {
	case FieldName:
		d.Name = value
	case FieldDate:
		d.Date = value
	case FieldTimeIn:
		d.TimeIn = value
	}
	return d
}

func decodeID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
