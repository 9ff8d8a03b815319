package farm

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrCropNotFound    = errors.New("crop not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrPhaseOutOfRange = errors.New("phase index out of range")
	ErrNoPendingDelete = errors.New("no delete pending for crop")
	ErrIDExhausted     = errors.New("could not allocate a unique crop id")
)

// Validation messages are translation keys.
const (
	MsgRequired    = "field_required"
	MsgInvalidArea = "field_invalid_area"
	MsgInvalidDate = "field_invalid_date"
	MsgInvalidSoil = "field_invalid_soil"
)

// ValidationError lists the crop form fields that blocked a save.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid crop: " + strings.Join(parts, ", ")
}
