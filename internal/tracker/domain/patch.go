package domain

import "encoding/json"

// Optional wraps a patch field so that "omitted" and "explicitly set" are
// distinguishable at the type level. The zero value is absent; an absent
// field never overwrites the stored value.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the wrapped value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the field was present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// UnmarshalJSON marks the field present whenever it appears in the payload,
// including an explicit null. A JSON null decodes to the zero value with
// set=true, which is how "field cleared" is expressed on the wire.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if string(data) == "null" {
		var zero T
		o.value = zero
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON round-trips the wrapped value. Absent fields marshal as null;
// callers that care about wire shape should use omitzero on the struct tag.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// ProjectPatch is a partial update for a project. Every field is optional;
// a whole patch is validated before any field is applied.
type ProjectPatch struct {
	Name        Optional[string]    `json:"name"`
	Description Optional[string]    `json:"description"`
	StartDate   Optional[string]    `json:"start_date"` // RFC 3339 date
	EndDate     Optional[string]    `json:"end_date"`
	Status      Optional[string]    `json:"status"`
}

// BoardPatch is a partial update for a board.
type BoardPatch struct {
	Name Optional[string] `json:"name"`
	Type Optional[string] `json:"type"`
}

// SprintPatch is a partial update for a sprint.
type SprintPatch struct {
	Name      Optional[string] `json:"name"`
	Goal      Optional[string] `json:"goal"`
	StartDate Optional[string] `json:"start_date"`
	EndDate   Optional[string] `json:"end_date"`
	Status    Optional[string] `json:"status"`
}

// IssuePatch is a partial update for an issue. SprintID and AssigneeID are
// clearable: a present empty string removes the reference.
// ExpectedVersion, when set, enables an optimistic concurrency check; a
// mismatch surfaces as ConflictError.
type IssuePatch struct {
	Title           Optional[string] `json:"title"`
	Description     Optional[string] `json:"description"`
	Type            Optional[string] `json:"type"`
	Status          Optional[string] `json:"status"`
	SprintID        Optional[string] `json:"sprint_id"`
	AssigneeID      Optional[string] `json:"assignee_id"`
	EstimateHours   Optional[int]    `json:"estimate_hours"`
	TimeSpent       Optional[int]    `json:"time_spent_hours"`
	OrderInColumn   Optional[int]    `json:"order_in_column"`
	ExpectedVersion Optional[int64]  `json:"expected_version"`
}
