package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorClassification(t *testing.T) {
	notFound := &NotFoundError{Kind: "issue", ID: "abc"}
	invalid := &InvalidArgumentError{Field: "title", Reason: "must not be empty"}
	conflict := &ConflictError{Kind: "issue", ID: "abc"}

	require.True(t, IsNotFound(notFound))
	require.False(t, IsNotFound(invalid))

	require.True(t, IsInvalidArgument(invalid))
	require.False(t, IsInvalidArgument(conflict))

	require.True(t, IsConflict(conflict))
	require.False(t, IsConflict(notFound))
}

func TestErrorClassification_Wrapped(t *testing.T) {
	err := fmt.Errorf("updating issue: %w", &NotFoundError{Kind: "issue", ID: "abc"})
	require.True(t, IsNotFound(err))
}

func TestNotFoundError_Message(t *testing.T) {
	err := &NotFoundError{Kind: "sprint", ID: "sp-1"}
	require.Contains(t, err.Error(), "sprint")
	require.Contains(t, err.Error(), "sp-1")
}
