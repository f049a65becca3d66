package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("fixtures.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "fixtures.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "cannot read fixtures.yaml:12: unexpected token", err.Error())
}

func TestValidationErrorCarriesFieldAndMessage(t *testing.T) {
	t.Parallel()

	err := NewValidationError("email", "Please enter a valid email address", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "email", validationErr.Field)
	require.Equal(t, "Please enter a valid email address", validationErr.Message)
	require.Equal(t, "email: Please enter a valid email address", err.Error())
}

func TestTransportErrorFormatting(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		err      *TransportError
		expected string
	}{
		{
			name:     "status only",
			err:      &TransportError{Op: "get skills", Status: http.StatusBadGateway},
			expected: "transport error: get skills: 502 Bad Gateway",
		},
		{
			name:     "cause only",
			err:      &TransportError{Op: "submit contact", Err: stdErrors.New("connection refused")},
			expected: "transport error: submit contact: connection refused",
		},
		{
			name:     "status and cause",
			err:      &TransportError{Op: "get about", Status: http.StatusNotFound, Err: stdErrors.New("no primary record")},
			expected: "transport error: get about: 404 Not Found: no primary record",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestTransportErrorTemporary(t *testing.T) {
	t.Parallel()

	require.True(t, (&TransportError{Op: "x"}).Temporary())
	require.True(t, (&TransportError{Op: "x", Status: http.StatusServiceUnavailable}).Temporary())
	require.True(t, (&TransportError{Op: "x", Status: http.StatusTooManyRequests}).Temporary())
	require.False(t, (&TransportError{Op: "x", Status: http.StatusBadRequest}).Temporary())

	var nilErr *TransportError
	require.False(t, nilErr.Temporary())
	require.Equal(t, "", nilErr.Error())
}

func TestTransportErrorUnwraps(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("timeout")
	err := NewTransportError("get projects", 0, underlying)
	require.ErrorIs(t, err, underlying)
}
