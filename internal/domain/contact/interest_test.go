package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type interestFunc func(ctx context.Context, email string) error

func (f interestFunc) SubmitInterest(ctx context.Context, email string) error { return f(ctx, email) }

func TestInterestFormSuccessClearsField(t *testing.T) {
	t.Parallel()

	var sent []string
	form := NewInterestForm(interestFunc(func(_ context.Context, email string) error {
		sent = append(sent, email)
		return nil
	}), nil)

	form.UpdateEmail("visitor@example.com")
	notice := form.Submit(context.Background())

	require.Equal(t, Notice{Kind: NoticeSuccess, Text: MsgInterestSucceeded}, notice)
	require.Equal(t, []string{"visitor@example.com"}, sent)
	require.Empty(t, form.Email())
}

func TestInterestFormFailureKeepsField(t *testing.T) {
	t.Parallel()

	form := NewInterestForm(interestFunc(func(context.Context, string) error {
		return errors.New("503")
	}), nil)

	form.UpdateEmail("visitor@example.com")
	notice := form.Submit(context.Background())

	require.Equal(t, Notice{Kind: NoticeError, Text: MsgInterestFailed}, notice)
	require.Equal(t, "visitor@example.com", form.Email())
	require.False(t, form.Submitting())
}

func TestInterestFormValidatesBeforeSending(t *testing.T) {
	t.Parallel()

	called := false
	form := NewInterestForm(interestFunc(func(context.Context, string) error {
		called = true
		return nil
	}), nil)

	require.True(t, form.Submit(context.Background()).Empty())
	require.Equal(t, "Email is required", form.Error())

	form.UpdateEmail("nope")
	require.Empty(t, form.Error())
	require.True(t, form.Submit(context.Background()).Empty())
	require.Equal(t, "Please enter a valid email address", form.Error())
	require.False(t, called)
}

func TestInterestFormBlocksDoubleSubmission(t *testing.T) {
	t.Parallel()

	form := NewInterestForm(nil, nil)
	form.UpdateEmail("visitor@example.com")

	_, err := form.BeginSubmit()
	require.NoError(t, err)
	_, err = form.BeginSubmit()
	require.ErrorIs(t, err, ErrSubmitInFlight)
}
