package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForcedApprover_ApprovesAfterCountdown(t *testing.T) {
	var output bytes.Buffer
	sleepCalls := 0

	approver := &ForcedApprover{
		output:  &output,
		sleepFn: func(time.Duration) { sleepCalls++ },
	}

	approved, err := approver.RequestApproval(context.Background(), "sparkifydb")
	require.NoError(t, err)
	assert.True(t, approved)
	assert.Equal(t, 5, sleepCalls, "one sleep per second of countdown")

	out := output.String()
	assert.Contains(t, out, "sparkifydb")
	assert.Contains(t, out, "DANGER")
	assert.Contains(t, out, "Dropping in: 1 seconds")
	assert.Contains(t, out, "Proceeding with database overwrite")
}

func TestForcedApprover_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sleepCalls := 0
	approver := &ForcedApprover{
		output: &bytes.Buffer{},
		sleepFn: func(time.Duration) {
			sleepCalls++
			if sleepCalls >= 2 {
				cancel()
			}
		},
	}

	approved, err := approver.RequestApproval(ctx, "sparkifydb")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, approved)
	assert.Equal(t, 2, sleepCalls)
}

func TestForcedApprover_CancelledDuringLastSecond(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sleepCalls := 0
	approver := &ForcedApprover{
		output: &bytes.Buffer{},
		sleepFn: func(time.Duration) {
			sleepCalls++
			if sleepCalls == 5 {
				cancel()
			}
		},
	}

	approved, err := approver.RequestApproval(ctx, "sparkifydb")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, approved)
}

func TestNewForcedApprover(t *testing.T) {
	fa, ok := NewForcedApprover(true).(*ForcedApprover)
	require.True(t, ok)
	assert.True(t, fa.verbose)
	assert.NotNil(t, fa.output)
	assert.NotNil(t, fa.sleepFn)
}

func fixedPrompt(approved bool, err error) promptFunc {
	return func(context.Context, string, io.Reader, io.Writer) (bool, error) {
		return approved, err
	}
}

func TestInteractiveApprover_Confirmed(t *testing.T) {
	var output bytes.Buffer
	approver := &InteractiveApprover{output: &output, prompt: fixedPrompt(true, nil)}

	approved, err := approver.RequestApproval(context.Background(), "sparkifydb")
	require.NoError(t, err)
	assert.True(t, approved)

	out := output.String()
	assert.Contains(t, out, "WARNING")
	assert.Contains(t, out, "sparkifydb")
	assert.Contains(t, out, "permanently delete")
	assert.Contains(t, out, "Confirmed")
}

func TestInteractiveApprover_Denied(t *testing.T) {
	var output bytes.Buffer
	approver := &InteractiveApprover{output: &output, prompt: fixedPrompt(false, nil)}

	approved, err := approver.RequestApproval(context.Background(), "sparkifydb")
	require.NoError(t, err)
	assert.False(t, approved)
	assert.Contains(t, output.String(), "does not match")
}

func TestInteractiveApprover_PromptError(t *testing.T) {
	approver := &InteractiveApprover{output: &bytes.Buffer{}, prompt: fixedPrompt(false, context.Canceled)}

	approved, err := approver.RequestApproval(context.Background(), "sparkifydb")
	assert.False(t, approved)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Contains(t, err.Error(), "failed to read confirmation")
}

func TestInteractiveApprover_TypedNameThroughPrompt(t *testing.T) {
	var output bytes.Buffer
	approver := &InteractiveApprover{
		input:  strings.NewReader("sparkifydb\r"),
		output: &output,
	}

	approved, err := approver.RequestApproval(context.Background(), "sparkifydb")
	require.NoError(t, err)
	assert.True(t, approved)
}

func TestNewInteractiveApprover(t *testing.T) {
	ia, ok := NewInteractiveApprover(false).(*InteractiveApprover)
	require.True(t, ok)
	assert.False(t, ia.verbose)
	assert.NotNil(t, ia.input)
	assert.NotNil(t, ia.output)
	assert.NotNil(t, ia.prompt)
}

func TestNonInteractiveApprover_AlwaysDenies(t *testing.T) {
	var output bytes.Buffer
	approver := &NonInteractiveApprover{output: &output}

	approved, err := approver.RequestApproval(context.Background(), "sparkifydb")

	require.NoError(t, err)
	assert.False(t, approved)
	assert.Contains(t, output.String(), "sparkifydb")
	assert.Contains(t, output.String(), "--force")
}
