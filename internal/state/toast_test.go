package state

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToastAutoDismiss(t *testing.T) {
	clock := clockwork.NewFakeClock()
	toaster := NewToaster(clock, 3*time.Second)

	toaster.Show("Insufficient balance.", ToastError)
	current := toaster.Current()
	require.NotNil(t, current)
	assert.Equal(t, "Insufficient balance.", current.Message)
	assert.Equal(t, ToastError, current.Kind)

	clock.Advance(2 * time.Second)
	assert.NotNil(t, toaster.Current())

	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return toaster.Current() == nil }, time.Second, 5*time.Millisecond)
}

func TestToastReplacesWithoutQueue(t *testing.T) {
	clock := clockwork.NewFakeClock()
	toaster := NewToaster(clock, 3*time.Second)

	toaster.Show("first", ToastSuccess)
	clock.Advance(2 * time.Second)
	toaster.Show("second", ToastError)

	clock.Advance(2 * time.Second)
	current := toaster.Current()
	require.NotNil(t, current, "the replaced toast's timer must not dismiss the new one")
	assert.Equal(t, "second", current.Message)

	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return toaster.Current() == nil }, time.Second, 5*time.Millisecond)
}

func TestToastDismiss(t *testing.T) {
	toaster := NewToaster(clockwork.NewFakeClock(), 0)

	toaster.Show("kept", ToastSuccess)
	assert.NotNil(t, toaster.Current())

	toaster.Dismiss()
	assert.Nil(t, toaster.Current())
}
