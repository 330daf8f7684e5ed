package delegates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-intercept/delegates"
	"github.com/robbyt/go-intercept/platform"
)

func TestRecording_WithReturn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result any
	}{
		{
			name:   "int result",
			result: 19,
		},
		{
			name:   "string result",
			result: "placeholder string",
		},
		{
			name:   "nil result",
			result: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := delegates.NewRecording(nil)
			runs := 0

			got := d.WithReturn(nil, func() any {
				runs++
				return tt.result
			})

			assert.Equal(t, tt.result, got, "passthrough must be lossless")
			assert.Equal(t, 1, runs, "thunk runs exactly once per call")
		})
	}
}

func TestRecording_StringSaver(t *testing.T) {
	t.Parallel()

	t.Run("stores string results", func(t *testing.T) {
		d := delegates.NewRecording(nil)

		d.StringSaver(nil, platform.Defer(func() string { return "first" }))
		require.Equal(t, "first", d.LastString())

		d.StringSaver(nil, platform.Defer(func() string { return "second" }))
		assert.Equal(t, "second", d.LastString(), "slot is overwritten, not appended")
	})

	t.Run("non-string results leave the slot unchanged", func(t *testing.T) {
		d := delegates.NewRecording(nil)

		d.StringSaver(nil, platform.Defer(func() string { return "kept" }))
		d.StringSaver(nil, platform.Defer(func() int { return 42 }))

		assert.Equal(t, "kept", d.LastString())
	})

	t.Run("thunk runs even when the result is discarded", func(t *testing.T) {
		d := delegates.NewRecording(nil)
		runs := 0

		d.StringSaver(nil, func() any {
			runs++
			return 42
		})

		assert.Equal(t, 1, runs)
	})
}

func TestRecording_WithCounter(t *testing.T) {
	t.Parallel()

	t.Run("strictly increasing by one per call", func(t *testing.T) {
		d := delegates.NewRecording(nil)

		for i := 1; i <= 5; i++ {
			got := d.WithCounter(nil, platform.Defer(func() string { return "ignored" }))
			assert.Equal(t, i, got)
		}
		assert.Equal(t, 5, d.Counter())
	})

	t.Run("thunk result is discarded but the thunk still runs", func(t *testing.T) {
		d := delegates.NewRecording(nil)
		runs := 0

		got := d.WithCounter(nil, func() any {
			runs++
			return "discarded"
		})

		assert.Equal(t, 1, got)
		assert.Equal(t, 1, runs)
	})
}

func TestRecording_FailuresPropagate(t *testing.T) {
	t.Parallel()

	d := delegates.NewRecording(nil)

	assert.Panics(t, func() {
		d.WithReturn(nil, func() any { panic("thunk failure") })
	}, "no interception operation catches a failing thunk")

	assert.Panics(t, func() {
		d.WithCounter(nil, func() any { panic("thunk failure") })
	})
	assert.Equal(t, 0, d.Counter(), "a failed interception does not count")
}

func TestRecording_StringMethod(t *testing.T) {
	t.Parallel()

	d := delegates.NewRecording(nil)
	assert.Equal(t, "delegates.Recording", d.String())
}
