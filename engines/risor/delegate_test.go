package risor

import (
	_ "embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-intercept/platform"
	"github.com/robbyt/go-intercept/relay"
)

//go:embed testdata/delegate.risor
var delegateScript string

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{
			name:   "reference script",
			source: delegateScript,
		},
		{
			name:    "empty source",
			source:  "",
			wantErr: ErrEmptySource,
		},
		{
			name:    "syntax error",
			source:  "func broken(",
			wantErr: ErrCompileFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(nil, tt.source)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, d)
		})
	}
}

func TestDelegate_Scenario(t *testing.T) {
	t.Parallel()

	d, err := New(nil, delegateScript)
	require.NoError(t, err)

	a := relay.New(d)
	b := relay.NewFromString("placeholder string", d)

	assert.Equal(t, 0, a.Length())
	assert.Equal(t, 18, b.Length())

	assert.Equal(t, 1, a.Count())
	assert.Equal(t, 2, a.Count())
	assert.Equal(t, 3, a.Count())
	assert.Equal(t, 3, d.Counter())

	b.Save("meta-syntactic variable values")
	assert.Equal(t, "meta-syntactic variable values", d.LastString())
}

func TestDelegate_WithReturnPassthrough(t *testing.T) {
	t.Parallel()

	d, err := New(nil, delegateScript)
	require.NoError(t, err)

	tests := []struct {
		name  string
		thunk platform.Thunk
		want  any
	}{
		{
			name:  "int",
			thunk: platform.Defer(func() int { return 19 }),
			want:  19,
		},
		{
			name:  "string",
			thunk: platform.Defer(func() string { return "placeholder string" }),
			want:  "placeholder string",
		},
		{
			name:  "bool",
			thunk: platform.Defer(func() bool { return true }),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.WithReturn(nil, tt.thunk))
		})
	}
}

func TestDelegate_StringSaverIgnoresNonString(t *testing.T) {
	t.Parallel()

	d, err := New(nil, delegateScript)
	require.NoError(t, err)

	d.StringSaver(nil, platform.Defer(func() string { return "kept" }))
	d.StringSaver(nil, platform.Defer(func() int { return 42 }))

	assert.Equal(t, "kept", d.LastString())
}

func TestDelegate_ScriptFailurePanics(t *testing.T) {
	t.Parallel()

	d, err := New(nil, `throw error("script failure")`)
	require.NoError(t, err)

	assert.Panics(t, func() {
		d.WithReturn(nil, platform.Defer(func() int { return 0 }))
	})
}

func TestDelegate_ThunkRunsPerInterception(t *testing.T) {
	t.Parallel()

	d, err := New(nil, delegateScript)
	require.NoError(t, err)

	runs := 0
	thunk := platform.Thunk(func() any {
		runs++
		return runs
	})

	d.WithCounter(nil, thunk)
	d.WithCounter(nil, thunk)

	assert.Equal(t, 2, runs, "each interception re-runs the computation")
	assert.Equal(t, 2, d.Counter())
}

func TestDelegate_StringMethod(t *testing.T) {
	t.Parallel()

	d, err := New(nil, delegateScript)
	require.NoError(t, err)
	assert.Equal(t, "risor.Delegate", d.String())
}
