package mocks

import (
	"github.com/robbyt/go-intercept/platform"
	"github.com/stretchr/testify/mock"
)

// Delegate is a mock implementation of platform.Delegate for testing
// purposes.
type Delegate struct {
	mock.Mock
}

// WithReturn is a mock implementation of the WithReturn operation.
func (m *Delegate) WithReturn(owner platform.Owner, thunk platform.Thunk) any {
	args := m.Called(owner, thunk)
	return args.Get(0)
}

// StringSaver is a mock implementation of the StringSaver operation.
func (m *Delegate) StringSaver(owner platform.Owner, thunk platform.Thunk) {
	m.Called(owner, thunk)
}

// WithCounter is a mock implementation of the WithCounter operation.
func (m *Delegate) WithCounter(owner platform.Owner, thunk platform.Thunk) int {
	args := m.Called(owner, thunk)
	return args.Int(0)
}
