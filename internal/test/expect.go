// Package test contains small expectation helpers shared by the package tests.
package test

import (
	"math"
	"testing"
)

// ExpectEquality fails the test if value is not equal to expected.
func ExpectEquality[T comparable](t *testing.T, value T, expected T) bool {
	t.Helper()
	if value != expected {
		t.Errorf("equality test of type %T failed: '%v' does not equal '%v'", value, value, expected)
		return false
	}
	return true
}

// ExpectInequality fails the test if value is equal to expected.
func ExpectInequality[T comparable](t *testing.T, value T, expected T) bool {
	t.Helper()
	if value == expected {
		t.Errorf("inequality test of type %T failed: '%v' equals '%v'", value, value, expected)
		return false
	}
	return true
}

// ExpectApproximate fails the test if value is further than tolerance away
// from expected.
func ExpectApproximate(t *testing.T, value float64, expected float64, tolerance float64) bool {
	t.Helper()
	if math.Abs(value-expected) > tolerance {
		t.Errorf("approximation test failed: '%v' is not within %v of '%v'", value, tolerance, expected)
		return false
	}
	return true
}

// ExpectSuccess accepts a bool or an error. A true bool or a nil error is a
// success.
func ExpectSuccess(t *testing.T, v any) bool {
	t.Helper()
	switch v := v.(type) {
	case bool:
		if !v {
			t.Errorf("a success was expected")
			return false
		}
	case error:
		if v != nil {
			t.Errorf("a success was expected: %v", v)
			return false
		}
	case nil:
	default:
		t.Fatalf("unsupported type (%T) for ExpectSuccess()", v)
		return false
	}
	return true
}

// ExpectFailure is the inverse of ExpectSuccess.
func ExpectFailure(t *testing.T, v any) bool {
	t.Helper()
	switch v := v.(type) {
	case bool:
		if v {
			t.Errorf("a failure was expected")
			return false
		}
	case error:
		if v == nil {
			t.Errorf("a failure was expected")
			return false
		}
	case nil:
		t.Errorf("a failure was expected")
		return false
	default:
		t.Fatalf("unsupported type (%T) for ExpectFailure()", v)
		return false
	}
	return true
}

// ExpectPanic fails the test if f returns without panicking.
func ExpectPanic(t *testing.T, f func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Errorf("a panic was expected")
		}
	}()
	f()
	return nil
}
