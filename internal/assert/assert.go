package assert

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

func Equal[T comparable](t testing.TB, expected, got T) bool {
	t.Helper()
	return Equalf(t, expected, got, "Items was not equal")
}

func Equalf[T comparable](t testing.TB, expected, got T, format string, args ...any) bool {
	t.Helper()
	if expected != got {
		t.Logf(`
%s
Expected: %v
     Got: %v`, fmt.Sprintf(format, args...), expected, got)
		t.Fail()
		return false
	}
	return true
}

// EqualSlice treats nil and empty slices as equal.
func EqualSlice[T comparable](t testing.TB, expected, got []T) bool {
	t.Helper()
	return EqualSliceFunc(t, expected, got, func(want, item T) bool {
		return Equal(t, want, item)
	})
}

func EqualSliceFunc[T any](t testing.TB, expected, got []T, equal func(want, item T) bool) bool {
	t.Helper()
	if len(expected) != len(got) {
		t.Logf(`
Expected %d elements, but got %d
Expected: %v
     Got: %v`, len(expected), len(got), expected, got)
		t.Fail()
		return false
	}

	for i := range len(expected) {
		if !equal(expected[i], got[i]) {
			t.Logf("Element %d differs", i)
			return false
		}
	}

	return true
}

func NotNil(t testing.TB, got any) bool {
	t.Helper()
	if isNil(got) {
		t.Logf("Expected a value, but got nil")
		t.Fail()
		return false
	}

	return true
}

func Nil(t testing.TB, got any) bool {
	t.Helper()
	if !isNil(got) {
		t.Logf("Expected nil, but got: %v", got)
		t.Fail()
		return false
	}

	return true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

func NoError(t testing.TB, got error) bool {
	t.Helper()
	if got != nil {
		t.Logf("Unexpected error: %s", got)
		t.Fail()
		return false
	}

	return true
}

func Error(t testing.TB, got error) bool {
	t.Helper()
	if got == nil {
		t.Logf("Expected an error, but got nil")
		t.Fail()
		return false
	}

	return true
}

func ErrorIs(t testing.TB, got, target error) bool {
	t.Helper()
	if !errors.Is(got, target) {
		t.Logf(`
Error chain does not contain target
Target: %v
   Got: %v`, target, got)
		t.Fail()
		return false
	}

	return true
}

// NoErrorEventually polls fn until it returns nil or timeout passes.
func NoErrorEventually(t testing.TB, timeout time.Duration, fn func() error) bool {
	t.Helper()
	var (
		deadline = time.Now().Add(timeout)
		err      error
	)
	for {
		err = fn()
		if err == nil {
			return true
		}
		if time.Now().After(deadline) {
			break
		}
		time.Sleep(timeout / 20)
	}

	t.Logf("Still failing after %s: %s", timeout, err)
	t.Fail()
	return false
}

func Truef(t testing.TB, got bool, format string, args ...any) bool {
	t.Helper()
	if !got {
		t.Logf(format, args...)
		t.Fail()
		return false
	}

	return true
}

// Panic calls fn and returns the recovered value. The test fails if fn
// returns normally.
func Panic(t testing.TB, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Logf(`Expected panic, but it did not happen!`)
			t.Fail()
		}
	}()

	fn()
	return nil
}

func NoPanic(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if m := recover(); m != nil {
			t.Logf("Unexpected panic: %v", m)
			t.Fail()
		}
	}()

	fn()
}
