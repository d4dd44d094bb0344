// Package assert provides the test assertions used throughout this
// module. Error assertions stop the failing test immediately, since the
// statements after them almost always dereference the asserted result;
// value assertions mark the test failed and continue, so one run reports
// every mismatched register or flag at once.
package assert

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Testing is the subset of *testing.T the assertions need.
type Testing interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
}

func fail(t Testing, message string, msgAndArgs ...any) {
	t.Helper()
	if extra := formatMsgAndArgs(msgAndArgs); extra != "" {
		message += ": " + extra
	}
	t.Errorf("%s", message)
}

func formatMsgAndArgs(msgAndArgs []any) string {
	switch len(msgAndArgs) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%v", msgAndArgs[0])
	default:
		if format, ok := msgAndArgs[0].(string); ok {
			return fmt.Sprintf(format, msgAndArgs[1:]...)
		}
		return fmt.Sprint(msgAndArgs...)
	}
}

// Fail marks the test failed with the given message.
func Fail(t Testing, message string, msgAndArgs ...any) {
	t.Helper()
	fail(t, message, msgAndArgs...)
}

// Equal asserts that expected and actual are deeply equal.
func Equal(t Testing, expected, actual any, msgAndArgs ...any) {
	t.Helper()
	if equalValues(expected, actual) {
		return
	}
	fail(t, fmt.Sprintf("not equal:\n expected: %v\n actual:   %v", expected, actual), msgAndArgs...)
}

// NotEqual asserts that expected and actual differ.
func NotEqual(t Testing, expected, actual any, msgAndArgs ...any) {
	t.Helper()
	if !equalValues(expected, actual) {
		return
	}
	fail(t, fmt.Sprintf("should not be equal: %v", actual), msgAndArgs...)
}

func equalValues(expected, actual any) bool {
	if expected == nil || actual == nil {
		return expected == actual
	}
	if eb, ok := expected.([]byte); ok {
		ab, ok := actual.([]byte)
		return ok && string(eb) == string(ab)
	}
	return reflect.DeepEqual(expected, actual)
}

// True asserts that value is true.
func True(t Testing, value bool, msgAndArgs ...any) {
	t.Helper()
	if !value {
		fail(t, "should be true", msgAndArgs...)
	}
}

// False asserts that value is false.
func False(t Testing, value bool, msgAndArgs ...any) {
	t.Helper()
	if value {
		fail(t, "should be false", msgAndArgs...)
	}
}

// NoError asserts that err is nil and stops the test otherwise.
func NoError(t Testing, err error, msgAndArgs ...any) {
	t.Helper()
	if err == nil {
		return
	}
	fail(t, fmt.Sprintf("unexpected error: %v", err), msgAndArgs...)
	t.FailNow()
}

// Error asserts that err is non-nil and stops the test otherwise.
func Error(t Testing, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		return
	}
	fail(t, "expected an error, got nil", msgAndArgs...)
	t.FailNow()
}

// ErrorIs asserts that errors.Is(err, target) holds and stops the test
// otherwise.
func ErrorIs(t Testing, err, target error, msgAndArgs ...any) {
	t.Helper()
	if errors.Is(err, target) {
		return
	}
	fail(t, fmt.Sprintf("error %q does not match %q", err, target), msgAndArgs...)
	t.FailNow()
}

// ErrorAs asserts that errors.As(err, target) holds and stops the test
// otherwise.
func ErrorAs(t Testing, err error, target any, msgAndArgs ...any) {
	t.Helper()
	if errors.As(err, target) {
		return
	}
	fail(t, fmt.Sprintf("error %q is not of type %T", err, target), msgAndArgs...)
	t.FailNow()
}

// ErrorContains asserts that err is non-nil and its message contains
// substr. A nil err stops the test; a missing substring marks it failed
// and continues.
func ErrorContains(t Testing, err error, substr string, msgAndArgs ...any) {
	t.Helper()
	if err == nil {
		fail(t, "expected an error, got nil", msgAndArgs...)
		t.FailNow()
		return
	}
	if !strings.Contains(err.Error(), substr) {
		fail(t, fmt.Sprintf("error %q does not contain %q", err, substr), msgAndArgs...)
	}
}

// Contains asserts that s contains substr.
func Contains(t Testing, s, substr string, msgAndArgs ...any) {
	t.Helper()
	if !strings.Contains(s, substr) {
		fail(t, fmt.Sprintf("%q does not contain %q", s, substr), msgAndArgs...)
	}
}

// NotContains asserts that s does not contain substr.
func NotContains(t Testing, s, substr string, msgAndArgs ...any) {
	t.Helper()
	if strings.Contains(s, substr) {
		fail(t, fmt.Sprintf("%q should not contain %q", s, substr), msgAndArgs...)
	}
}

// Len asserts that object has the given length. Supported kinds are
// those of the built-in len.
func Len(t Testing, object any, length int, msgAndArgs ...any) {
	t.Helper()
	v := reflect.ValueOf(object)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		if v.Len() != length {
			fail(t, fmt.Sprintf("length is %d, expected %d", v.Len(), length), msgAndArgs...)
		}
	default:
		fail(t, fmt.Sprintf("type %T has no length", object), msgAndArgs...)
	}
}

// Nil asserts that object is nil.
func Nil(t Testing, object any, msgAndArgs ...any) {
	t.Helper()
	if !isNil(object) {
		fail(t, fmt.Sprintf("expected nil, got %v", object), msgAndArgs...)
	}
}

// NotNil asserts that object is not nil.
func NotNil(t Testing, object any, msgAndArgs ...any) {
	t.Helper()
	if isNil(object) {
		fail(t, "expected a non-nil value", msgAndArgs...)
	}
}

func isNil(object any) bool {
	if object == nil {
		return true
	}
	v := reflect.ValueOf(object)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// Empty asserts that object is empty: nil, zero length, or the zero
// value of its type.
func Empty(t Testing, object any, msgAndArgs ...any) {
	t.Helper()
	if !isEmpty(object) {
		fail(t, fmt.Sprintf("expected empty, got %v", object), msgAndArgs...)
	}
}

// NotEmpty asserts that object is not empty.
func NotEmpty(t Testing, object any, msgAndArgs ...any) {
	t.Helper()
	if isEmpty(object) {
		fail(t, "expected a non-empty value", msgAndArgs...)
	}
}

func isEmpty(object any) bool {
	if object == nil {
		return true
	}
	v := reflect.ValueOf(object)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		return v.Len() == 0
	case reflect.Ptr:
		return v.IsNil() || isEmpty(v.Elem().Interface())
	default:
		return v.IsZero()
	}
}
