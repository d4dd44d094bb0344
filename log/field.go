package log

import "log/slog"

// Field is a key/value pair attached to a log message.
type Field = slog.Attr

// String returns a string-valued field.
func String(key, value string) Field {
	return slog.String(key, value)
}

// Int returns an int-valued field.
func Int(key string, value int) Field {
	return slog.Int(key, value)
}

// Uint32 returns a field for 20-bit physical addresses and other
// unsigned values.
func Uint32(key string, value uint32) Field {
	return slog.Uint64(key, uint64(value))
}

// Err returns a field carrying an error under the conventional "error"
// key.
func Err(err error) Field {
	return slog.Any("error", err)
}
