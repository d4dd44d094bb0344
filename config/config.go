// Package config loads the optional sim8086.ini settings file into a
// tagged struct. The file is a small INI dialect:
//
//	# engine tuning
//	[engine]
//	max_steps = 500000
//
//	[memory]
//	load_offset = 256
//
// Struct fields opt in with a `config:"section.key"` tag, optionally
// carrying a default applied when the file omits the key:
//
//	type settings struct {
//	    MaxSteps int `config:"engine.max_steps,default=1000000"`
//	}
//
// Supported field types are string, bool, and the signed and unsigned
// integer kinds. Keys present in the file but absent from the struct are
// ignored, so a newer settings file keeps working with an older binary.
package config

import (
	"bufio"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// tagName is the struct tag consulted by Load.
const tagName = "config"

// Load reads the INI file at filename and fills v, which must be a
// pointer to a struct with config tags. Defaults from the tags apply
// first; values from the file override them.
func Load(filename string, v any) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	return LoadBytes(data, v)
}

// LoadBytes behaves like Load on in-memory file content.
func LoadBytes(data []byte, v any) error {
	values, err := parse(string(data))
	if err != nil {
		return err
	}
	return apply(values, v)
}

// parse reads the INI content into a flat "section.key" map. Keys before
// the first section header belong to the empty section.
func parse(content string) (map[string]string, error) {
	values := make(map[string]string)
	section := ""

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "", strings.HasPrefix(line, "#"), strings.HasPrefix(line, ";"):
			continue

		case strings.HasPrefix(line, "["):
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("line %d: unterminated section header %q", lineNo, line)
			}
			section = strings.TrimSpace(line[1 : len(line)-1])

		default:
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				return nil, fmt.Errorf("line %d: expected key = value, got %q", lineNo, line)
			}
			name := strings.TrimSpace(key)
			if name == "" {
				return nil, fmt.Errorf("line %d: empty key", lineNo)
			}
			if section != "" {
				name = section + "." + name
			}
			values[name] = strings.TrimSpace(value)
		}
	}
	return values, scanner.Err()
}

// apply walks v's config-tagged fields, setting each from values or its
// tag default.
func apply(values map[string]string, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config target must be a non-nil struct pointer, got %T", v)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get(tagName)
		if tag == "" {
			continue
		}

		key, def, hasDefault := strings.Cut(tag, ",default=")
		raw, found := values[key]
		if !found {
			if !hasDefault {
				continue
			}
			raw = def
		}

		if err := setField(rv.Field(i), raw); err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}
	}
	return nil
}

func setField(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parsing %q as bool: %w", raw, err)
		}
		field.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 0, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("parsing %q as integer: %w", raw, err)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 0, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("parsing %q as unsigned integer: %w", raw, err)
		}
		field.SetUint(n)

	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}
