package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix namespaces overrides so they win over unprefixed variables
// shared with other tooling (DB_HOST, LOG_LEVEL, ...).
const EnvPrefix = "SUPERVISION_"

// envLookup resolves one variable name
type envLookup func(key string) (string, bool)

// prefixedEnv prefers SUPERVISION_<key> and falls back to the bare key
func prefixedEnv(key string) (string, bool) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		return v, true
	}
	return os.LookupEnv(key)
}

// envOverride is one `env`-tagged leaf of the config tree
type envOverride struct {
	path  string // yaml path, e.g. "database.max_conns"
	key   string // variable name without prefix
	field reflect.Value
}

// applyEnv copies every set variable onto its tagged field of cfg and
// returns the variable names that were applied, in declaration order.
func applyEnv(cfg any, lookup envLookup) ([]string, error) {
	root := reflect.ValueOf(cfg)
	if root.Kind() != reflect.Pointer || root.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("env overrides need a pointer to a struct, got %T", cfg)
	}

	var applied []string
	for _, o := range collectOverrides(root.Elem(), "") {
		raw, ok := lookup(o.key)
		if !ok {
			continue
		}
		if err := assign(o.field, strings.TrimSpace(raw)); err != nil {
			return applied, fmt.Errorf("%s (from %s): %w", o.path, o.key, err)
		}
		applied = append(applied, o.key)
	}
	return applied, nil
}

// collectOverrides flattens nested sections into a list of tagged leaves
func collectOverrides(v reflect.Value, parent string) []envOverride {
	var out []envOverride
	t := v.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		path := yamlName(sf)
		if parent != "" {
			path = parent + "." + path
		}

		fv := v.Field(i)
		if fv.Kind() == reflect.Struct {
			out = append(out, collectOverrides(fv, path)...)
			continue
		}

		if key := sf.Tag.Get("env"); key != "" {
			out = append(out, envOverride{path: path, key: key, field: fv})
		}
	}
	return out
}

// yamlName is the field's yaml key, or its Go name when untagged
func yamlName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("yaml"), ",")
	if name == "" || name == "-" {
		return sf.Name
	}
	return name
}

var durationType = reflect.TypeOf(time.Duration(0))

// assign parses raw into field according to the field's kind
func assign(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return fmt.Errorf("field is not settable")
	}

	// Duration is an int64 underneath, so it has to be caught before the int case
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", raw, err)
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid number %q", raw)
		}
		field.SetFloat(f)
	case reflect.Slice:
		// comma separated list, blanks dropped
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice of %s", field.Type().Elem())
		}
		var items []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		field.Set(reflect.ValueOf(items).Convert(field.Type()))
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}
