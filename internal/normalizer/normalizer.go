// Package normalizer reshapes raw signup submissions into the flat field set
// the registration flow validates.
//
// Clients send the postal address in one of three shapes: flat keys
// (address_line1, city, state, pincode), bracketed form keys
// (address[line1], ...), or a nested "address" object. All three produce the
// same flat mapping.
package normalizer

import (
	"github.com/spf13/cast"
)

const (
	KeyAddressLine1 = "address_line1"
	KeyCity         = "city"
	KeyState        = "state"
	KeyPincode      = "pincode"
)

// addressParts maps the sub-key used by bracketed and nested forms to the
// canonical flat key.
var addressParts = []struct {
	part string
	flat string
}{
	{"line1", KeyAddressLine1},
	{"city", KeyCity},
	{"state", KeyState},
	{"pincode", KeyPincode},
}

// nullableFields become nil when submitted empty.
var nullableFields = []string{"date_of_birth", "profile_picture"}

// stringFields are always strings once present.
var stringFields = []string{
	KeyAddressLine1, KeyCity, KeyState, KeyPincode,
	"phone_number", "medical_history", "allergies", "emergency_contact",
}

// Normalize returns a new mapping; raw is left untouched. It never fails:
// missing required fields are reported later by validation.
func Normalize(raw map[string]interface{}) map[string]interface{} {
	data := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		data[k] = v
	}

	if hasBracketedAddress(data) {
		for _, p := range addressParts {
			key := "address[" + p.part + "]"
			data[p.flat] = toString(data[key])
			delete(data, key)
		}
	} else if nested, ok := data["address"]; ok {
		delete(data, "address")
		if address, ok := asMap(nested); ok {
			for _, p := range addressParts {
				data[p.flat] = toString(address[p.part])
			}
		}
	}

	for _, field := range nullableFields {
		if v, ok := data[field]; ok && isEmpty(v) {
			data[field] = nil
		}
	}

	for _, field := range stringFields {
		if v, ok := data[field]; ok {
			data[field] = toString(v)
		}
	}

	return data
}

func hasBracketedAddress(data map[string]interface{}) bool {
	for _, p := range addressParts {
		if _, ok := data["address["+p.part+"]"]; ok {
			return true
		}
	}
	return false
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[string]string:
		out := make(map[string]interface{}, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// toString renders scalars as strings; nil and falsy values become "".
func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
	}
	if isZeroNumber(v) {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

func isZeroNumber(v interface{}) bool {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return false
	}
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return f == 0
	}
	return false
}
