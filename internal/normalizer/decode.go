package normalizer

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode copies a raw field mapping into target, converting scalars to the
// field types. Unknown keys are ignored.
func Decode(raw map[string]interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode fields: %w", err)
	}
	return nil
}
