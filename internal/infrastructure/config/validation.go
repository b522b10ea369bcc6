package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig checks the loaded configuration against its struct tags.
// Every failing field is reported at once, so one run of a broken config
// surfaces all of its problems.
func ValidateConfig(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	lines := make([]string, len(verrs))
	for i, e := range verrs {
		lines[i] = fmt.Sprintf("%s: failed rule '%s' (value: '%v')",
			e.Namespace(), e.Tag(), e.Value())
	}
	return fmt.Errorf("%s", strings.Join(lines, "; "))
}
