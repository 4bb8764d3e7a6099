package spec

import (
	"github.com/BurntSushi/toml"

	"github.com/autocrate/autocrate/pkg/errors"
)

// LoadFile reads a TOML crate spec and validates it.
func LoadFile(path string) (*CrateSpec, error) {
	var s CrateSpec
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "parse crate spec %s", path)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
