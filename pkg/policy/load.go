package policy

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/autocrate/autocrate/pkg/errors"
)

// LoadFile reads a TOML policy file and overlays it on the defaults.
// Fields absent from the file keep their default values, so a policy
// file only needs to state what it changes.
func LoadFile(path string) (*StockPolicy, error) {
	p := Default()
	if _, err := toml.DecodeFile(path, p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPolicy, err, "parse policy file %s", path)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Write encodes the policy as TOML. Used by `autocrate policy --write`
// to produce a starting point for site-specific overrides.
func (p *StockPolicy) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(p)
}

// WriteFile writes the policy as a TOML file.
func (p *StockPolicy) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return p.Write(f)
}
