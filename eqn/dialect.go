package eqn

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Dialect selects variations in how the equation language is interpreted. The
// zero value is the default dialect.
type Dialect struct {
	// StrictDisjunction makes the OR connective build a true disjunction.
	// In the default dialect OR is accepted but treated as a conjunction,
	// matching systems that read every listed equation as a requirement.
	StrictDisjunction bool `toml:"strict-disjunction"`
}

// LoadDialectFile reads a dialect definition from a TOML file.
func LoadDialectFile(path string) (Dialect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dialect{}, fmt.Errorf("could not read dialect file: %w", err)
	}

	var d Dialect
	if err := toml.Unmarshal(data, &d); err != nil {
		return Dialect{}, fmt.Errorf("malformed dialect file %s: %w", path, err)
	}
	return d, nil
}
