package fixture

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// fixtureSchema constrains fixture files before any row is written:
// non-empty names and emails, strictly positive prices, non-negative
// stock, and a non-empty product list per order.
const fixtureSchema = `
#Customer: {
	name:   string & !=""
	email:  string & !=""
	phone?: string
}

#Product: {
	name:   string & !=""
	price:  number & >0
	stock?: int & >=0
}

#Order: {
	customer_email: string & !=""
	products: [string, ...string]
}

customers?: [...#Customer]
products?: [...#Product]
orders?: [...#Order]
`

// Validate checks raw fixture file contents against the CUE schema.
// Returns nil if the file conforms; otherwise an error describing the
// first constraint violation.
func Validate(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	cctx := cuecontext.New()

	schema := cctx.CompileString(fixtureSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling fixture schema: %w", err)
	}

	value := cctx.Encode(raw)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encoding fixture data: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("fixture does not match schema: %w", err)
	}
	return nil
}
