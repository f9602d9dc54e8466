package catalog

import _ "embed"

//go:embed catalog.yaml
var defaultYAML []byte

// Default returns the catalog compiled into the binary. The embedded file
// is validated by the package tests, so a parse failure here means a
// broken build rather than bad runtime input.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic("catalog: embedded default is invalid: " + err.Error())
	}
	return c
}
