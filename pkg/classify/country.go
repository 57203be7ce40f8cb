package classify

import (
	"strings"

	"github.com/biter777/countries"

	"lcaingest/pkg/model"
)

// Country resolves a raw source value (country name, alpha-2 or alpha-3
// code) to the canonical lowercase alpha-3 variant.
//
// Country is the sole family that tolerates unmapped input: geographic
// vocabularies are externally open-ended and non-critical to impact
// correctness, so an unrecognized value degrades to CountryUnknown
// instead of failing the run.
func Country(raw string) model.Country {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.CountryUnknown
	}
	code := countries.ByName(trimmed)
	if code == countries.Unknown {
		return model.CountryUnknown
	}
	return model.Country(strings.ToLower(code.Alpha3()))
}
