package loader

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

// ParseRequirementsYAML reads requirements from a YAML document:
//
//	work_hours: {start: 9, end: 17}
//	shift_lengths: {min: 3, max: 8}
//	critical_minimums:
//	  Cashier: 1
//	  Floor: 2
func ParseRequirementsYAML(r io.Reader) (*models.EmployerRequirements, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var reqs models.EmployerRequirements
	if err := dec.Decode(&reqs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := reqs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &reqs, nil
}
