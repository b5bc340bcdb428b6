package limits

import (
	"context"
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlSource struct {
	path string
}

// NewYAMLSource returns a Source reading the plan catalog from a YAML file:
//
//	plans:
//	  - id: basic
//	    name: Basic
//	    limits:
//	      products: 200
//	      users: 5
//	    features: [inventory, sales]
//	    trial_days: 14
func NewYAMLSource(path string) Source {
	return &yamlSource{path: path}
}

func (s *yamlSource) Load(ctx context.Context) (map[string]Plan, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var doc struct {
		Plans []Plan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[string]Plan, len(doc.Plans))
	for _, plan := range doc.Plans {
		if plan.ID == "" {
			return nil, errors.Join(ErrInvalidPlanConfiguration, errors.New("plan without id"))
		}
		plans[plan.ID] = plan
	}
	return plans, nil
}
