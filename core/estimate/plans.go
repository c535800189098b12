package estimate

import "construction-cost/core/types"

// EstimatePlans estimates spec under every plan, in plan order.
// The plan set on spec is ignored.
func EstimatePlans(spec types.BuildingSpec, rates types.MaterialRates) ([]*types.EstimateResult, error) {
	results := make([]*types.EstimateResult, 0, len(types.Plans))
	for _, p := range types.Plans {
		spec.Plan = p
		r, err := Estimate(spec, rates)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Find returns the result for plan, or nil
func Find(results []*types.EstimateResult, plan types.Plan) *types.EstimateResult {
	plan = plan.OrDefault()
	for _, r := range results {
		if r.Plan == plan {
			return r
		}
	}
	return nil
}
