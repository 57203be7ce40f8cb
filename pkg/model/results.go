package model

import "sort"

// CalculateResults rolls product-level impact data up into assembly and
// project results. Assembly results are the quantity-weighted sum of
// their products' technical flows; project results are the
// quantity-weighted sum of assembly results. Entities that already
// carry results (pre-aggregated source totals) keep them untouched.
//
// The project's impact category and life cycle stage lists are derived
// from the rolled-up matrix when they were not set by the caller.
func CalculateResults(p *Project) {
	if p.Assemblies == nil {
		return
	}

	total := Impacts{}
	for _, assembly := range p.Assemblies.Values() {
		if assembly.Results == nil {
			assembly.Results = rollupAssembly(assembly)
		}
		for category, cells := range assembly.Results {
			for stage, value := range cells {
				total.Add(category, stage, value*assembly.Quantity)
			}
		}
	}

	if p.Results == nil && !total.Empty() {
		p.Results = total
	}
	if len(p.ImpactCategories) == 0 {
		p.ImpactCategories = p.Results.Categories()
	}
	if len(p.LifeCycleStages) == 0 {
		p.LifeCycleStages = p.Results.Stages()
	}
}

func rollupAssembly(a *Assembly) Impacts {
	results := Impacts{}
	if a.Products == nil {
		return results
	}
	for _, product := range a.Products.Values() {
		if product.ImpactData == nil {
			continue
		}
		for category, cells := range product.ImpactData.Impacts {
			for stage, value := range cells {
				results.Add(category, stage, value*product.Quantity)
			}
		}
	}
	return results
}

// Categories returns the impact categories holding at least one cell,
// sorted for stable output.
func (im Impacts) Categories() []ImpactCategory {
	out := make([]ImpactCategory, 0, len(im))
	for category, cells := range im {
		if len(cells) > 0 {
			out = append(out, category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Stages returns every life cycle stage present in the matrix, sorted
// for stable output.
func (im Impacts) Stages() []LifeCycleStage {
	seen := make(map[LifeCycleStage]bool)
	for _, cells := range im {
		for stage := range cells {
			seen[stage] = true
		}
	}
	out := make([]LifeCycleStage, 0, len(seen))
	for stage := range seen {
		out = append(out, stage)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
