// Package output flattens merged entity graphs into the canonical
// serializable documents handed to persistence. It guarantees
// structural completeness — every required canonical field populated,
// explicit null where a value is genuinely unknown — but leaves the
// final write to the caller's plumbing.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"lcaingest/pkg/model"
)

// Prepare enforces the canonical structural contract on a merged
// project in place: container fields are never nil, the schema version
// is stamped, and enum fields left unset degrade to their explicit
// unknown variants rather than empty strings.
func Prepare(p *model.Project) {
	if p.FormatVersion == "" {
		p.FormatVersion = model.FormatVersion
	}
	if p.Assemblies == nil {
		p.Assemblies = model.NewAssemblyMap()
	}
	if p.LifeCycleStages == nil {
		p.LifeCycleStages = []model.LifeCycleStage{}
	}
	if p.ImpactCategories == nil {
		p.ImpactCategories = []model.ImpactCategory{}
	}
	if p.ProjectPhase == "" {
		p.ProjectPhase = model.PhaseOther
	}
	if p.Location.Country == "" {
		p.Location.Country = model.CountryUnknown
	}
	if p.ProjectInfo == nil {
		p.ProjectInfo = model.NewProjectInfo()
	}
	if p.ProjectInfo.BuildingType == "" {
		p.ProjectInfo.BuildingType = model.BuildingTypeUnknown
	}
	if len(p.ProjectInfo.BuildingTypology) == 0 {
		p.ProjectInfo.BuildingTypology = []model.BuildingTypology{model.TypologyUnknown}
	}
	if p.ProjectInfo.GeneralEnergyClass == "" {
		p.ProjectInfo.GeneralEnergyClass = model.EnergyClassUnknown
	}
	if p.ProjectInfo.RoofType == "" {
		p.ProjectInfo.RoofType = model.RoofUnknown
	}
	if p.ProjectInfo.GrossFloorArea.Unit == "" {
		p.ProjectInfo.GrossFloorArea.Unit = model.UnitM2
	}

	for _, assembly := range p.Assemblies.Values() {
		if assembly.Products == nil {
			assembly.Products = model.NewProductMap()
		}
		if assembly.Type == "" {
			assembly.Type = "actual"
		}
		for _, product := range assembly.Products.Values() {
			if product.Type == "" {
				product.Type = "actual"
			}
			if product.ImpactData != nil && product.ImpactData.FormatVersion == "" {
				product.ImpactData.FormatVersion = model.FormatVersion
			}
		}
	}
}

// Marshal prepares the projects and renders them as an indented JSON
// array in first-seen order.
func Marshal(projects []*model.Project) ([]byte, error) {
	for _, p := range projects {
		Prepare(p)
	}
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling projects: %w", err)
	}
	return data, nil
}

// WriteFile marshals the projects and writes the document to path.
func WriteFile(path string, projects []*model.Project) error {
	data, err := Marshal(projects)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
