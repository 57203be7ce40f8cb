// Package merge implements the single-pass entity merger: it folds an
// ordered stream of flat records into a project -> assembly -> product
// tree, recognizing repeated rows for the same logical entity purely
// through content-derived identifiers.
//
// Dataset specifics live in a Profile value passed into the one shared
// engine; there is no per-dataset engine subtype. The engine owns the
// create-on-first-sight / merge-on-repeat transition at every level and
// the profile owns how identities and entities are built from a row.
package merge

import (
	"fmt"

	"go.uber.org/zap"

	"lcaingest/pkg/model"
)

// Profile describes one dataset to the merge engine. ProjectID,
// NewProject and MergeProduct are required for any dataset; the
// assembly and product callbacks are nil for flat datasets whose rows
// are whole projects. Excluded and Finalize are optional.
type Profile struct {
	// Dataset names the source dataset in logs and errors.
	Dataset string

	// ProjectID returns the row's project identifier, either derived
	// from content or passed through from a source column.
	ProjectID func(record map[string]string) (string, error)

	// NewProject builds a project shell from the first row that carries
	// its identifier, including project_info and meta_data resolution.
	NewProject func(record map[string]string) (*model.Project, error)

	// Excluded reports whether the row's element data is flagged out of
	// scope (e.g. "emissions not included"). An excluded row still
	// registers a previously-unseen project shell; only its assembly
	// and product content is skipped.
	Excluded func(record map[string]string) (bool, error)

	// AssemblyID and ProductID return content-derived identifiers
	// scoped to the row's project and assembly respectively.
	AssemblyID func(record map[string]string) (string, error)
	ProductID  func(record map[string]string) (string, error)

	// NewAssembly and NewProduct build entities on first sight of their
	// identifier. Identity and naming fields are fixed here; repeat
	// rows only reach MergeProduct.
	NewAssembly func(record map[string]string) (*model.Assembly, error)
	NewProduct  func(record map[string]string) (*model.Product, error)

	// MergeProduct folds a repeat row into an existing product's
	// technical flow aggregate.
	MergeProduct func(product *model.Product, record map[string]string) error

	// Finalize runs once per project after the input is consumed,
	// typically to roll assembly results up into project totals.
	Finalize func(project *model.Project) error
}

func (p *Profile) validate() error {
	switch {
	case p.ProjectID == nil:
		return fmt.Errorf("profile %q: ProjectID is required", p.Dataset)
	case p.NewProject == nil:
		return fmt.Errorf("profile %q: NewProject is required", p.Dataset)
	case p.AssemblyID != nil && (p.NewAssembly == nil || p.ProductID == nil || p.NewProduct == nil || p.MergeProduct == nil):
		return fmt.Errorf("profile %q: assembly-building profiles need NewAssembly, ProductID, NewProduct and MergeProduct", p.Dataset)
	}
	return nil
}

// Merger is the per-run merge state: the insertion-ordered project
// registry. It is owned by a single goroutine for the duration of one
// pass; there is no cross-run or cross-file sharing.
type Merger struct {
	profile  *Profile
	log      *zap.SugaredLogger
	projects *model.OrderedMap[*model.Project]
	rows     int
}

// New returns a merger for one dataset profile.
func New(profile *Profile, log *zap.SugaredLogger) (*Merger, error) {
	if err := profile.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Merger{
		profile:  profile,
		log:      log,
		projects: model.NewOrderedMap[*model.Project](),
	}, nil
}

// Add folds one record into the merge state. Any failure aborts the
// run: for a given dataset and mapping version every row is assumed
// well-formed, so an error means the configuration needs fixing, not
// that the row should be skipped.
//
// The merge state is left untouched by a failing row except for the
// project shell, which may already have been registered before the
// failing field was reached.
func (m *Merger) Add(record map[string]string) error {
	index := m.rows
	m.rows++
	if err := m.add(record); err != nil {
		return fmt.Errorf("dataset %q: row %d: %w", m.profile.Dataset, index, err)
	}
	return nil
}

func (m *Merger) add(record map[string]string) error {
	projectID, err := m.profile.ProjectID(record)
	if err != nil {
		return err
	}

	project, seen := m.projects.Get(projectID)
	if !seen {
		m.log.Debugw("new project", "dataset", m.profile.Dataset, "project", projectID)
		project, err = m.profile.NewProject(record)
		if err != nil {
			return err
		}
		m.projects.Put(projectID, project)
	}

	if m.profile.Excluded != nil {
		excluded, err := m.profile.Excluded(record)
		if err != nil {
			return err
		}
		if excluded {
			m.log.Debugw("row excluded", "dataset", m.profile.Dataset, "project", projectID)
			return nil
		}
	}

	if m.profile.AssemblyID == nil {
		// Flat dataset: the whole row is the project.
		return nil
	}

	assemblyID, err := m.profile.AssemblyID(record)
	if err != nil {
		return err
	}
	assembly, ok := project.Assemblies.Get(assemblyID)
	if !ok {
		assembly, err = m.profile.NewAssembly(record)
		if err != nil {
			return err
		}
		project.Assemblies.Put(assemblyID, assembly)
	}

	productID, err := m.profile.ProductID(record)
	if err != nil {
		return err
	}
	if product, ok := assembly.Products.Get(productID); ok {
		return m.profile.MergeProduct(product, record)
	}
	product, err := m.profile.NewProduct(record)
	if err != nil {
		return err
	}
	assembly.Products.Put(productID, product)
	return nil
}

// Projects finalizes and returns the merged projects in first-seen
// order.
func (m *Merger) Projects() ([]*model.Project, error) {
	out := m.projects.Values()
	if m.profile.Finalize != nil {
		for _, project := range out {
			if err := m.profile.Finalize(project); err != nil {
				return nil, fmt.Errorf("dataset %q: project %q: %w", m.profile.Dataset, project.ID, err)
			}
		}
	}
	return out, nil
}

// Run merges an ordered record slice in one pass and returns the
// finalized projects.
func Run(profile *Profile, records []map[string]string, log *zap.SugaredLogger) ([]*model.Project, error) {
	merger, err := New(profile, log)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := merger.Add(record); err != nil {
			return nil, err
		}
	}
	return merger.Projects()
}
