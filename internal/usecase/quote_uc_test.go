package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phenrril/cotizador/internal/domain"
)

type fakeQuoteRepo struct {
	quotes  map[uuid.UUID]*domain.Quote
	entries []*domain.TimelineEntry
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: map[uuid.UUID]*domain.Quote{}}
}

func (r *fakeQuoteRepo) Create(_ context.Context, q *domain.Quote, e *domain.TimelineEntry) error {
	r.quotes[q.ID] = q
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeQuoteRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Quote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return q, nil
}

func (r *fakeQuoteRepo) List(_ context.Context, _ domain.QuoteFilter) ([]domain.Quote, int64, error) {
	var list []domain.Quote
	for _, q := range r.quotes {
		list = append(list, *q)
	}
	return list, int64(len(list)), nil
}

func (r *fakeQuoteRepo) Update(_ context.Context, q *domain.Quote, e *domain.TimelineEntry) error {
	r.quotes[q.ID] = q
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeQuoteRepo) AddChild(_ context.Context, q *domain.Quote, child any, e *domain.TimelineEntry) error {
	switch c := child.(type) {
	case *domain.RawMaterial:
		q.RawMaterials = append(q.RawMaterials, *c)
	case *domain.MouldingMachineDetail:
		q.Machines = append(q.Machines, *c)
	case *domain.Assembly:
		q.Assemblies = append(q.Assemblies, *c)
	case *domain.AssemblyRawMaterial:
		for i := range q.Assemblies {
			if q.Assemblies[i].ID == c.AssemblyID {
				q.Assemblies[i].RawMaterials = append(q.Assemblies[i].RawMaterials, *c)
			}
		}
	case *domain.ManufacturingPrintingCost:
		for i := range q.Assemblies {
			if q.Assemblies[i].ID == c.AssemblyID {
				q.Assemblies[i].PrintingCosts = append(q.Assemblies[i].PrintingCosts, *c)
			}
		}
	case *domain.Packaging:
		q.Packagings = append(q.Packagings, *c)
	case *domain.Transport:
		q.Transports = append(q.Transports, *c)
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeQuoteRepo) UpdateChild(_ context.Context, q *domain.Quote, _ any, e *domain.TimelineEntry) error {
	r.quotes[q.ID] = q
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeQuoteRepo) DeleteChild(_ context.Context, q *domain.Quote, child any, e *domain.TimelineEntry) error {
	if c, ok := child.(*domain.RawMaterial); ok {
		kept := q.RawMaterials[:0]
		for _, rm := range q.RawMaterials {
			if rm.ID != c.ID {
				kept = append(kept, rm)
			}
		}
		q.RawMaterials = kept
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeQuoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.quotes, id)
	return nil
}

type fakeTimelineRepo struct{ entries []*domain.TimelineEntry }

func (r *fakeTimelineRepo) Append(_ context.Context, e *domain.TimelineEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeTimelineRepo) ListByQuote(_ context.Context, id uuid.UUID) ([]domain.TimelineEntry, error) {
	var out []domain.TimelineEntry
	for _, e := range r.entries {
		if e.QuoteID == id {
			out = append(out, *e)
		}
	}
	return out, nil
}

type fakeConfigRepo struct {
	groups    map[uuid.UUID]*domain.CustomerGroup
	materials map[uuid.UUID]*domain.MaterialType
	machines  map[uuid.UUID]*domain.MouldingMachineType
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{
		groups:    map[uuid.UUID]*domain.CustomerGroup{},
		materials: map[uuid.UUID]*domain.MaterialType{},
		machines:  map[uuid.UUID]*domain.MouldingMachineType{},
	}
}

func (r *fakeConfigRepo) SaveGroup(_ context.Context, g *domain.CustomerGroup) error {
	r.groups[g.ID] = g
	return nil
}

func (r *fakeConfigRepo) FindGroup(_ context.Context, id uuid.UUID) (*domain.CustomerGroup, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

func (r *fakeConfigRepo) ListGroups(_ context.Context) ([]domain.CustomerGroup, error) {
	return nil, nil
}

func (r *fakeConfigRepo) DeleteGroup(_ context.Context, id uuid.UUID) error {
	delete(r.groups, id)
	return nil
}

func (r *fakeConfigRepo) SaveMaterialType(_ context.Context, t *domain.MaterialType) error {
	r.materials[t.ID] = t
	return nil
}

func (r *fakeConfigRepo) FindMaterialType(_ context.Context, id uuid.UUID) (*domain.MaterialType, error) {
	t, ok := r.materials[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (r *fakeConfigRepo) ListMaterialTypes(_ context.Context, _ uuid.UUID) ([]domain.MaterialType, error) {
	return nil, nil
}

func (r *fakeConfigRepo) DeleteMaterialType(_ context.Context, id uuid.UUID) error {
	delete(r.materials, id)
	return nil
}

func (r *fakeConfigRepo) SaveMachineType(_ context.Context, t *domain.MouldingMachineType) error {
	r.machines[t.ID] = t
	return nil
}

func (r *fakeConfigRepo) FindMachineType(_ context.Context, id uuid.UUID) (*domain.MouldingMachineType, error) {
	t, ok := r.machines[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (r *fakeConfigRepo) ListMachineTypes(_ context.Context, _ uuid.UUID) ([]domain.MouldingMachineType, error) {
	return nil, nil
}

func (r *fakeConfigRepo) DeleteMachineType(_ context.Context, id uuid.UUID) error {
	delete(r.machines, id)
	return nil
}

func (r *fakeConfigRepo) SaveAssemblyType(_ context.Context, _ *domain.AssemblyType) error { return nil }
func (r *fakeConfigRepo) ListAssemblyTypes(_ context.Context, _ uuid.UUID) ([]domain.AssemblyType, error) {
	return nil, nil
}
func (r *fakeConfigRepo) DeleteAssemblyType(_ context.Context, _ uuid.UUID) error { return nil }
func (r *fakeConfigRepo) SavePackagingType(_ context.Context, _ *domain.PackagingType) error {
	return nil
}
func (r *fakeConfigRepo) ListPackagingTypes(_ context.Context, _ uuid.UUID) ([]domain.PackagingType, error) {
	return nil, nil
}
func (r *fakeConfigRepo) DeletePackagingType(_ context.Context, _ uuid.UUID) error { return nil }

func newTestUC() (*QuoteUC, *fakeQuoteRepo, *fakeTimelineRepo, uuid.UUID) {
	quotes := newFakeQuoteRepo()
	timeline := &fakeTimelineRepo{}
	config := newFakeConfigRepo()
	groupID := uuid.New()
	config.groups[groupID] = &domain.CustomerGroup{ID: groupID, Name: "General", Value: "general"}
	return &QuoteUC{Quotes: quotes, Timeline: timeline, Config: config}, quotes, timeline, groupID
}

func mustCreate(t *testing.T, uc *QuoteUC, groupID uuid.UUID) *domain.Quote {
	t.Helper()
	q := &domain.Quote{Name: "tapa frontal", CustomerGroupID: groupID, Quantity: 1000}
	if err := uc.CreateQuote(context.Background(), q, "ana@example.com"); err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}
	return q
}

func TestCreateQuoteRequiresGroup(t *testing.T) {
	uc, _, _, _ := newTestUC()
	err := uc.CreateQuote(context.Background(), &domain.Quote{Name: "x"}, "ana")
	if !errors.Is(err, domain.ErrGroupRequired) {
		t.Fatalf("err = %v, want ErrGroupRequired", err)
	}
	err = uc.CreateQuote(context.Background(), &domain.Quote{Name: "x", CustomerGroupID: uuid.New()}, "ana")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestQuoteLifecycleVersions(t *testing.T) {
	uc, _, _, groupID := newTestUC()
	ctx := context.Background()
	q := mustCreate(t, uc, groupID)
	if q.Version() != "1.0" {
		t.Fatalf("versión inicial %s, want 1.0", q.Version())
	}

	// Tres ediciones estructurales suben la versión menor.
	if err := uc.AddRawMaterial(ctx, q.ID, &domain.RawMaterial{MaterialName: "PP", Unit: domain.UnitKilogram}, "ana"); err != nil {
		t.Fatalf("AddRawMaterial: %v", err)
	}
	if err := uc.AddMachine(ctx, q.ID, &domain.MouldingMachineDetail{Cavity: 2}, "ana"); err != nil {
		t.Fatalf("AddMachine: %v", err)
	}
	if err := uc.AddPackaging(ctx, q.ID, &domain.Packaging{Lifecycle: 10, PartsPerPolybag: 5}, "ana"); err != nil {
		t.Fatalf("AddPackaging: %v", err)
	}
	if q.Version() != "1.3" {
		t.Fatalf("tras 3 ediciones versión %s, want 1.3", q.Version())
	}

	if _, err := uc.MarkCompleted(ctx, q.ID, "ana"); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if q.Version() != "2.0" || q.Status != domain.QuoteStatusCompleted {
		t.Fatalf("tras completar: versión %s estado %s", q.Version(), q.Status)
	}

	err := uc.AddRawMaterial(ctx, q.ID, &domain.RawMaterial{MaterialName: "ABS"}, "ana")
	if !errors.Is(err, domain.ErrQuoteLocked) {
		t.Fatalf("edición sobre completada: err = %v, want ErrQuoteLocked", err)
	}

	if _, err := uc.Reopen(ctx, q.ID, "ana"); err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	if q.Version() != "3.0" || q.Status != domain.QuoteStatusInProgress {
		t.Fatalf("tras reabrir: versión %s estado %s", q.Version(), q.Status)
	}
	if err := uc.AddRawMaterial(ctx, q.ID, &domain.RawMaterial{MaterialName: "ABS"}, "ana"); err != nil {
		t.Fatalf("edición tras reopen: %v", err)
	}
	if q.Version() != "3.1" {
		t.Fatalf("versión %s, want 3.1", q.Version())
	}

	// Discard solo vale desde completed y no toca la versión.
	if _, err := uc.Discard(ctx, q.ID, "ana"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("discard desde in_progress: err = %v, want ErrInvalidTransition", err)
	}
	if _, err := uc.MarkCompleted(ctx, q.ID, "ana"); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if q.Version() != "4.0" {
		t.Fatalf("versión %s, want 4.0", q.Version())
	}
	if _, err := uc.Discard(ctx, q.ID, "ana"); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if q.Status != domain.QuoteStatusDiscarded || q.Version() != "4.0" {
		t.Fatalf("tras descartar: versión %s estado %s", q.Version(), q.Status)
	}
	if _, err := uc.Reopen(ctx, q.ID, "ana"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("reopen desde discarded: err = %v, want ErrInvalidTransition", err)
	}
}

func TestTimelineRecordsVersionedDescriptions(t *testing.T) {
	uc, quotes, _, groupID := newTestUC()
	ctx := context.Background()
	q := mustCreate(t, uc, groupID)
	if err := uc.AddRawMaterial(ctx, q.ID, &domain.RawMaterial{MaterialName: "PP"}, "ana"); err != nil {
		t.Fatalf("AddRawMaterial: %v", err)
	}

	if len(quotes.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(quotes.entries))
	}
	last := quotes.entries[len(quotes.entries)-1]
	if last.Activity != domain.ActivityRawMaterialAdded {
		t.Fatalf("activity = %s", last.Activity)
	}
	if !strings.Contains(last.Description, "Version updated to 1.1") {
		t.Fatalf("descripción sin versión posterior al salto: %q", last.Description)
	}
	if last.ActingUser != "ana" {
		t.Fatalf("acting user = %q", last.ActingUser)
	}
}

func TestTransportRequiresOwnPackaging(t *testing.T) {
	uc, _, _, groupID := newTestUC()
	ctx := context.Background()
	q := mustCreate(t, uc, groupID)

	err := uc.AddTransport(ctx, q.ID, &domain.Transport{PackagingID: uuid.New()}, "ana")
	if err == nil {
		t.Fatal("transporte con packaging ajeno aceptado")
	}

	p := &domain.Packaging{Lifecycle: 5, PartsPerPolybag: 4}
	if err := uc.AddPackaging(ctx, q.ID, p, "ana"); err != nil {
		t.Fatalf("AddPackaging: %v", err)
	}
	if err := uc.AddTransport(ctx, q.ID, &domain.Transport{PackagingID: p.ID, PartsPerBox: 10}, "ana"); err != nil {
		t.Fatalf("AddTransport: %v", err)
	}
}

func TestAssemblyChildMembership(t *testing.T) {
	uc, _, _, groupID := newTestUC()
	ctx := context.Background()
	q := mustCreate(t, uc, groupID)

	a := &domain.Assembly{Name: "subconjunto"}
	if err := uc.AddAssembly(ctx, q.ID, a, "ana"); err != nil {
		t.Fatalf("AddAssembly: %v", err)
	}

	item := &domain.AssemblyRawMaterial{Description: "tornillo", ProductionQty: 4, CostPerUnit: decimal.RequireFromString("100")}
	if err := uc.AddAssemblyRawMaterial(ctx, q.ID, uuid.New(), item, "ana"); err == nil {
		t.Fatal("insumo sobre ensamble ajeno aceptado")
	}
	if err := uc.AddAssemblyRawMaterial(ctx, q.ID, a.ID, item, "ana"); err != nil {
		t.Fatalf("AddAssemblyRawMaterial: %v", err)
	}
}

func TestCloneQuoteResetsVersionAndRelinks(t *testing.T) {
	uc, quotes, _, groupID := newTestUC()
	ctx := context.Background()
	q := mustCreate(t, uc, groupID)

	p := &domain.Packaging{Lifecycle: 10, PartsPerPolybag: 5}
	if err := uc.AddPackaging(ctx, q.ID, p, "ana"); err != nil {
		t.Fatalf("AddPackaging: %v", err)
	}
	if err := uc.AddTransport(ctx, q.ID, &domain.Transport{PackagingID: p.ID, PartsPerBox: 10}, "ana"); err != nil {
		t.Fatalf("AddTransport: %v", err)
	}
	if _, err := uc.MarkCompleted(ctx, q.ID, "ana"); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	cp, err := uc.CloneQuote(ctx, q.ID, "bruno")
	if err != nil {
		t.Fatalf("CloneQuote: %v", err)
	}
	if cp.ID == q.ID {
		t.Fatal("la copia comparte ID con el original")
	}
	if cp.Name != q.Name+" (copy)" {
		t.Fatalf("nombre de la copia: %q", cp.Name)
	}
	if cp.Version() != "1.0" || cp.Status != domain.QuoteStatusInProgress {
		t.Fatalf("copia en %s/%s, want 1.0/in_progress", cp.Version(), cp.Status)
	}
	if len(cp.Packagings) != 1 || len(cp.Transports) != 1 {
		t.Fatalf("hijos: %d packagings, %d transports", len(cp.Packagings), len(cp.Transports))
	}
	if cp.Packagings[0].ID == q.Packagings[0].ID {
		t.Fatal("la copia comparte IDs de hijos con el original")
	}
	if cp.Transports[0].PackagingID != cp.Packagings[0].ID {
		t.Fatalf("transporte clonado referencia %s, packaging clonado %s", cp.Transports[0].PackagingID, cp.Packagings[0].ID)
	}

	// El original queda como estaba.
	orig, _ := quotes.FindByID(ctx, q.ID)
	if orig.Status != domain.QuoteStatusCompleted || orig.Version() != "2.0" {
		t.Fatalf("original alterado: %s %s", orig.Version(), orig.Status)
	}

	last := quotes.entries[len(quotes.entries)-1]
	if last.QuoteID != cp.ID || last.Activity != domain.ActivityQuoteCreated {
		t.Fatalf("entrada de clonado: %+v", last)
	}
	if !strings.Contains(last.Description, "cloned from") {
		t.Fatalf("descripción: %q", last.Description)
	}
}

func TestManualEntryDoesNotBumpVersion(t *testing.T) {
	uc, _, timeline, groupID := newTestUC()
	ctx := context.Background()
	q := mustCreate(t, uc, groupID)
	if _, err := uc.MarkCompleted(ctx, q.ID, "ana"); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	before := q.Version()

	// La nota manual entra aunque la cotización esté congelada.
	if err := uc.AddManualEntry(ctx, q.ID, "llamada con el cliente", "", "ana"); err != nil {
		t.Fatalf("AddManualEntry: %v", err)
	}
	if q.Version() != before {
		t.Fatalf("versión cambió de %s a %s", before, q.Version())
	}
	entries, _ := timeline.ListByQuote(ctx, q.ID)
	if len(entries) != 1 || entries[0].Activity != domain.ActivityManualEntry {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestPrefillRawMaterial(t *testing.T) {
	uc, _, _, _ := newTestUC()
	cfg := uc.Config.(*fakeConfigRepo)
	mt := &domain.MaterialType{ID: uuid.New(), Name: "Polipropileno", Grade: "H110MA", Code: "PP-H110MA", Rate: decimal.RequireFromString("98.50")}
	cfg.materials[mt.ID] = mt

	rm, err := uc.PrefillRawMaterial(context.Background(), mt.ID)
	if err != nil {
		t.Fatalf("PrefillRawMaterial: %v", err)
	}
	if rm.MaterialName != mt.Name || rm.RMCode != mt.Code || !rm.RMRate.Equal(mt.Rate) {
		t.Fatalf("prefill incompleto: %+v", rm)
	}
	if rm.Unit != domain.UnitKilogram {
		t.Fatalf("unidad por defecto %s, want kg", rm.Unit)
	}
}
