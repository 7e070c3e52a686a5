package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/cotizador/internal/domain"
)

// QuoteUC concentra el ciclo de vida de la cotización: toda mutación pasa
// por acá para que el chequeo de estado, el salto de versión y la entrada de
// timeline nunca se salteen.
type QuoteUC struct {
	Quotes   domain.QuoteRepo
	Timeline domain.TimelineRepo
	Config   domain.ConfigRepo
}

func (uc *QuoteUC) CreateQuote(ctx context.Context, q *domain.Quote, actor string) error {
	if q.CustomerGroupID == uuid.Nil {
		return domain.ErrGroupRequired
	}
	if _, err := uc.Config.FindGroup(ctx, q.CustomerGroupID); err != nil {
		return fmt.Errorf("grupo de cliente: %w", err)
	}
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.Quantity <= 0 {
		q.Quantity = 1
	}
	q.Status = domain.QuoteStatusInProgress
	q.MajorVersion = 1
	q.MinorVersion = 0
	q.CreatedBy = actor

	entry := uc.entry(q, domain.ActivityQuoteCreated,
		fmt.Sprintf("Quote %q created", q.Name), actor)
	return uc.Quotes.Create(ctx, q, entry)
}

// CloneQuote arma una copia independiente de la cotización con todos sus
// hijos, en estado de edición y versión 1.0.
func (uc *QuoteUC) CloneQuote(ctx context.Context, id uuid.UUID, actor string) (*domain.Quote, error) {
	src, err := uc.Quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := *src
	cp.ID = uuid.New()
	cp.Name = src.Name + " (copy)"
	cp.Status = domain.QuoteStatusInProgress
	cp.MajorVersion = 1
	cp.MinorVersion = 0
	cp.CreatedBy = actor
	cp.CreatedAt = time.Time{}
	cp.UpdatedAt = time.Time{}

	cp.RawMaterials = append([]domain.RawMaterial(nil), src.RawMaterials...)
	for i := range cp.RawMaterials {
		cp.RawMaterials[i].ID = uuid.New()
		cp.RawMaterials[i].QuoteID = cp.ID
	}
	cp.Machines = append([]domain.MouldingMachineDetail(nil), src.Machines...)
	for i := range cp.Machines {
		cp.Machines[i].ID = uuid.New()
		cp.Machines[i].QuoteID = cp.ID
	}
	cp.Assemblies = append([]domain.Assembly(nil), src.Assemblies...)
	for i := range cp.Assemblies {
		a := &cp.Assemblies[i]
		a.ID = uuid.New()
		a.QuoteID = cp.ID
		a.RawMaterials = append([]domain.AssemblyRawMaterial(nil), a.RawMaterials...)
		for j := range a.RawMaterials {
			a.RawMaterials[j].ID = uuid.New()
			a.RawMaterials[j].AssemblyID = a.ID
		}
		a.PrintingCosts = append([]domain.ManufacturingPrintingCost(nil), a.PrintingCosts...)
		for j := range a.PrintingCosts {
			a.PrintingCosts[j].ID = uuid.New()
			a.PrintingCosts[j].AssemblyID = a.ID
		}
	}
	packMap := map[uuid.UUID]uuid.UUID{}
	cp.Packagings = append([]domain.Packaging(nil), src.Packagings...)
	for i := range cp.Packagings {
		newID := uuid.New()
		packMap[cp.Packagings[i].ID] = newID
		cp.Packagings[i].ID = newID
		cp.Packagings[i].QuoteID = cp.ID
	}
	cp.Transports = append([]domain.Transport(nil), src.Transports...)
	for i := range cp.Transports {
		cp.Transports[i].ID = uuid.New()
		cp.Transports[i].QuoteID = cp.ID
		cp.Transports[i].PackagingID = packMap[cp.Transports[i].PackagingID]
		cp.Transports[i].Packaging = nil
	}

	entry := uc.entry(&cp, domain.ActivityQuoteCreated,
		fmt.Sprintf("Quote cloned from %q v%s", src.Name, src.Version()), actor)
	if err := uc.Quotes.Create(ctx, &cp, entry); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (uc *QuoteUC) GetQuote(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	return uc.Quotes.FindByID(ctx, id)
}

func (uc *QuoteUC) ListQuotes(ctx context.Context, f domain.QuoteFilter) ([]domain.Quote, int64, error) {
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	return uc.Quotes.List(ctx, f)
}

func (uc *QuoteUC) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	return uc.Quotes.Delete(ctx, id)
}

// Summary recalcula todos los costos derivados de la cotización.
func (uc *QuoteUC) Summary(ctx context.Context, id uuid.UUID) (*domain.CostSummary, error) {
	q, err := uc.Quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s := q.Summarize()
	return &s, nil
}

// UpdateDefinition copia los campos de definición sobre la cotización
// cargada; cualquier edición estructural suma una versión menor.
func (uc *QuoteUC) UpdateDefinition(ctx context.Context, def *domain.Quote, actor string) (*domain.Quote, error) {
	q, err := uc.editable(ctx, def.ID)
	if err != nil {
		return nil, err
	}
	q.Name = def.Name
	q.ClientName = def.ClientName
	q.SAPNumber = def.SAPNumber
	q.PartNumber = def.PartNumber
	q.PartName = def.PartName
	q.AmendmentNumber = def.AmendmentNumber
	q.Description = def.Description
	q.Notes = def.Notes
	q.HandlingCharge = def.HandlingCharge
	q.ProfitPct = def.ProfitPct
	if def.Quantity > 0 {
		q.Quantity = def.Quantity
	}
	q.MinorVersion++
	entry := uc.entry(q, domain.ActivityQuoteUpdated, "Quote definition updated", actor)
	if err := uc.Quotes.Update(ctx, q, entry); err != nil {
		return nil, err
	}
	return q, nil
}

// MarkCompleted congela la cotización: salta de versión mayor y bloquea
// las secciones hasta un reopen.
func (uc *QuoteUC) MarkCompleted(ctx context.Context, id uuid.UUID, actor string) (*domain.Quote, error) {
	q, err := uc.Quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Status != domain.QuoteStatusInProgress {
		return nil, domain.ErrInvalidTransition
	}
	q.Status = domain.QuoteStatusCompleted
	q.MajorVersion++
	q.MinorVersion = 0
	entry := uc.entry(q, domain.ActivitySectionCompleted, "Quote marked as completed", actor)
	if err := uc.Quotes.Update(ctx, q, entry); err != nil {
		return nil, err
	}
	return q, nil
}

func (uc *QuoteUC) Reopen(ctx context.Context, id uuid.UUID, actor string) (*domain.Quote, error) {
	q, err := uc.Quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Status != domain.QuoteStatusCompleted {
		return nil, domain.ErrInvalidTransition
	}
	q.Status = domain.QuoteStatusInProgress
	q.MajorVersion++
	q.MinorVersion = 0
	entry := uc.entry(q, domain.ActivityQuoteUpdated, "Quote reopened for editing", actor)
	if err := uc.Quotes.Update(ctx, q, entry); err != nil {
		return nil, err
	}
	return q, nil
}

// Discard es terminal y no toca la versión.
func (uc *QuoteUC) Discard(ctx context.Context, id uuid.UUID, actor string) (*domain.Quote, error) {
	q, err := uc.Quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Status != domain.QuoteStatusCompleted {
		return nil, domain.ErrInvalidTransition
	}
	q.Status = domain.QuoteStatusDiscarded
	entry := &domain.TimelineEntry{
		ID:          uuid.New(),
		QuoteID:     q.ID,
		Activity:    domain.ActivityQuoteUpdated,
		Description: fmt.Sprintf("Quote discarded - Final version: %s", q.Version()),
		ActingUser:  actor,
	}
	if err := uc.Quotes.Update(ctx, q, entry); err != nil {
		return nil, err
	}
	return q, nil
}

func (uc *QuoteUC) SetSectionComplete(ctx context.Context, id uuid.UUID, s domain.Section, done bool, actor string) (*domain.Quote, error) {
	q, err := uc.editable(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.SetSectionComplete(s, done) {
		return nil, fmt.Errorf("sección desconocida: %s", s)
	}
	q.MinorVersion++
	entry := uc.entry(q, domain.ActivitySectionCompleted,
		fmt.Sprintf("Section %s marked complete=%t", s, done), actor)
	if err := uc.Quotes.Update(ctx, q, entry); err != nil {
		return nil, err
	}
	return q, nil
}

// --- Materia prima ---

func (uc *QuoteUC) AddRawMaterial(ctx context.Context, quoteID uuid.UUID, rm *domain.RawMaterial, actor string) error {
	if rm.ID == uuid.Nil {
		rm.ID = uuid.New()
	}
	rm.QuoteID = quoteID
	return uc.addChild(ctx, quoteID, rm, domain.ActivityRawMaterialAdded,
		fmt.Sprintf("Raw material %q added", rm.MaterialName), actor)
}

func (uc *QuoteUC) UpdateRawMaterial(ctx context.Context, quoteID uuid.UUID, rm *domain.RawMaterial, actor string) error {
	rm.QuoteID = quoteID
	return uc.updateChild(ctx, quoteID, rm, domain.ActivityQuoteUpdated,
		fmt.Sprintf("Raw material %q updated", rm.MaterialName), actor)
}

func (uc *QuoteUC) DeleteRawMaterial(ctx context.Context, quoteID, id uuid.UUID, actor string) error {
	return uc.deleteChild(ctx, quoteID, &domain.RawMaterial{ID: id, QuoteID: quoteID},
		domain.ActivityRawMaterialDel, "Raw material deleted", actor)
}

// PrefillRawMaterial arma una línea nueva con los defaults del tipo
// configurado para el grupo.
func (uc *QuoteUC) PrefillRawMaterial(ctx context.Context, materialTypeID uuid.UUID) (*domain.RawMaterial, error) {
	mt, err := uc.Config.FindMaterialType(ctx, materialTypeID)
	if err != nil {
		return nil, err
	}
	return &domain.RawMaterial{
		ID:             uuid.New(),
		MaterialTypeID: &mt.ID,
		MaterialName:   mt.Name,
		Grade:          mt.Grade,
		RMCode:         mt.Code,
		Unit:           domain.UnitKilogram,
		RMRate:         mt.Rate,
	}, nil
}

// --- Máquinas de inyección ---

func (uc *QuoteUC) AddMachine(ctx context.Context, quoteID uuid.UUID, m *domain.MouldingMachineDetail, actor string) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.QuoteID = quoteID
	return uc.addChild(ctx, quoteID, m, domain.ActivityMachineAdded,
		fmt.Sprintf("Moulding machine (%d cavity) added", m.Cavity), actor)
}

func (uc *QuoteUC) UpdateMachine(ctx context.Context, quoteID uuid.UUID, m *domain.MouldingMachineDetail, actor string) error {
	m.QuoteID = quoteID
	return uc.updateChild(ctx, quoteID, m, domain.ActivityQuoteUpdated,
		"Moulding machine updated", actor)
}

func (uc *QuoteUC) DeleteMachine(ctx context.Context, quoteID, id uuid.UUID, actor string) error {
	return uc.deleteChild(ctx, quoteID, &domain.MouldingMachineDetail{ID: id, QuoteID: quoteID},
		domain.ActivityMachineDel, "Moulding machine deleted", actor)
}

func (uc *QuoteUC) PrefillMachine(ctx context.Context, machineTypeID uuid.UUID) (*domain.MouldingMachineDetail, error) {
	mt, err := uc.Config.FindMachineType(ctx, machineTypeID)
	if err != nil {
		return nil, err
	}
	return &domain.MouldingMachineDetail{
		ID:              uuid.New(),
		MachineTypeID:   &mt.ID,
		Cavity:          1,
		ShiftRate:       mt.ShiftRate,
		ShiftRateForMTC: mt.ShiftRateForMTC,
		MTCCount:        mt.MTCCount,
	}, nil
}

// --- Ensambles ---

func (uc *QuoteUC) AddAssembly(ctx context.Context, quoteID uuid.UUID, a *domain.Assembly, actor string) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.QuoteID = quoteID
	return uc.addChild(ctx, quoteID, a, domain.ActivityAssemblyAdded,
		fmt.Sprintf("Assembly %q added", a.Name), actor)
}

func (uc *QuoteUC) UpdateAssembly(ctx context.Context, quoteID uuid.UUID, a *domain.Assembly, actor string) error {
	a.QuoteID = quoteID
	return uc.updateChild(ctx, quoteID, a, domain.ActivityQuoteUpdated,
		fmt.Sprintf("Assembly %q updated", a.Name), actor)
}

func (uc *QuoteUC) DeleteAssembly(ctx context.Context, quoteID, id uuid.UUID, actor string) error {
	return uc.deleteChild(ctx, quoteID, &domain.Assembly{ID: id, QuoteID: quoteID},
		domain.ActivityAssemblyDel, "Assembly deleted", actor)
}

func (uc *QuoteUC) AddAssemblyRawMaterial(ctx context.Context, quoteID, assemblyID uuid.UUID, item *domain.AssemblyRawMaterial, actor string) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.AssemblyID = assemblyID
	return uc.assemblyChild(ctx, quoteID, assemblyID, item, false, domain.ActivityAssemblyRMAdded,
		fmt.Sprintf("Assembly raw material %q added", item.Description), actor)
}

func (uc *QuoteUC) UpdateAssemblyRawMaterial(ctx context.Context, quoteID, assemblyID uuid.UUID, item *domain.AssemblyRawMaterial, actor string) error {
	item.AssemblyID = assemblyID
	q, err := uc.memberAssembly(ctx, quoteID, assemblyID)
	if err != nil {
		return err
	}
	q.MinorVersion++
	return uc.Quotes.UpdateChild(ctx, q, item,
		uc.entry(q, domain.ActivityQuoteUpdated,
			fmt.Sprintf("Assembly raw material %q updated", item.Description), actor))
}

func (uc *QuoteUC) DeleteAssemblyRawMaterial(ctx context.Context, quoteID, assemblyID, id uuid.UUID, actor string) error {
	return uc.assemblyChild(ctx, quoteID, assemblyID,
		&domain.AssemblyRawMaterial{ID: id, AssemblyID: assemblyID}, true,
		domain.ActivityAssemblyRMDel, "Assembly raw material deleted", actor)
}

func (uc *QuoteUC) AddManufacturingCost(ctx context.Context, quoteID, assemblyID uuid.UUID, c *domain.ManufacturingPrintingCost, actor string) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.AssemblyID = assemblyID
	return uc.assemblyChild(ctx, quoteID, assemblyID, c, false, domain.ActivityMfgCostAdded,
		fmt.Sprintf("Manufacturing cost %q added", c.Process), actor)
}

func (uc *QuoteUC) DeleteManufacturingCost(ctx context.Context, quoteID, assemblyID, id uuid.UUID, actor string) error {
	return uc.assemblyChild(ctx, quoteID, assemblyID,
		&domain.ManufacturingPrintingCost{ID: id, AssemblyID: assemblyID}, true,
		domain.ActivityMfgCostDel, "Manufacturing cost deleted", actor)
}

// --- Embalaje y transporte ---

func (uc *QuoteUC) AddPackaging(ctx context.Context, quoteID uuid.UUID, p *domain.Packaging, actor string) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.QuoteID = quoteID
	return uc.addChild(ctx, quoteID, p, domain.ActivityPackagingAdded,
		fmt.Sprintf("Packaging (%s) added", p.Category), actor)
}

func (uc *QuoteUC) UpdatePackaging(ctx context.Context, quoteID uuid.UUID, p *domain.Packaging, actor string) error {
	p.QuoteID = quoteID
	return uc.updateChild(ctx, quoteID, p, domain.ActivityQuoteUpdated,
		"Packaging updated", actor)
}

func (uc *QuoteUC) DeletePackaging(ctx context.Context, quoteID, id uuid.UUID, actor string) error {
	return uc.deleteChild(ctx, quoteID, &domain.Packaging{ID: id, QuoteID: quoteID},
		domain.ActivityPackagingDel, "Packaging deleted", actor)
}

func (uc *QuoteUC) AddTransport(ctx context.Context, quoteID uuid.UUID, t *domain.Transport, actor string) error {
	q, err := uc.editable(ctx, quoteID)
	if err != nil {
		return err
	}
	if !hasPackaging(q, t.PackagingID) {
		return errors.New("el packaging referenciado no pertenece a la cotización")
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.QuoteID = quoteID
	q.MinorVersion++
	return uc.Quotes.AddChild(ctx, q, t,
		uc.entry(q, domain.ActivityTransportAdded, "Transport added", actor))
}

func (uc *QuoteUC) UpdateTransport(ctx context.Context, quoteID uuid.UUID, t *domain.Transport, actor string) error {
	q, err := uc.editable(ctx, quoteID)
	if err != nil {
		return err
	}
	if !hasPackaging(q, t.PackagingID) {
		return errors.New("el packaging referenciado no pertenece a la cotización")
	}
	t.QuoteID = quoteID
	q.MinorVersion++
	return uc.Quotes.UpdateChild(ctx, q, t,
		uc.entry(q, domain.ActivityQuoteUpdated, "Transport updated", actor))
}

func (uc *QuoteUC) DeleteTransport(ctx context.Context, quoteID, id uuid.UUID, actor string) error {
	return uc.deleteChild(ctx, quoteID, &domain.Transport{ID: id, QuoteID: quoteID},
		domain.ActivityTransportDel, "Transport deleted", actor)
}

// --- Timeline ---

// AddManualEntry agrega una nota de auditoría; no es una edición
// estructural, así que no toca la versión ni exige estado en edición.
func (uc *QuoteUC) AddManualEntry(ctx context.Context, quoteID uuid.UUID, desc, attachment, actor string) error {
	if _, err := uc.Quotes.FindByID(ctx, quoteID); err != nil {
		return err
	}
	return uc.Timeline.Append(ctx, &domain.TimelineEntry{
		ID:          uuid.New(),
		QuoteID:     quoteID,
		Activity:    domain.ActivityManualEntry,
		Description: desc,
		Attachment:  attachment,
		ActingUser:  actor,
	})
}

func (uc *QuoteUC) TimelineFor(ctx context.Context, quoteID uuid.UUID) ([]domain.TimelineEntry, error) {
	return uc.Timeline.ListByQuote(ctx, quoteID)
}

// --- helpers ---

func (uc *QuoteUC) editable(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	q, err := uc.Quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.CanEdit() {
		return nil, domain.ErrQuoteLocked
	}
	return q, nil
}

// entry arma la entrada de timeline con la versión ya saltada.
func (uc *QuoteUC) entry(q *domain.Quote, act domain.ActivityType, desc, actor string) *domain.TimelineEntry {
	return &domain.TimelineEntry{
		ID:          uuid.New(),
		QuoteID:     q.ID,
		Activity:    act,
		Description: fmt.Sprintf("%s - Version updated to %s", desc, q.Version()),
		ActingUser:  actor,
	}
}

func (uc *QuoteUC) addChild(ctx context.Context, quoteID uuid.UUID, child any, act domain.ActivityType, desc, actor string) error {
	q, err := uc.editable(ctx, quoteID)
	if err != nil {
		return err
	}
	q.MinorVersion++
	return uc.Quotes.AddChild(ctx, q, child, uc.entry(q, act, desc, actor))
}

func (uc *QuoteUC) updateChild(ctx context.Context, quoteID uuid.UUID, child any, act domain.ActivityType, desc, actor string) error {
	q, err := uc.editable(ctx, quoteID)
	if err != nil {
		return err
	}
	q.MinorVersion++
	return uc.Quotes.UpdateChild(ctx, q, child, uc.entry(q, act, desc, actor))
}

func (uc *QuoteUC) deleteChild(ctx context.Context, quoteID uuid.UUID, child any, act domain.ActivityType, desc, actor string) error {
	q, err := uc.editable(ctx, quoteID)
	if err != nil {
		return err
	}
	q.MinorVersion++
	return uc.Quotes.DeleteChild(ctx, q, child, uc.entry(q, act, desc, actor))
}

// assemblyChild valida la pertenencia del ensamble antes de mutar un hijo.
func (uc *QuoteUC) assemblyChild(ctx context.Context, quoteID, assemblyID uuid.UUID, child any, del bool, act domain.ActivityType, desc, actor string) error {
	q, err := uc.memberAssembly(ctx, quoteID, assemblyID)
	if err != nil {
		return err
	}
	q.MinorVersion++
	entry := uc.entry(q, act, desc, actor)
	if del {
		return uc.Quotes.DeleteChild(ctx, q, child, entry)
	}
	return uc.Quotes.AddChild(ctx, q, child, entry)
}

func (uc *QuoteUC) memberAssembly(ctx context.Context, quoteID, assemblyID uuid.UUID) (*domain.Quote, error) {
	q, err := uc.editable(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	for i := range q.Assemblies {
		if q.Assemblies[i].ID == assemblyID {
			return q, nil
		}
	}
	return nil, errors.New("el ensamble no pertenece a la cotización")
}

func hasPackaging(q *domain.Quote, id uuid.UUID) bool {
	for i := range q.Packagings {
		if q.Packagings[i].ID == id {
			return true
		}
	}
	return false
}
