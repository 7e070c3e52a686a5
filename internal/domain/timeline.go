package domain

import (
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityQuoteCreated     ActivityType = "quote_created"
	ActivityQuoteUpdated     ActivityType = "quote_updated"
	ActivityRawMaterialAdded ActivityType = "raw_material_added"
	ActivityRawMaterialDel   ActivityType = "raw_material_deleted"
	ActivityMachineAdded     ActivityType = "moulding_machine_added"
	ActivityMachineDel       ActivityType = "moulding_machine_deleted"
	ActivityAssemblyAdded    ActivityType = "assembly_added"
	ActivityAssemblyDel      ActivityType = "assembly_deleted"
	ActivityAssemblyRMAdded  ActivityType = "assembly_rm_added"
	ActivityAssemblyRMDel    ActivityType = "assembly_rm_deleted"
	ActivityMfgCostAdded     ActivityType = "manufacturing_cost_added"
	ActivityMfgCostDel       ActivityType = "manufacturing_cost_deleted"
	ActivityPackagingAdded   ActivityType = "packaging_added"
	ActivityPackagingDel     ActivityType = "packaging_deleted"
	ActivityTransportAdded   ActivityType = "transport_added"
	ActivityTransportDel     ActivityType = "transport_deleted"
	ActivitySectionCompleted ActivityType = "section_completed"
	ActivityManualEntry      ActivityType = "manual_entry"
)

// TimelineEntry es el registro de auditoría de la cotización: solo se
// agrega, nunca se edita ni se borra.
type TimelineEntry struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	QuoteID     uuid.UUID    `gorm:"type:uuid;index"`
	Activity    ActivityType `gorm:"type:varchar(50);not null"`
	Description string       `gorm:"type:text"`
	ActingUser  string       `gorm:"size:140"`
	Attachment  string       `gorm:"size:255"`
	CreatedAt   time.Time
}
