package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentora/backend/internal/domain/shared"
)

// BaseModel carries the persistence fields shared by every table and
// maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts the row fields to a domain BaseEntity.
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity copies a domain BaseEntity into the row fields.
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel adds the optimistic-lock version column.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot copies a domain BaseAggregateRoot into the row.
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// TenantAggregateModel adds the owning tenant column. Every
// tenant-scoped table embeds this so repository filters can rely on
// the tenant_id index.
type TenantAggregateModel struct {
	AggregateModel
	TenantID int64 `gorm:"not null;index"`
}

// FromDomainTenantAggregateRoot copies a domain TenantAggregateRoot into the row.
func (m *TenantAggregateModel) FromDomainTenantAggregateRoot(t shared.TenantAggregateRoot) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.TenantID = t.TenantID
}

// PopulateTenantAggregateRoot fills a domain TenantAggregateRoot from the row.
func (m *TenantAggregateModel) PopulateTenantAggregateRoot(t *shared.TenantAggregateRoot) {
	t.BaseAggregateRoot.BaseEntity = m.ToDomain()
	t.BaseAggregateRoot.Version = m.Version
	t.TenantID = m.TenantID
}
