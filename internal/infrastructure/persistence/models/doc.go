// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Persistence models contain all GORM annotations and table mappings
// 2. Mappers convert between domain entities and persistence models
// 3. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel, AccountAggregateModel)
// - billing.go: Billing context models (Renter, LedgerEntry, RenterEvent)
// - account.go: Account context models (BusinessProfile, Invite)
package models
