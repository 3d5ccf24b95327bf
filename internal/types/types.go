// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Trust sources a Principal can be resolved from.
const (
	ProviderConsumer   = "consumer-idp"
	ProviderEnterprise = "enterprise-idp"
	ProviderDevice     = "device"
)

// Roles assignable to users.
const (
	RoleAdmin    = "admin"
	RoleParent   = "parent"
	RoleEmployee = "employee"
	RoleChild    = "child"
)

// Tenant subscription statuses.
const (
	SubscriptionNone     = "none"
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

// Device statuses.
const (
	DeviceActive   = "active"
	DeviceInactive = "inactive"
	DeviceBlocked  = "blocked"
)

// Invite types.
const (
	InviteTypeParent = "parent"
	InviteTypeDevice = "device"
)

// Principal is the request-scoped identity produced by authentication.
// It is reconstructed on every request and never persisted as the
// authority; the users and devices rows are authoritative.
type Principal struct {
	Subject    string `json:"subject"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	TenantID   string `json:"tenant_id,omitempty"`
	Role       string `json:"role"`
	Provider   string `json:"provider"`
	JobTitle   string `json:"job_title,omitempty"`
	Department string `json:"department,omitempty"`
}

type Tenant struct {
	ID                 string     `db:"id" json:"id"`
	Name               string     `db:"name" json:"name"`
	SubscriptionStatus string     `db:"subscription_status" json:"subscription_status"`
	PlanID             string     `db:"plan_id" json:"plan_id,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at" json:"-"`
}

// TenantCounts is a Tenant annotated with live user and device counts.
type TenantCounts struct {
	Tenant
	UserCount   int64 `json:"user_count"`
	DeviceCount int64 `json:"device_count"`
}

type User struct {
	ID             string     `db:"id" json:"id"`
	TenantID       string     `db:"tenant_id" json:"tenant_id"`
	Name           string     `db:"name" json:"name"`
	Email          string     `db:"email" json:"email"`
	ExternalAuthID string     `db:"external_auth_id" json:"external_auth_id"`
	AuthProvider   string     `db:"auth_provider" json:"auth_provider"`
	Role           string     `db:"role" json:"role"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at" json:"-"`
}

type Device struct {
	ID          string     `db:"id" json:"id"`
	TenantID    string     `db:"tenant_id" json:"tenant_id"`
	OwnerUserID string     `db:"owner_user_id" json:"owner_user_id,omitempty"`
	DeviceUID   string     `db:"device_uid" json:"device_uid"`
	DeviceName  string     `db:"device_name" json:"device_name"`
	OS          string     `db:"os" json:"os,omitempty"`
	OSVersion   string     `db:"os_version" json:"os_version,omitempty"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at" json:"-"`
}

type Invite struct {
	ID              string     `db:"id" json:"id"`
	TenantID        string     `db:"tenant_id" json:"tenant_id"`
	Code            string     `db:"invite_code" json:"invite_code"`
	Type            string     `db:"invite_type" json:"invite_type"`
	InviteeEmail    string     `db:"invitee_email" json:"invitee_email,omitempty"`
	CreatedBy       string     `db:"created_by" json:"created_by"`
	ExpiresAt       time.Time  `db:"expires_at" json:"expires_at"`
	UsedAt          *time.Time `db:"used_at" json:"used_at,omitempty"`
	CreatedUserID   string     `db:"created_user_id" json:"-"`
	CreatedDeviceID string     `db:"created_device_id" json:"-"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// ShadowIdentity is a non-authoritative, write-through copy of an
// externally verified identity. Upserts are best effort and must never
// gate an authentication decision.
type ShadowIdentity struct {
	Provider   string    `db:"provider"`
	ExternalID string    `db:"external_id"`
	Email      string    `db:"email"`
	Name       string    `db:"name"`
	Role       string    `db:"role"`
	FirstSeen  time.Time `db:"first_seen"`
	LastSeen   time.Time `db:"last_seen"`
}
