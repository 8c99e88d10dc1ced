// Package models contains shared data models used across the Bhumi codebase.
package models

import "time"

// UserProfile is the single persisted entity: one record per account, keyed
// by email. Raw passwords are never stored; only the bcrypt hash.
type UserProfile struct {
	Email            string    `db:"email"             json:"email"              bson:"email"`
	Name             string    `db:"name"              json:"name"               bson:"name"`
	Location         string    `db:"location"          json:"location,omitempty" bson:"location,omitempty"`
	Phone            string    `db:"phone"             json:"phone,omitempty"    bson:"phone,omitempty"`
	FarmSize         string    `db:"farm_size"         json:"farm_size,omitempty" bson:"farm_size,omitempty"`
	SoilType         string    `db:"soil_type"         json:"soil_type,omitempty" bson:"soil_type,omitempty"`
	MainCrop         string    `db:"main_crop"         json:"main_crop,omitempty" bson:"main_crop,omitempty"`
	IrrigationSource string    `db:"irrigation_source" json:"irrigation_source,omitempty" bson:"irrigation_source,omitempty"`
	MemberSince      string    `db:"member_since"      json:"member_since"       bson:"member_since"`
	PasswordHash     string    `db:"password_hash"     json:"-"                  bson:"password_hash"`
	CreatedAt        time.Time `db:"created_at"        json:"-"                  bson:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"        json:"-"                  bson:"updated_at"`
}
