package models

import "gorm.io/gorm"

// RegistrySnapshot — one fetched copy of the registry, stored whole. The
// in-memory index is always rebuilt from a full payload; rows are never
// mutated individually.
type RegistrySnapshot struct {
	gorm.Model
	UID     string `gorm:"column:uid;type:char(36);uniqueIndex"`
	Source  string `gorm:"type:varchar(255)"` // fetch URLs or file path
	SHA256  string `gorm:"type:char(64);index"`
	Records int
	Payload []byte
}
