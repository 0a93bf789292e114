package models

import "ctoc/src/types"

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	UID   string `gorm:"uniqueIndex" json:"uid,omitempty"`
	Email string `gorm:"uniqueIndex" json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `gorm:"default:'buyer'" json:"role,omitempty"`

	types.Timestamps
}
