package models

// Flexible reference lists managed by admins. Rows are only ever deactivated,
// never deleted, because transactions keep pointing at them.

type Currency struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Code     string `json:"code" gorm:"size:10;uniqueIndex;not null"` // e.g. MMK, USD, SGD, THB
	Name     string `json:"name" gorm:"size:50"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

type Purpose struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}
