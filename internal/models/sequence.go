package models

// Sequence is a persisted identifier counter. Next is the value the
// following allocation will return.
type Sequence struct {
	Name string `gorm:"primaryKey"`
	Next uint64 `gorm:"column:next_id;not null"`
}
