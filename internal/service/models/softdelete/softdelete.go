package softdelete

import "time"

// Mark is the shared soft-delete state embedded by restorable entities.
// A marked entity is hidden from active listings but kept for restoration.
type Mark struct {
	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Delete marks the entity deleted at the given time.
func (m *Mark) Delete(at time.Time) {
	m.IsDeleted = true
	m.DeletedAt = &at
}

// Restore clears the deletion mark.
func (m *Mark) Restore() {
	m.IsDeleted = false
	m.DeletedAt = nil
}
