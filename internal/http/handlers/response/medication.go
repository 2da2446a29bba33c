package response

import (
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/medication"
	"time"
)

type Medication struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Dosage      string    `json:"dosage"`
	Frequency   string    `json:"frequency"`
	Times       []string  `json:"times"`
	StartDate   *string   `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	ExpiryDate  *string   `json:"expiry_date"`
	Notes       string    `json:"notes"`
	Description string    `json:"description"`
	ImagePath   *string   `json:"image_path"`
	IsExpired   bool      `json:"is_expired"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *Medication) FromDomainType(dm medication.Medication, now time.Time) {
	m.ID = int64(dm.ID)
	m.UserID = int64(dm.UserID)
	m.Name = dm.Name
	m.Dosage = dm.Dosage
	m.Frequency = dm.Frequency
	m.Times = make([]string, 0, len(dm.Times))
	for _, t := range dm.Times {
		m.Times = append(m.Times, t.String())
	}
	m.StartDate = formatDate(dm.StartDate)
	m.EndDate = formatDate(dm.EndDate)
	m.ExpiryDate = formatDate(dm.ExpiryDate)
	m.Notes = dm.Notes
	m.Description = dm.Description
	m.ImagePath = dm.ImagePath.Pointer()
	m.IsExpired = dm.IsExpired(now)
	m.CreatedAt = dm.CreatedAt
}

func formatDate(date c.Optional[time.Time]) *string {
	if !date.IsPresent {
		return nil
	}
	formatted := date.Value.Format(medication.DATE_LAYOUT)
	return &formatted
}
