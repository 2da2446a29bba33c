package response

import (
	"medremind/internal/core/domain/user"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Name = du.Name
	u.Email = string(du.Email)
	if du.Phone.IsPresent {
		phone := string(du.Phone.Value)
		u.Phone = &phone
	}
	u.CreatedAt = du.CreatedAt
}
