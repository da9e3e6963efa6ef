package lead

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("lead not found")

// Lead is a prospective-customer inquiry.
type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Message   *string   `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Request is the create/update payload. Update is a full overwrite, so an omitted
// phone or message clears the stored value.
type Request struct {
	Name    *string `json:"name" validate:"required,max=160,nonul"`
	Phone   *string `json:"phone" validate:"omitempty,max=50,nonul"`
	Message *string `json:"message" validate:"omitempty,nonul"`
}

func (r Request) toLead() *Lead {
	return &Lead{
		Name:    *r.Name,
		Phone:   r.Phone,
		Message: r.Message,
	}
}
