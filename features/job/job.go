package job

import (
	"errors"
	"time"
)

// StatusScheduled is assigned at creation. No operation changes it afterwards.
const StatusScheduled = "scheduled"

var ErrNotFound = errors.New("job not found")

type Job struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Price     int       `json:"price"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Request is the create/update payload. price is bounded to the INTEGER column.
type Request struct {
	Title *string `json:"title" validate:"required,max=200,nonul"`
	Price *int    `json:"price" validate:"omitempty,min=-2147483648,max=2147483647"`
}

func (r Request) toJob() *Job {
	j := &Job{Title: *r.Title}
	if r.Price != nil {
		j.Price = *r.Price
	}
	return j
}
