package rally

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Rally is a user-organized cleanup event. Rallies live in process memory
// only; restarting the service starts from the seed list again.
type Rally struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	StartsAt     string    `json:"starts_at"`
	Description  string    `json:"description,omitempty"`
	Creator      string    `json:"creator"`
	Participants int       `json:"participants"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateRallyRequest matches the cleanup form on the client.
type CreateRallyRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Creator     string `json:"creator"`
}

// StartsAtLayouts are the accepted timestamp shapes for the rally form.
// The datetime-local input sends the minute-precision one.
var StartsAtLayouts = []string{
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseStartsAt returns the parsed start time, or the zero time when the
// string matches no accepted layout. Unparseable starts sort last when
// picking the next upcoming cleanup.
func ParseStartsAt(s string) time.Time {
	for _, layout := range StartsAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
