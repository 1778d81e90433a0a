package domain

// Status represents the order status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusDelivered Status = "DELIVERED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusDelivered, StatusCompleted:
		return true
	default:
		return false
	}
}
