package bills

// Status is the lifecycle state of a bill. PAID is the single terminal
// success state; the source of truth for which transitions are legal is
// the table in CanTransition.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusReserved   Status = "RESERVED"
	StatusProcessing Status = "PROCESSING"
	StatusApproved   Status = "APPROVED"
	StatusPaid       Status = "PAID"
	StatusCancelled  Status = "CANCELLED"
	StatusExpired    Status = "EXPIRED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReserved, StatusProcessing, StatusApproved,
		StatusPaid, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusCancelled || s == StatusExpired
}

var transitions = map[Status][]Status{
	StatusPending:    {StatusReserved, StatusCancelled, StatusExpired},
	StatusReserved:   {StatusProcessing, StatusPending, StatusCancelled, StatusExpired},
	StatusProcessing: {StatusApproved, StatusCancelled},
	StatusApproved:   {StatusPaid, StatusCancelled},
}

// CanTransition reports whether a bill may move from s to next.
// RESERVED -> PENDING is the reservation-expiry revert.
func (s Status) CanTransition(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}
