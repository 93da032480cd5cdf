package booking

// Status is the booking lifecycle state.
//
// Only PENDING, FINAL_ALLOCATED and CANCELLED are ever produced by the
// current operations. AWAITING_ALLOCATION and ALLOCATED remain declared,
// valid variants with no transition reaching them; they are kept so stored
// data using them stays readable.
type Status string

const (
	StatusPending            Status = "PENDING"
	StatusAwaitingAllocation Status = "AWAITING_ALLOCATION"
	StatusAllocated          Status = "ALLOCATED"
	StatusFinalAllocated     Status = "FINAL_ALLOCATED"
	StatusCancelled          Status = "CANCELLED"
)

// AutoCancelReason is recorded on peer bookings cancelled as a side effect
// of an approval.
const AutoCancelReason = "Auto-cancelled: Another booking was approved"

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAwaitingAllocation, StatusAllocated, StatusFinalAllocated, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is defined for s.
func (s Status) IsTerminal() bool {
	return s == StatusFinalAllocated || s == StatusCancelled
}

// ActiveStatuses are the states that block a second booking for the same
// user and hostel.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusAllocated, StatusFinalAllocated}
}

// AllStatuses returns every declared booking status.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusAwaitingAllocation,
		StatusAllocated,
		StatusFinalAllocated,
		StatusCancelled,
	}
}
