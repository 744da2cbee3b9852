package checkout

// Status is the position of a single checkout attempt in its state machine.
type Status string

const (
	StatusPriced       Status = "PRICED"
	StatusOrderCreated Status = "ORDER_CREATED"
	StatusCartCleared  Status = "CART_CLEARED"
	StatusFailed       Status = "FAILED"
)

var transitions = map[Status][]Status{
	StatusPriced:       {StatusOrderCreated, StatusFailed},
	StatusOrderCreated: {StatusCartCleared},
}

func CanTransitionTo(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCartCleared || s == StatusFailed
}

func (s Status) String() string {
	return string(s)
}
