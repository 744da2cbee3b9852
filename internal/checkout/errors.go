package checkout

import "errors"

var (
	// ErrPartialCheckout means the order was recorded but the cart could not be emptied.
	ErrPartialCheckout     = errors.New("order created but cart not cleared")
	IllegalTransitionError = errors.New("illegal transition of checkout status")
)
