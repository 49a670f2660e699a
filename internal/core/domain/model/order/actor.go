package order

// Actor is who drives a transition.
type Actor int

const (
	ActorCustomer Actor = iota + 1
	ActorAdmin
	ActorPaymentGateway
)

func (a Actor) String() string {
	switch a {
	case ActorCustomer:
		return "customer"
	case ActorAdmin:
		return "admin"
	case ActorPaymentGateway:
		return "payment_gateway"
	default:
		return "unknown"
	}
}
