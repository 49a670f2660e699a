// Package order implements the Order aggregate and its lifecycle state machine.
//
// An order is created once from a priced checkout and is immutable afterwards
// except for its status, payment status, gateway references and delivery dates.
// Items and addresses are frozen snapshots copied at placement time.
//
// Status graph (who may drive each edge):
//
//	CREATED   -> PAID       payment gateway
//	CREATED   -> PACKED     admin, cash on delivery only
//	PAID      -> PACKED     admin
//	PACKED    -> SHIPPED    admin
//	SHIPPED   -> DELIVERED  admin
//	DELIVERED -> COMPLETED  admin
//	CREATED, PAID, PACKED -> CANCELLED  customer or admin
//	SHIPPED, DELIVERED    -> RETURNED   admin
//
// Payment status moves independently: PENDING -> PAID | FAILED, PAID -> REFUNDED
// together with CANCELLED or RETURNED, and COD -> PAID on delivery.
package order
