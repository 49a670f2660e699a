// Package coupon implements the Coupon Evaluator domain.
//
// A coupon is eligible for a cart when it is active, the current instant lies in
// [startAt, endAt), the cart subtotal reaches minOrderAmount, and neither the
// global nor the per-user usage counter is exhausted. Evaluation never fails: it
// yields an Outcome that is either Accepted(amount) or Rejected(reason), and the
// accepted amount is always within [0, min(subtotal, maxDiscountAmount)].
package coupon
