package coupon

import (
	"github.com/shopspring/decimal"
)

// Reason explains why a coupon was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNotFound
	ReasonInactive
	ReasonNotStarted
	ReasonExpired
	ReasonBelowMinimum
	ReasonUsageLimitReached
	ReasonPerUserLimitReached
)

var reasonNames = map[Reason]string{
	ReasonNone:                "",
	ReasonNotFound:            "NOT_FOUND",
	ReasonInactive:            "INACTIVE",
	ReasonNotStarted:          "NOT_STARTED",
	ReasonExpired:             "EXPIRED",
	ReasonBelowMinimum:        "BELOW_MINIMUM",
	ReasonUsageLimitReached:   "USAGE_LIMIT_REACHED",
	ReasonPerUserLimitReached: "PER_USER_LIMIT_REACHED",
}

func (r Reason) String() string {
	return reasonNames[r]
}

// Outcome is the tagged result of evaluating a coupon: Accepted(amount) or Rejected(reason).
type Outcome struct {
	code     string
	accepted bool
	discount decimal.Decimal
	reason   Reason
}

func Accepted(code string, discount decimal.Decimal) Outcome {
	return Outcome{code: code, accepted: true, discount: discount}
}

func Rejected(code string, reason Reason) Outcome {
	return Outcome{code: code, reason: reason, discount: decimal.Zero}
}

func (o Outcome) Code() string { return o.code }

func (o Outcome) IsAccepted() bool { return o.accepted }

// Discount is zero for rejections.
func (o Outcome) Discount() decimal.Decimal {
	if !o.accepted {
		return decimal.Zero
	}
	return o.discount
}

func (o Outcome) Reason() Reason { return o.reason }
