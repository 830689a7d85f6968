package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/pricing"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/schedule"
)

type RejectionCode string

const (
	// CodeCartChanged is raised by the submission flow, before validation,
	// when reconciliation dropped lines the user had already confirmed.
	CodeCartChanged RejectionCode = "CART_CHANGED"

	CodeClosed          RejectionCode = "CLOSED"
	CodeEmptyCart       RejectionCode = "EMPTY_CART"
	CodeBelowMinimum    RejectionCode = "BELOW_MINIMUM"
	CodeNoAddress       RejectionCode = "NO_ADDRESS"
	CodeNoPaymentMethod RejectionCode = "NO_PAYMENT_METHOD"
	CodeNoPhone         RejectionCode = "NO_PHONE"
	CodePhoneUnverified RejectionCode = "PHONE_UNVERIFIED"
)

// Remediation names the caller-side action that can clear a rejection. The
// validator never navigates or displays anything itself.
type Remediation string

const (
	RemediationNotifyAndOfferReturn   Remediation = "notify_and_offer_return"
	RemediationShowMessage            Remediation = "show_message"
	RemediationShowMessageWithAmounts Remediation = "show_message_with_amounts"
	RemediationRefreshCart            Remediation = "refresh_cart"
	RemediationRequestAddress         Remediation = "request_address"
	RemediationRequestProfile         Remediation = "request_profile"
	RemediationRequestVerification    Remediation = "request_verification"
)

// MinimumOrderAmounts accompanies a BELOW_MINIMUM rejection so the caller can
// show both figures.
type MinimumOrderAmounts struct {
	Minimum decimal.Decimal `json:"minimum"`
	Current decimal.Decimal `json:"current"`
}

// Result is the eligibility decision for one submission attempt.
type Result struct {
	Eligible     bool                 `json:"eligible"`
	Code         RejectionCode        `json:"code,omitempty"`
	Remediation  Remediation          `json:"remediation,omitempty"`
	Amounts      *MinimumOrderAmounts `json:"amounts,omitempty"`
	DroppedCount int                  `json:"dropped_count,omitempty"`
}

// ValidationInput gathers everything the eligibility checks read. All fields
// are supplied by the caller; the validator performs no I/O.
type ValidationInput struct {
	Availability  schedule.State
	Lines         []domain.ReconciledCartLine
	Calc          pricing.Calculator
	MinimumOrder  decimal.Decimal
	IsPickup      bool
	Address       *domain.DeliveryAddress
	PaymentMethod domain.PaymentMethod
	Profile       *domain.UserProfile
}

// Validate runs the business-rule checks in order and stops at the first
// failure.
func Validate(in ValidationInput) Result {
	if in.Availability != schedule.Open {
		return rejected(CodeClosed, RemediationNotifyAndOfferReturn)
	}

	if len(in.Lines) == 0 {
		return rejected(CodeEmptyCart, RemediationShowMessage)
	}

	current := in.Calc.PriceWithOptionalDelivery(!in.IsPickup, true)
	if current.LessThan(in.MinimumOrder) {
		result := rejected(CodeBelowMinimum, RemediationShowMessageWithAmounts)
		result.Amounts = &MinimumOrderAmounts{Minimum: in.MinimumOrder, Current: current}
		return result
	}

	if in.Address == nil || in.Address.ID == "" {
		return rejected(CodeNoAddress, RemediationRequestAddress)
	}

	if in.PaymentMethod == "" {
		return rejected(CodeNoPaymentMethod, RemediationShowMessage)
	}

	if in.Profile == nil || in.Profile.Phone == "" {
		return rejected(CodeNoPhone, RemediationRequestProfile)
	}

	if !in.Profile.PhoneIsVerified {
		return rejected(CodePhoneUnverified, RemediationRequestVerification)
	}

	return Result{Eligible: true}
}

func rejected(code RejectionCode, remediation Remediation) Result {
	return Result{Code: code, Remediation: remediation}
}
