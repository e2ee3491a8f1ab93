package vnpay

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Contractual constants dictated by the VNPAY protocol. Changing any of
// these breaks signature interoperability with the gateway.
const (
	protocolVersion = "2.1.0"
	commandPay      = "pay"
	currencyCode    = "VND"
	orderTypeOther  = "other"

	createDateLayout = "20060102150405"
	refSuffixLayout  = "150405"
)

// ResponseCodeSuccess is the gateway code for a completed payment. Every
// other code is a gateway-defined failure, opaque beyond logging.
const ResponseCodeSuccess = "00"

// Well-known callback field names.
const (
	fieldSecureHash     = "vnp_SecureHash"
	fieldSecureHashType = "vnp_SecureHashType"
	fieldTxnRef         = "vnp_TxnRef"
	fieldResponseCode   = "vnp_ResponseCode"
)

// ErrInvalidRequest marks signing input rejected before any cryptography.
var ErrInvalidRequest = errors.New("invalid payment request")

// PaymentRequest carries everything needed to build a signed redirect URL
// for one checkout attempt. Amount is the order total in whole VND; the
// gateway wire value is this amount multiplied by 100.
type PaymentRequest struct {
	OrderID   string
	Amount    int64
	Locale    string
	BankCode  string
	ClientIP  string
	CreatedAt time.Time
}

// TxnRef derives the reference the gateway echoes back on the return URL.
// The HHMMSS suffix lets a customer retry payment for the same order; the
// order id is recovered by cutting at the first underscore.
func (r PaymentRequest) TxnRef() string {
	return r.OrderID + "_" + r.CreatedAt.Format(refSuffixLayout)
}

func (r PaymentRequest) validate() error {
	if strings.TrimSpace(r.OrderID) == "" {
		return fmt.Errorf("%w: order id is required", ErrInvalidRequest)
	}
	if strings.Contains(r.OrderID, "_") {
		// An underscore would make the reference ambiguous to parse back.
		return fmt.Errorf("%w: order id must not contain underscores", ErrInvalidRequest)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}
	return nil
}

// OutcomeStatus classifies a verified callback.
type OutcomeStatus int

const (
	// SignatureInvalid means the callback could not be authenticated. No
	// field of such a callback may be trusted.
	SignatureInvalid OutcomeStatus = iota
	// PaymentFailed means the signature checked out but the gateway
	// reported a non-success response code.
	PaymentFailed
	// PaymentSucceeded means the signature checked out and the gateway
	// confirmed the payment.
	PaymentSucceeded
)

func (s OutcomeStatus) String() string {
	switch s {
	case PaymentFailed:
		return "failed"
	case PaymentSucceeded:
		return "succeeded"
	default:
		return "signature-invalid"
	}
}

// Outcome is the sole artifact handed to order settlement. OrderID and
// ResponseCode are populated only when the signature verified.
type Outcome struct {
	Status       OutcomeStatus
	OrderID      string
	ResponseCode string
}
