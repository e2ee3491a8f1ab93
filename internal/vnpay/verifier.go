package vnpay

import (
	"crypto/hmac"
	"strings"
)

// VerifyReturn authenticates an inbound return callback and classifies it.
// The signature is checked before any payload field is interpreted;
// malformed callbacks are indistinguishable from forged ones by design, so
// both come back as SignatureInvalid.
func (g *Gateway) VerifyReturn(params map[string]string) Outcome {
	supplied := strings.ToLower(strings.TrimSpace(params[fieldSecureHash]))
	if supplied == "" {
		return Outcome{Status: SignatureInvalid}
	}

	signed := make(map[string]string, len(params))
	for k, v := range params {
		if k == fieldSecureHash || k == fieldSecureHashType {
			continue
		}
		signed[k] = v
	}

	expected := g.sign(canonicalQuery(signed))
	if !hmac.Equal([]byte(expected), []byte(supplied)) {
		return Outcome{Status: SignatureInvalid}
	}

	ref := signed[fieldTxnRef]
	code := signed[fieldResponseCode]
	if ref == "" || code == "" {
		return Outcome{Status: SignatureInvalid}
	}

	// Inverse of TxnRef: drop the retry suffix added at signing time.
	orderID, _, _ := strings.Cut(ref, "_")

	if code == ResponseCodeSuccess {
		return Outcome{Status: PaymentSucceeded, OrderID: orderID, ResponseCode: code}
	}
	return Outcome{Status: PaymentFailed, OrderID: orderID, ResponseCode: code}
}
