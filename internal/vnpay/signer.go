package vnpay

import (
	"fmt"
	"strconv"
)

const defaultLocale = "vn"

// BuildPaymentURL assembles the full VNPAY parameter set for the request,
// canonicalizes it, and appends the HMAC-SHA-512 signature. The returned
// URL is handed to the customer as a redirect; nothing is persisted here.
func (g *Gateway) BuildPaymentURL(req PaymentRequest) (string, error) {
	if err := req.validate(); err != nil {
		return "", err
	}

	locale := req.Locale
	if locale == "" {
		locale = defaultLocale
	}
	ref := req.TxnRef()

	params := map[string]string{
		"vnp_Version":    protocolVersion,
		"vnp_Command":    commandPay,
		"vnp_TmnCode":    g.tmnCode,
		"vnp_Locale":     locale,
		"vnp_CurrCode":   currencyCode,
		fieldTxnRef:      ref,
		"vnp_OrderInfo":  fmt.Sprintf("Thanh toan don hang %s", ref),
		"vnp_OrderType":  orderTypeOther,
		"vnp_Amount":     strconv.FormatInt(req.Amount*100, 10),
		"vnp_ReturnUrl":  g.returnURL,
		"vnp_IpAddr":     req.ClientIP,
		"vnp_CreateDate": req.CreatedAt.Format(createDateLayout),
	}
	// Absent, not empty: an empty vnp_BankCode would change the signature.
	if req.BankCode != "" {
		params["vnp_BankCode"] = req.BankCode
	}

	canonical := canonicalQuery(params)
	return g.payURL + "?" + canonical + "&" + fieldSecureHash + "=" + g.sign(canonical), nil
}
