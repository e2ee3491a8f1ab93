package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strings"
)

// Gateway signs outbound payment URLs and verifies return callbacks for a
// single VNPAY merchant. The configuration is read once at construction
// and never mutated; both operations are pure computation.
type Gateway struct {
	tmnCode   string
	secret    []byte
	payURL    string
	returnURL string
}

// Config holds the merchant credentials and endpoints issued by VNPAY.
type Config struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

// NewGateway validates the merchant configuration and builds a Gateway.
func NewGateway(cfg Config) (*Gateway, error) {
	tmnCode := strings.TrimSpace(cfg.TmnCode)
	if tmnCode == "" {
		return nil, errors.New("merchant code is required")
	}
	if cfg.HashSecret == "" {
		return nil, errors.New("hash secret is required")
	}
	payURL := strings.TrimSuffix(strings.TrimSpace(cfg.PayURL), "/")
	if payURL == "" {
		return nil, errors.New("pay URL is required")
	}
	returnURL := strings.TrimSpace(cfg.ReturnURL)
	if returnURL == "" {
		return nil, errors.New("return URL is required")
	}

	return &Gateway{
		tmnCode:   tmnCode,
		secret:    []byte(cfg.HashSecret),
		payURL:    payURL,
		returnURL: returnURL,
	}, nil
}

// encodeComponent applies the gateway's encoding convention. QueryEscape
// already emits '+' for spaces, so a single pass matches the required
// percent-encode-then-plus rule without double-encoding.
func encodeComponent(s string) string {
	return url.QueryEscape(s)
}

// canonicalQuery freezes a parameter mapping into the exact byte sequence
// fed to the keyed hash: every key and value is encoded first, then pairs
// are sorted by encoded key in lexicographic byte order and joined as a
// query string. Signer and verifier must share this or every legitimate
// callback gets rejected.
func canonicalQuery(params map[string]string) string {
	pairs := make([][2]string, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, [2]string{encodeComponent(k), encodeComponent(v)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p[0])
		b.WriteByte('=')
		b.WriteString(p[1])
	}
	return b.String()
}

func (g *Gateway) sign(canonical string) string {
	mac := hmac.New(sha512.New, g.secret)
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}
