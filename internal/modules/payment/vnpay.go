package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// Gateway config for VNPay-style hosted checkout. The secure hash is an
// HMAC-SHA512 over the sorted, URL-encoded vnp_ parameters.
type GatewayConfig struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

const (
	vnpVersion     = "2.1.0"
	vnpCommandPay  = "pay"
	vnpCurrency    = "VND"
	respCodeOK     = "00"
	txnStatusOK    = "00"
	secureHashKey  = "vnp_SecureHash"
	secureTypeKey  = "vnp_SecureHashType"
	paramKeyPrefix = "vnp_"
)

// hashData canonicalizes every vnp_ parameter except the hash fields:
// keys sorted, values URL-encoded, pairs joined with '&'.
func hashData(params url.Values, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if !strings.HasPrefix(k, paramKeyPrefix) || k == secureHashKey || k == secureTypeKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+url.QueryEscape(params.Get(k)))
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

// verifySignature compares the supplied vnp_SecureHash against a recomputed
// one in constant time.
func verifySignature(params url.Values, secret string) bool {
	supplied := strings.ToLower(params.Get(secureHashKey))
	if supplied == "" {
		return false
	}
	expected := hashData(params, secret)
	return hmac.Equal([]byte(supplied), []byte(expected))
}
