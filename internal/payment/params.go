// Package payment implements the premium upgrade flow: initiation against
// the API, gateway callback parameter handling, the verification state
// machine, and the best-effort cancel/fail notifications.
package payment

import "net/url"

// transactionParamNames lists every query-parameter name the gateway has
// been observed to carry the transaction id under. The first non-empty
// match wins.
var transactionParamNames = []string{
	"transaction_id",
	"tran_id",
	"tranID",
	"payment_id",
	"tr_id",
}

// TransactionID extracts the transaction identifier from gateway callback
// parameters. Returns "" when none of the accepted names is present.
func TransactionID(params url.Values) string {
	return firstParam(params, transactionParamNames...)
}

// PlanID extracts the optional plan identifier echoed by the gateway.
func PlanID(params url.Values) string {
	return firstParam(params, "plan_id", "plan")
}

// Amount extracts the optional amount echoed by the gateway.
func Amount(params url.Values) string {
	return firstParam(params, "amount", "store_amount")
}

// FailureCode extracts the gateway's error code on the fail landing.
func FailureCode(params url.Values) string {
	return firstParam(params, "error_code", "error")
}

// FailureMessage extracts the gateway's error message on the fail landing.
func FailureMessage(params url.Values) string {
	return firstParam(params, "error_message", "msg")
}

// Flatten decodes the complete callback query into a key→value map, first
// value per key, for relaying to the server verbatim.
func Flatten(params url.Values) map[string]string {
	flat := make(map[string]string, len(params))
	for key, values := range params {
		if len(values) > 0 {
			flat[key] = values[0]
		}
	}
	return flat
}

func firstParam(params url.Values, names ...string) string {
	for _, name := range names {
		if v := params.Get(name); v != "" {
			return v
		}
	}
	return ""
}
