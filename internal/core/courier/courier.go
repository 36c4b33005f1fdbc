// Package courier holds the couriers the shipping API supports for cost and tracking lookups.
package courier

import "strings"

// Courier is a supported courier.
type Courier struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// JNE is the only courier whose tracking endpoint accepts the receiver's last phone digits.
const JNE = "jne"

var catalogue = []Courier{
	{Code: JNE, Name: "JNE"},
	{Code: "pos", Name: "POS Indonesia"},
	{Code: "tiki", Name: "TIKI"},
	{Code: "rpx", Name: "RPX"},
	{Code: "esl", Name: "ESL"},
	{Code: "pcp", Name: "PCP"},
	{Code: "jet", Name: "JET"},
	{Code: "dse", Name: "DSE"},
	{Code: "first", Name: "First Logistics"},
	{Code: "ncs", Name: "NCS"},
	{Code: "star", Name: "Star Cargo"},
}

// All returns the supported couriers in display order.
func All() []Courier {
	out := make([]Courier, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup finds a courier by code, ignoring case and surrounding space.
func Lookup(code string) (Courier, bool) {
	code = Normalize(code)
	for _, c := range catalogue {
		if c.Code == code {
			return c, true
		}
	}
	return Courier{}, false
}

// Normalize lower-cases and trims a courier code.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// AcceptsPhoneDigits reports whether tracking for code forwards the last phone digits.
func AcceptsPhoneDigits(code string) bool {
	return Normalize(code) == JNE
}
