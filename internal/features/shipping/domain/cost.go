package domain

// CostDetail is one price quote of a service.
type CostDetail struct {
	// Value is the price as the upstream sent it; no currency unit is assumed.
	Value float64 `json:"value"`
	// Etd is the estimated delivery time in days, e.g. "2-3".
	Etd  string `json:"etd"`
	Note string `json:"note"`
}

// CostService is a service level offered by a courier, e.g. "REG" or "YES".
type CostService struct {
	Service     string       `json:"service"`
	Description string       `json:"description"`
	Cost        []CostDetail `json:"cost"`
}

// CostResult groups the services of one courier.
type CostResult struct {
	Code  string        `json:"code"`
	Name  string        `json:"name"`
	Costs []CostService `json:"costs"`
}

// FlatCost is a single per-service entry of the flat cost shape,
// where each entry repeats its courier code and name.
type FlatCost struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Service     string  `json:"service"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Etd         string  `json:"etd"`
}

// CostQuery is a shipping cost request between two districts.
type CostQuery struct {
	Origin      int `json:"origin"`
	Destination int `json:"destination"`
	// Weight is in grams.
	Weight   int      `json:"weight"`
	Couriers []string `json:"couriers"`
}
