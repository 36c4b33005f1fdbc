package domain

// TrackingStatus is the current status of a shipment.
type TrackingStatus struct {
	StatusCode string `json:"status_code"`
	Status     string `json:"status"`
}

// TrackingDetail is a single event in the shipment's manifest.
type TrackingDetail struct {
	// Date is the event timestamp, "2006-01-02T15:04:05"-style when the courier supplied one.
	Date string `json:"date"`
	// Desc is the courier's description of the event.
	Desc string `json:"desc"`
	// Location is the city where the event occurred, possibly empty.
	Location string `json:"location"`
}

// TrackingResult is the tracking information for a shipment.
// Manifest is ordered most recent first.
type TrackingResult struct {
	WaybillNumber string           `json:"waybill_number"`
	WaybillDate   string           `json:"waybill_date"`
	WaybillTime   string           `json:"waybill_time"`
	Weight        string           `json:"weight"`
	Origin        string           `json:"origin"`
	Destination   string           `json:"destination"`
	ShipperName   string           `json:"shipper_name"`
	ReceiverName  string           `json:"receiver_name"`
	Status        TrackingStatus   `json:"status"`
	Manifest      []TrackingDetail `json:"manifest"`
}

// TrackQuery identifies a shipment.
type TrackQuery struct {
	Courier string `json:"courier"`
	Waybill string `json:"waybill"`
	// LastPhoneNumber holds the receiver's last phone digits, used by JNE only.
	LastPhoneNumber string `json:"last_phone_number,omitempty"`
}
