package adapters

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/core/apperror"
	"golek-ongkir/internal/features/tracking/domain"
)

// TrackingPayload is a classified POST /track body: either CanonicalShape or LegacyShape.
type TrackingPayload interface {
	trackingPayload()
}

// CanonicalShape is a body that is already an envelope, either a success envelope
// with data.data or an error envelope.
type CanonicalShape struct {
	Body json.RawMessage
}

// LegacyShape is a bare RawTrackingResponse.
type LegacyShape struct {
	Raw domain.RawTrackingResponse
}

func (CanonicalShape) trackingPayload() {}
func (LegacyShape) trackingPayload()    {}

// ClassifyTracking decides which shape raw is. A body carrying data.data wins over
// summary and manifest keys.
func ClassifyTracking(raw json.RawMessage) (TrackingPayload, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return nil, apperror.Unrecognized("tracking", "body is not a JSON object", err)
	}

	if isTrue(top["error"]) {
		return CanonicalShape{Body: raw}, nil
	}

	var data map[string]json.RawMessage
	if isObject(top["data"]) && json.Unmarshal(top["data"], &data) == nil && isPresent(data["data"]) {
		return CanonicalShape{Body: raw}, nil
	}

	_, hasSummary := top["summary"]
	_, hasManifest := top["manifest"]
	if hasSummary && hasManifest {
		if !isObject(top["summary"]) {
			return nil, apperror.Unrecognized("tracking", "summary is not an object", nil)
		}
		var legacy domain.RawTrackingResponse
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, apperror.Unrecognized("tracking", "summary/manifest fields have unexpected types", err)
		}
		return LegacyShape{Raw: legacy}, nil
	}

	return nil, apperror.Unrecognized("tracking", "neither data.data nor summary and manifest present", nil)
}

// NormalizeTracking returns raw as a canonical envelope. Canonical bodies are returned as they are.
func NormalizeTracking(raw json.RawMessage) (json.RawMessage, error) {
	payload, err := ClassifyTracking(raw)
	if err != nil {
		return nil, err
	}

	switch p := payload.(type) {
	case CanonicalShape:
		return p.Body, nil
	case LegacyShape:
		out, err := json.Marshal(NormalizeLegacy(p.Raw))
		if err != nil {
			return nil, apperror.Unrecognized("tracking", "re-encoding normalized result", err)
		}
		return out, nil
	default:
		return nil, apperror.Unrecognized("tracking", "unhandled payload variant", nil)
	}
}

// NormalizeLegacy converts a RawTrackingResponse into a success envelope whose meta
// status is the summary status.
func NormalizeLegacy(raw domain.RawTrackingResponse) apiclient.Envelope[domain.TrackingResult] {
	d := raw.Details

	destination := d.Destination
	if destination == "" {
		destination = d.ReceiverCity
	}

	result := domain.TrackingResult{
		WaybillNumber: d.WaybillNumber,
		WaybillDate:   d.WaybillDate,
		WaybillTime:   d.WaybillTime,
		Weight:        d.Weight,
		Origin:        d.Origin,
		Destination:   destination,
		ShipperName:   d.ShipperName,
		ReceiverName:  d.ReceiverName,
		Status: domain.TrackingStatus{
			StatusCode: raw.Summary.Status,
			Status:     raw.Summary.Status,
		},
		Manifest: make([]domain.TrackingDetail, 0, len(raw.Manifest)),
	}

	for _, m := range SortManifest(raw.Manifest) {
		location := m.CityName
		if location == "" {
			location = d.ReceiverCity
		}
		result.Manifest = append(result.Manifest, domain.TrackingDetail{
			Date:     detailDate(m.ManifestDate, m.ManifestTime),
			Desc:     m.ManifestDescription,
			Location: location,
		})
	}

	return apiclient.Success(apiclient.Meta{Message: "OK", Code: 200, Status: raw.Summary.Status}, result)
}

// SortManifest returns a copy of items ordered most recent first. The sort is stable,
// and entries whose timestamp cannot be parsed sort last.
func SortManifest(items []domain.RawManifestItem) []domain.RawManifestItem {
	type keyed struct {
		item domain.RawManifestItem
		at   time.Time
	}
	ks := make([]keyed, len(items))
	for i, it := range items {
		ks[i] = keyed{item: it, at: ManifestTime(it.ManifestDate, it.ManifestTime)}
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		return b.at.Compare(a.at)
	})

	out := make([]domain.RawManifestItem, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}

var (
	isoLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02T15:04:05.000",
		"2006-01-02T15:04:05Z07:00",
	}
	spaceLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006/01/02 15:04:05",
		"2006/01/02 15:04",
		"01/02/2006 15:04:05",
		"01/02/2006 15:04",
		"02 Jan 2006 15:04:05",
		"02 Jan 2006 15:04",
		"Jan 2 2006 15:04:05",
		"Jan 2 2006 15:04",
	}
)

// ManifestTime parses a manifest date and time. Both parts are required. The
// "T"-joined form is tried first, then the space-joined form; anything else is
// the zero time.
func ManifestTime(date, clock string) time.Time {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}
	}
	if t, ok := parseAny(isoLayouts, date+"T"+clock); ok {
		return t
	}
	if t, ok := parseAny(spaceLayouts, date+" "+clock); ok {
		return t
	}
	return time.Time{}
}

func parseAny(layouts []string, value string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func detailDate(date, clock string) string {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if clock == "" {
		return date
	}
	return date + "T" + clock
}

func isTrue(raw json.RawMessage) bool {
	var b bool
	return json.Unmarshal(raw, &b) == nil && b
}

func isObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}

func isPresent(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && !bytes.Equal(t, []byte("null"))
}
