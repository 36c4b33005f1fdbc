package domain

import (
	"errors"
	"strings"
)

// Tier is a level of the administrative location hierarchy.
type Tier string

const (
	// TierProvince is the top level; it has no parent.
	TierProvince Tier = "province"
	// TierCity is the level below a province.
	TierCity Tier = "city"
	// TierDistrict is the level below a city.
	TierDistrict Tier = "district"
)

// ErrUnknownTier is returned by ParseTier for anything but province, city or district.
var ErrUnknownTier = errors.New("unknown location tier")

// ParseTier parses a tier name, case-insensitively.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToLower(strings.TrimSpace(s))); t {
	case TierProvince, TierCity, TierDistrict:
		return t, nil
	}
	return "", ErrUnknownTier
}

// NeedsParent reports whether listing this tier requires a parent id.
func (t Tier) NeedsParent() bool {
	return t == TierCity || t == TierDistrict
}

// Location is a province, city or district.
// ID is unique within its tier. The remaining string fields come from an older
// schema version and are advisory only.
type Location struct {
	// ID identifies the location within its tier.
	ID int `json:"id"`
	// Name is the display name.
	Name string `json:"name"`

	ProvinceID      string `json:"province_id,omitempty"`
	Province        string `json:"province,omitempty"`
	CityID          string `json:"city_id,omitempty"`
	City            string `json:"city,omitempty"`
	CityName        string `json:"city_name,omitempty"`
	SubdistrictID   string `json:"subdistrict_id,omitempty"`
	SubdistrictName string `json:"subdistrict_name,omitempty"`
	Type            string `json:"type,omitempty"`
	PostalCode      string `json:"postal_code,omitempty"`
}

// SameAs compares two locations of the same tier by ID only.
func (l Location) SameAs(other Location) bool {
	return l.ID == other.ID
}

// SearchResult is one hit of a free-text location search.
type SearchResult struct {
	ID              int    `json:"id"`
	Label           string `json:"label"`
	ProvinceName    string `json:"province_name"`
	CityName        string `json:"city_name"`
	DistrictName    string `json:"district_name"`
	SubdistrictName string `json:"subdistrict_name"`
	ZipCode         string `json:"zip_code"`
}
