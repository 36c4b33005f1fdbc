package adapters

import (
	"encoding/json"
	"fmt"

	"golek-ongkir/internal/core/apperror"
	"golek-ongkir/internal/features/shipping/domain"
)

// CostShape is the layout of a cost list as the upstream sent it.
type CostShape int

const (
	// CostShapeGrouped is a list of CostResult, one per courier.
	CostShapeGrouped CostShape = iota + 1
	// CostShapeFlat is a list of FlatCost, one per courier service.
	CostShapeFlat
)

func (s CostShape) String() string {
	switch s {
	case CostShapeGrouped:
		return "grouped"
	case CostShapeFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// ClassifyCosts decides which shape raw is. Every element must have the same shape;
// an empty list is reported as grouped.
func ClassifyCosts(raw json.RawMessage) (CostShape, error) {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, apperror.Unrecognized("cost", "data is not a list of objects", err)
	}
	if len(items) == 0 {
		return CostShapeGrouped, nil
	}

	var shape CostShape
	for i, item := range items {
		got := elementShape(item)
		if got == 0 {
			return 0, apperror.Unrecognized("cost", fmt.Sprintf("element %d is neither grouped nor flat", i), nil)
		}
		if shape != 0 && got != shape {
			return 0, apperror.Unrecognized("cost", fmt.Sprintf("element %d is %s but earlier elements are %s", i, got, shape), nil)
		}
		shape = got
	}
	return shape, nil
}

func elementShape(item map[string]json.RawMessage) CostShape {
	if _, ok := item["costs"]; ok {
		return CostShapeGrouped
	}
	_, hasCode := item["code"]
	_, hasService := item["service"]
	_, hasCost := item["cost"]
	if hasCode && hasService && hasCost {
		return CostShapeFlat
	}
	return 0
}

// NormalizeCosts returns raw as grouped cost results, whichever shape it arrived in.
func NormalizeCosts(raw json.RawMessage) ([]domain.CostResult, error) {
	shape, err := ClassifyCosts(raw)
	if err != nil {
		return nil, err
	}

	if shape == CostShapeGrouped {
		results := []domain.CostResult{}
		if err := json.Unmarshal(raw, &results); err != nil {
			return nil, apperror.Unrecognized("cost", "grouped entries have unexpected field types", err)
		}
		return results, nil
	}

	var flat []domain.FlatCost
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, apperror.Unrecognized("cost", "flat entries have unexpected field types", err)
	}
	return GroupFlatCosts(flat), nil
}

// GroupFlatCosts groups entries by courier code. Couriers keep the order in which their
// code first appears and services keep their input order. Each service carries exactly
// one CostDetail with an empty note.
func GroupFlatCosts(entries []domain.FlatCost) []domain.CostResult {
	results := []domain.CostResult{}
	index := make(map[string]int)

	for _, e := range entries {
		i, ok := index[e.Code]
		if !ok {
			i = len(results)
			index[e.Code] = i
			results = append(results, domain.CostResult{Code: e.Code, Name: e.Name, Costs: []domain.CostService{}})
		}
		results[i].Costs = append(results[i].Costs, domain.CostService{
			Service:     e.Service,
			Description: e.Description,
			Cost:        []domain.CostDetail{{Value: e.Cost, Etd: e.Etd, Note: ""}},
		})
	}
	return results
}
