package domain

import (
	"encoding/json"
	"fmt"
)

// SegmentPayload is the wire shape of the core and noncore partitions.
// Pointer fields let a missing key be told apart from a zero count.
type SegmentPayload struct {
	Female    *int `json:"female"`
	Male      *int `json:"male"`
	Nonbinary *int `json:"nonbinary"`
	Unknown   *int `json:"unknown"`
}

// Get returns the count for a category and whether the backend supplied it.
func (s *SegmentPayload) Get(c Category) (int, bool) {
	var v *int
	switch c {
	case Female:
		v = s.Female
	case Male:
		v = s.Male
	case Nonbinary:
		v = s.Nonbinary
	case Unknown:
		v = s.Unknown
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Payload is the JSON body returned by POST /repo-stats.
type Payload struct {
	Count          *int            `json:"count"`
	Date           *string         `json:"date"`
	Female         *float64        `json:"female"`
	Male           *float64        `json:"male"`
	Nonbinary      *float64        `json:"nonbinary"`
	Unknown        *float64        `json:"unknown"`
	Core           *SegmentPayload `json:"core"`
	NonCore        *SegmentPayload `json:"noncore"`
	BlauCore       *float64        `json:"blauCore"`
	AvgBlauCore    *float64        `json:"avgBlauCore"`
	BlauNonCore    *float64        `json:"blauNoncore"`
	AvgBlauNonCore *float64        `json:"avgBlauNoncore"`
	Repos          *int            `json:"repos"`
}

// Percent returns the overall percentage for a category and whether it was supplied.
func (p *Payload) Percent(c Category) (float64, bool) {
	var v *float64
	switch c {
	case Female:
		v = p.Female
	case Male:
		v = p.Male
	case Nonbinary:
		v = p.Nonbinary
	case Unknown:
		v = p.Unknown
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// DecodePayload decodes a response body. Key order in the body is irrelevant.
func DecodePayload(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponseShape, err)
	}
	return &p, nil
}
