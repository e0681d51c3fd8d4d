package transform

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"github.com/timeplus-io/chameleon/locsync/common"
)

var positionPath = []string{"trackPoint", "position"}

type Converter struct {
	mapping Mapping
}

func NewConverter(mapping Mapping) *Converter {
	return &Converter{mapping: mapping}
}

func (c *Converter) Mapping() Mapping {
	return c.mapping
}

// Convert builds the VP Desk payload carrying the record's position as
// "latitude,longitude".
func (c *Converter) Convert(record common.SourceRecord) (*common.SinkPayload, error) {
	position, err := ExtractPosition(record)
	if err != nil {
		return nil, err
	}

	return &common.SinkPayload{
		ResourceModel: c.mapping.ResourceModel,
		Attributes: []common.Attribute{
			{
				EntityName:  c.mapping.EntityName,
				EntityValue: position.String(),
			},
		},
	}, nil
}

// ExtractPosition reads trackPoint.position. Coordinates are JSON numbers or
// strings holding a number, written back in plain decimal form; nothing is
// rounded, trimmed or range checked.
func ExtractPosition(record common.SourceRecord) (common.Position, error) {
	raw, ok := record.Lookup(positionPath...)
	if !ok || raw == nil {
		return common.Position{}, missing("trackPoint.position", "absent")
	}
	position, ok := common.AsObject(raw)
	if !ok {
		return common.Position{}, missing("trackPoint.position", "not an object")
	}

	lat, err := coordinate(position, "latitude")
	if err != nil {
		return common.Position{}, err
	}
	lon, err := coordinate(position, "longitude")
	if err != nil {
		return common.Position{}, err
	}
	return common.Position{Latitude: lat, Longitude: lon}, nil
}

func coordinate(position map[string]interface{}, name string) (string, error) {
	value, ok := position[name]
	if !ok {
		return "", missing(name, "absent")
	}

	var text string
	switch v := value.(type) {
	case nil:
		return "", missing(name, "null")
	case json.Number:
		text = v.String()
	case float64:
		return format(name, v)
	case string:
		text = v
	default:
		return "", missing(name, "not numeric")
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return "", missing(name, "out of range")
		}
		return "", missing(name, "not numeric")
	}
	return format(name, f)
}

// format renders f in the shortest plain decimal form that parses back to f,
// so 4.51e1 and 45.10 both become 45.1.
func format(name string, f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", missing(name, "not numeric")
	}
	if f == 0 {
		f = 0 // drops the sign of -0
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func missing(field string, reason string) error {
	return &common.SyncError{
		Stage:  common.StageTransform,
		Kind:   common.KindMissingField,
		Field:  field,
		Reason: reason,
	}
}
