package common

import (
	"time"
)

// SourceRecord is the decoded upstream user document. Numbers are kept as
// json.Number so that no precision is lost before formatting.
type SourceRecord map[string]interface{}

// Lookup walks nested objects along path. A missing key or a level that is
// not an object yields ok == false.
func (r SourceRecord) Lookup(path ...string) (interface{}, bool) {
	var current interface{} = map[string]interface{}(r)
	for _, key := range path {
		obj, ok := AsObject(current)
		if !ok {
			return nil, false
		}
		if current, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return current, true
}

// AsObject reports whether v is a non nil JSON object.
func AsObject(v interface{}) (map[string]interface{}, bool) {
	switch obj := v.(type) {
	case map[string]interface{}:
		return obj, obj != nil
	case SourceRecord:
		return obj, obj != nil
	default:
		return nil, false
	}
}

// Position holds each coordinate in its plain decimal form.
type Position struct {
	Latitude  string
	Longitude string
}

func (p Position) String() string {
	return p.Latitude + "," + p.Longitude
}

type Attribute struct {
	EntityName  string `json:"entityName"`
	EntityValue string `json:"entityValue"`
}

type SinkPayload struct {
	ResourceModel string      `json:"resourceModel"`
	Attributes    []Attribute `json:"attributes"`
}

// SyncOutcome is the verdict of one run as written to the sync log.
type SyncOutcome struct {
	Success       bool
	Timestamp     time.Time
	Location      string
	FailureReason string
}
