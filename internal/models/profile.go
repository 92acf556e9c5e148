package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldValue is a profile value sent either as a JSON string, number or
// boolean. A nil *FieldValue means the caller did not send the key (or sent null).
type FieldValue string

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FieldValue(s)
		return nil
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch val := raw.(type) {
	case json.Number:
		*v = FieldValue(formatNumber(val))
	case bool:
		*v = FieldValue(strconv.FormatBool(val))
	default:
		return fmt.Errorf("unsupported profile value %s", string(data))
	}
	return nil
}

func formatNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}

// ProfileFields is the candidate profile sent to POST /analyze.
type ProfileFields struct {
	Education     *FieldValue `json:"education"`
	Experience    *FieldValue `json:"experience"`
	Field         *FieldValue `json:"field"`
	CurrentStatus *FieldValue `json:"current_status"`
	HasOffer      *FieldValue `json:"has_offer"`
	JobDetails    *FieldValue `json:"job_details"`
	Achievements  *FieldValue `json:"achievements"`
	Country       *FieldValue `json:"country"`
}

// Value returns the field text, or def when the field is absent.
func Value(v *FieldValue, def string) string {
	if v == nil {
		return def
	}
	return string(*v)
}

// Ptr is a helper for building profiles in code.
func Ptr(s string) *FieldValue {
	v := FieldValue(s)
	return &v
}
