package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFields_Unmarshal(t *testing.T) {
	body := `{
		"education": "Master's Degree",
		"experience": 5,
		"field": "Data Science",
		"has_offer": true,
		"job_details": null,
		"country": "India"
	}`

	var p ProfileFields
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.Equal(t, "Master's Degree", Value(p.Education, ""))
	assert.Equal(t, "5", Value(p.Experience, ""))
	assert.Equal(t, "true", Value(p.HasOffer, "No"))
	assert.Nil(t, p.JobDetails)
	assert.Equal(t, "N/A", Value(p.JobDetails, "N/A"))
	assert.Nil(t, p.Achievements)
	assert.Equal(t, "India", Value(p.Country, ""))
}

func TestFieldValue_Numbers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`3`, "3"},
		{`3.5`, "3.5"},
		{`"7 years"`, "7 years"},
		{`""`, ""},
	}

	for _, tt := range tests {
		var v FieldValue
		require.NoError(t, json.Unmarshal([]byte(tt.in), &v), tt.in)
		assert.Equal(t, tt.want, string(v))
	}
}

func TestFieldValue_RejectsObjects(t *testing.T) {
	var p ProfileFields
	err := json.Unmarshal([]byte(`{"education": {"degree": "PhD"}}`), &p)
	assert.Error(t, err)
}
