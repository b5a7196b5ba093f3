package farmos

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogTypes_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want LogTypes
	}{
		{
			name: "object keeps order",
			in:   `{"farm_seeding":{"label":"Seeding"},"farm_activity":{"label":"Activity","label_plural":"Activities"}}`,
			want: LogTypes{{Name: "farm_seeding", Label: "Seeding"}, {Name: "farm_activity", Label: "Activity", LabelPlural: "Activities"}},
		},
		{
			name: "array",
			in:   `[{"name":"farm_input","label":"Input"}]`,
			want: LogTypes{{Name: "farm_input", Label: "Input"}},
		},
		{name: "empty object", in: `{}`, want: LogTypes{}},
		{name: "null", in: `null`, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got LogTypes
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogTypes_UnmarshalRejectsScalar(t *testing.T) {
	var got LogTypes
	assert.Error(t, json.Unmarshal([]byte(`"farm_activity"`), &got))
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: `"12"`, want: "12"},
		{in: `12`, want: "12"},
		{in: `null`, want: ""},
		{in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f FlexString
			err := json.Unmarshal([]byte(tt.in), &f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.String())
		})
	}
}
