package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCollection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errMsg  string
		wantErr bool
	}{
		{name: "valid simple", input: "diagnoses"},
		{name: "valid with underscore", input: "price_snapshots"},
		{name: "valid with digits", input: "parcels_2026"},
		{name: "empty", input: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "too short", input: "ab", wantErr: true, errMsg: "at least 3"},
		{name: "too long", input: strings.Repeat("a", 33), wantErr: true, errMsg: "not exceed 32"},
		{name: "uppercase rejected", input: "Diagnoses", wantErr: true, errMsg: "lowercase"},
		{name: "path characters rejected", input: "a/b/c", wantErr: true, errMsg: "lowercase"},
		{name: "spaces rejected", input: "my records", wantErr: true, errMsg: "lowercase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCollection(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDeviceID(t *testing.T) {
	assert.NoError(t, ValidateDeviceID("3f8a2c1e-device-01"))
	assert.Error(t, ValidateDeviceID(""))
	assert.Error(t, ValidateDeviceID("a"))
	assert.Error(t, ValidateDeviceID("bad id with spaces"))
}
