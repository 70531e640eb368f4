package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopePairingInvariants(t *testing.T) {
	data := &ResumeData{PersonalInfo: &PersonalInfo{Name: "Jane"}}

	success := SuccessResponse("ok", data)
	assert.Equal(t, "success", success.Status)
	assert.NotNil(t, success.Data)
	assert.Nil(t, success.Error)

	partial := PartialResponse("mostly ok", data, "some entries dropped")
	assert.Equal(t, "partial", partial.Status)
	assert.NotNil(t, partial.Data)
	require.NotNil(t, partial.Error)
	assert.Equal(t, "some entries dropped", *partial.Error)

	failure := ErrorResponse("failed", "boom")
	assert.Equal(t, "error", failure.Status)
	assert.Nil(t, failure.Data)
	require.NotNil(t, failure.Error)
	assert.Equal(t, "boom", *failure.Error)
}

func TestFromOutcome(t *testing.T) {
	data := &ResumeData{PersonalInfo: &PersonalInfo{}}

	tests := []struct {
		name       string
		outcome    ParseOutcome
		wantStatus string
		wantData   bool
		wantError  bool
	}{
		{
			name:       "success",
			outcome:    ParseOutcome{Status: StatusSuccess, Message: "ok", Data: data},
			wantStatus: "success",
			wantData:   true,
		},
		{
			name:       "partial",
			outcome:    ParseOutcome{Status: StatusPartial, Message: "warn", Data: data, Err: "detail"},
			wantStatus: "partial",
			wantData:   true,
			wantError:  true,
		},
		{
			name:       "error",
			outcome:    ParseOutcome{Status: StatusError, Message: "fail", Err: "detail"},
			wantStatus: "error",
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := FromOutcome(&tt.outcome)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantData, resp.Data != nil)
			assert.Equal(t, tt.wantError, resp.Error != nil)
		})
	}
}
