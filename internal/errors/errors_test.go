package errors

import (
	stderrors "errors"
	"testing"

	"puckval/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDomainMapsSentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"schema", core.NewSchemaError("identifier"), CodeSchemaError},
		{"missing attribute", core.NewMissingAttributeError("rostered"), CodeMissingAttribute},
		{"empty category set", core.ErrEmptyCategorySet, CodeEmptyCategorySet},
		{"unknown policy", core.ErrUnknownPolicy, CodeInvalidInput},
		{"not found", core.ErrSnapshotNotFound, CodeNotFound},
		{"no data", core.ErrNoData, CodeExternalService},
		{"unrecognized", stderrors.New("boom"), CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, FromDomain(tt.err).Code)
		})
	}
}

func TestFromDomainKeepsAppErrors(t *testing.T) {
	appErr := InvalidInput("teams must be positive")
	assert.Same(t, appErr, FromDomain(appErr))

	wrapped := ExternalServiceError("stats source", stderrors.New("api down"))
	assert.Equal(t, CodeExternalService, FromDomain(wrapped).Code)
}

func TestExternalServiceErrorKeepsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := ExternalServiceError("stats source", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, CodeExternalService, err.Code)
}

func TestWrapPreservesAppErrorCode(t *testing.T) {
	err := Wrap(ConfigInvalid("bad percentile"), "loading configuration")
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeConfigInvalid, appErr.Code)
}
