package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDomains = []string{"mofa.ai", "mofa-test.workers.dev"}

func TestNormalizeHost(t *testing.T) {
	assert.Equal(t, "dev1.mofa.ai", NormalizeHost("Dev1.MOFA.ai"))
	assert.Equal(t, "dev1.mofa.ai", NormalizeHost("dev1.mofa.ai:8080"))
	assert.Equal(t, "dev1.mofa.ai", NormalizeHost("dev1.mofa.ai."))
	assert.Equal(t, "", NormalizeHost(""))
}

func TestValidateHost(t *testing.T) {
	tests := []struct {
		host    string
		wantErr bool
	}{
		{"dev1.mofa.ai", false},
		{"DEV1.mofa.ai:443", false},
		{"dev1.mofa-test.workers.dev", false},
		{"a.b.mofa.ai", false},
		{"mofa.ai", true},
		{"dev1.notmofa.ai", true},
		{"dev1.mofa.ai.evil.com", true},
		{"evilmofa.ai", true},
		{"localhost", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			err := ValidateHost(tt.host, testDomains)
			if tt.wantErr {
				var notFound *NotFoundError
				require.ErrorAs(t, err, &notFound)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		host    string
		want    string
		wantErr bool
	}{
		{"dev1.mofa.ai", "dev1", false},
		{"dev1.mofa-test.workers.dev", "dev1", false},
		{"a.b.mofa.ai", "a", false},
		{"Dev1.mofa.ai:8080", "dev1", false},
		{"mofa.ai", "", true},
		{".mofa.ai", "", true},
		{"localhost", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			username, err := ExtractUsername(tt.host)
			if tt.wantErr {
				var badRequest *BadRequestError
				require.ErrorAs(t, err, &badRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, username)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, `host not served: "example.com"`, (&NotFoundError{Host: "example.com"}).Error())
	assert.Equal(t, `no username in host: "mofa.ai"`, (&BadRequestError{Host: "mofa.ai"}).Error())

	err := &StageError{Stage: StageFetchDocuments, Cause: assert.AnError}
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "fetch_documents")
}
