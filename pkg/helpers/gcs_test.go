package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentObjectPath(t *testing.T) {
	p, err := DocumentObjectPath("user-1", "Image/PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "kyc/user-1/"))
	assert.True(t, strings.HasSuffix(p, ".png"))

	other, err := DocumentObjectPath("user-1", "application/pdf")
	require.NoError(t, err)
	assert.NotEqual(t, p, other)

	_, err = DocumentObjectPath("user-1", "text/html")
	assert.ErrorIs(t, err, ErrUnsupportedDocumentType)
}

func TestObjectURI(t *testing.T) {
	assert.Equal(t, "gs://kyc-docs/kyc/u/x.pdf", ObjectURI("kyc-docs", "kyc/u/x.pdf"))
}
