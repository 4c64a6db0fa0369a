package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedWebhookStatus(t *testing.T) {
	assert.True(t, IsSupportedWebhookStatus(TransactionStatusAuthorized))
	assert.True(t, IsSupportedWebhookStatus(TransactionStatusCompleted))

	assert.False(t, IsSupportedWebhookStatus(TransactionStatusPending))
	assert.False(t, IsSupportedWebhookStatus("Declined"))
	assert.False(t, IsSupportedWebhookStatus("authorized"))
	assert.False(t, IsSupportedWebhookStatus(""))
}
