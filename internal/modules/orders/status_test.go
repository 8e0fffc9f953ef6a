package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryStatusHasLabelAndBadge(t *testing.T) {
	for _, s := range Statuses {
		assert.NotEmpty(t, Label(string(s)), s)
		assert.NotEqual(t, string(s), Label(string(s)), "known status %s must be localized", s)
		assert.NotEmpty(t, Badge(string(s)), s)
		assert.NotEqual(t, unknownBadge, Badge(string(s)), s)
	}
	for _, s := range []PaymentStatus{PaymentPending, PaymentSuccess, PaymentFailed, PaymentRefunded} {
		assert.NotEqual(t, string(s), PaymentLabel(string(s)))
		assert.NotEmpty(t, PaymentBadge(string(s)))
	}
}

func TestUnknownStatusEchoesRaw(t *testing.T) {
	assert.Equal(t, "RETURNED", Label("RETURNED"))
	assert.Equal(t, unknownBadge, Badge("RETURNED"))
	assert.Equal(t, "", Label(""))
	assert.Equal(t, "CHARGEBACK", PaymentLabel("CHARGEBACK"))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Chờ xác nhận", Label("PENDING"))
	assert.Equal(t, "Yêu cầu hủy", Label("CANCEL_REQUESTED"))
	assert.Equal(t, "bg-success", Badge("DELIVERED"))
	require.True(t, Pending.Known())
	require.False(t, Status("X").Known())
}
