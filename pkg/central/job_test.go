package central_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetreach/commworker/pkg/central"
)

func TestJob_IsUrgent(t *testing.T) {
	t.Run("urgent true", func(t *testing.T) {
		j := central.Job{Payload: []byte(`{"urgent": true}`)}
		assert.True(t, j.IsUrgent())
	})

	t.Run("urgent absent", func(t *testing.T) {
		j := central.Job{Payload: []byte(`{"to": "a@b.com"}`)}
		assert.False(t, j.IsUrgent())
	})

	t.Run("malformed payload", func(t *testing.T) {
		j := central.Job{Payload: []byte(`not json`)}
		assert.False(t, j.IsUrgent())
	})
}

func TestJob_DecodeEmailPayload(t *testing.T) {
	j := central.Job{Payload: []byte(`{"to":"a@b.com","subject":"Hi","body":"x","cc":["c@d.com"]}`)}
	p, err := j.DecodeEmailPayload()
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", p.To)
	assert.Equal(t, "Hi", p.Subject)
	assert.Equal(t, []string{"c@d.com"}, p.CC)
}

func TestJob_DecodeSMSPayload(t *testing.T) {
	j := central.Job{Payload: []byte(`{"to":"+15551234567","body":"x","customer_id":"42"}`)}
	p, err := j.DecodeSMSPayload()
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", p.To)
	assert.Equal(t, "42", p.CustomerID)
}

func TestJob_DecodeNotifyCustomerPayload(t *testing.T) {
	j := central.Job{Payload: []byte(`{"customer_id":"7","body":"x","preferred_channel":"sms"}`)}
	p, err := j.DecodeNotifyCustomerPayload()
	require.NoError(t, err)
	assert.Equal(t, "7", p.CustomerID)
	assert.Equal(t, "sms", p.PreferredChannel)
}
