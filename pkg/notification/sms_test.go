package notification

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMSLink(t *testing.T) {
	link := SMSLink("9999999999", "hello there")
	assert.Equal(t, "sms:9999999999?body=hello+there", link)

	link = SMSLink("9999999999", SOSMessage("Asha", 12.9, 80.2))
	require.True(t, strings.HasPrefix(link, "sms:9999999999?body="))
	body, err := url.QueryUnescape(strings.TrimPrefix(link, "sms:9999999999?body="))
	require.NoError(t, err)
	assert.Contains(t, body, "SOS from Asha!")
	assert.Contains(t, body, "https://maps.google.com/?q=12.9,80.2")
}

func TestTelLink(t *testing.T) {
	assert.Equal(t, "tel:100", TelLink("100"))
}

func TestMapsURL(t *testing.T) {
	assert.Equal(t, "https://maps.google.com/?q=12.9,80.2", MapsURL(12.9, 80.2))
	assert.Equal(t, "https://maps.google.com/?q=-12.9174,-80.22", MapsURL(-12.9174, -80.22))
}

type fakeSMSClient struct {
	sent    []string
	failFor map[string]error
}

func (f *fakeSMSClient) Send(ctx context.Context, phone, message string) error {
	if err, ok := f.failFor[phone]; ok {
		return err
	}
	f.sent = append(f.sent, phone)
	return nil
}

func TestDispatchFanOut(t *testing.T) {
	t.Run("link-only mode attempts everything", func(t *testing.T) {
		d := NewDispatcher(nil, nil)
		out := d.Dispatch(context.Background(), []string{"9999999999"}, "msg")
		assert.Equal(t, 1, out.Attempted)
		assert.Equal(t, 0, out.Failed)
		require.Len(t, out.Results, 1)
		assert.Equal(t, SMSLink("9999999999", "msg"), out.Results[0].Link)
	})

	t.Run("one failure does not stop the rest", func(t *testing.T) {
		cli := &fakeSMSClient{failFor: map[string]error{"8888888888": errors.New("gateway down")}}
		d := NewDispatcher(cli, nil)

		out := d.Dispatch(context.Background(), []string{"9999999999", "8888888888", "7777777777"}, "msg")
		assert.Equal(t, 3, out.Attempted)
		assert.Equal(t, 1, out.Failed)
		assert.Equal(t, []string{"9999999999", "7777777777"}, cli.sent)
		assert.Equal(t, "gateway down", out.Results[1].Error)
		assert.Empty(t, out.Results[0].Error)
		assert.Empty(t, out.Results[2].Error)
	})

	t.Run("no contacts", func(t *testing.T) {
		d := NewDispatcher(nil, nil)
		out := d.Dispatch(context.Background(), nil, "msg")
		assert.Equal(t, 0, out.Attempted)
		assert.Empty(t, out.Results)
	})
}
