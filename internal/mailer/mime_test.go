package mailer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/config"
)

func TestBuildMessageValidates(t *testing.T) {
	_, err := buildMessage(Email{From: "a@b", Subject: "s", TextBody: "x"}, "d", time.Now())
	assert.ErrorIs(t, err, errNoRecipient)

	_, err = buildMessage(Email{To: []string{"a@b"}, Subject: "s", TextBody: "x"}, "d", time.Now())
	assert.ErrorIs(t, err, errNoFrom)

	_, err = buildMessage(Email{To: []string{"a@b"}, From: "c@d", TextBody: "x"}, "d", time.Now())
	assert.ErrorIs(t, err, errNoSubject)

	_, err = buildMessage(Email{To: []string{"a@b"}, From: "c@d", Subject: "s"}, "d", time.Now())
	assert.ErrorIs(t, err, errNoBody)
}

func TestBuildMessageTextOnly(t *testing.T) {
	raw, err := buildMessage(Email{
		FromName: "Nội Thất VP",
		From:     "no-reply@noithat.test",
		To:       []string{"ops@noithat.test"},
		Subject:  "Yêu cầu hủy đơn",
		TextBody: "Đơn hàng DH001 yêu cầu hủy.",
		Headers:  map[string]string{"X-Order-Code": "DH001"},
	}, "noithat.test", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, raw, "To: ops@noithat.test\r\n")
	assert.Contains(t, raw, "X-Order-Code: DH001\r\n")
	assert.Contains(t, raw, "@noithat.test>\r\n")
	assert.Contains(t, raw, "Content-Transfer-Encoding: quoted-printable")
	assert.NotContains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "=?utf-8?q?")
}

func TestBuildMessageMultipart(t *testing.T) {
	raw, err := buildMessage(Email{
		From:     "a@b",
		To:       []string{"c@d"},
		Subject:  "hi",
		TextBody: "plain",
		HTMLBody: "<p>html</p>",
	}, "d", time.Now())
	require.NoError(t, err)
	assert.Contains(t, raw, "multipart/alternative")
	assert.Equal(t, 2, strings.Count(raw, "charset=UTF-8"))
	assert.True(t, strings.HasSuffix(raw, "--\r\n"))
}

func TestNewWithoutHostIsNoop(t *testing.T) {
	s := New(config.SMTPConfig{}, nil)
	_, ok := s.(Noop)
	assert.True(t, ok)
	assert.NoError(t, s.Send(context.Background(), Email{Subject: "x"}))
}
