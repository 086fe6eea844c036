package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"troffee-admin-console/internal/domain/shared"
	"troffee-admin-console/internal/domain/user"
)

func TestParseClientMessage(t *testing.T) {
	_, err := ParseClientMessage([]byte(`{`))
	assert.ErrorIs(t, err, shared.ErrInvalidPayload)

	_, err = ParseClientMessage([]byte(`{"data":{}}`))
	assert.ErrorIs(t, err, shared.ErrMessageTypeRequired)

	msg, err := ParseClientMessage([]byte(`{"type":"search","data":{"query":"ann"}}`))
	require.NoError(t, err)
	assert.Equal(t, MessageTypeSearch, msg.Type)
	assert.Equal(t, "ann", msg.Query())
}

func TestClientMessage_Validate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{name: "ping", raw: `{"type":"ping"}`},
		{name: "refresh", raw: `{"type":"refresh"}`},
		{name: "search", raw: `{"type":"search","data":{"query":"bob"}}`},
		{name: "search without query", raw: `{"type":"search"}`},
		{name: "search with number", raw: `{"type":"search","data":{"query":5}}`, want: shared.ErrInvalidPayload},
		{name: "set page", raw: `{"type":"set_page","data":{"page":2}}`},
		{name: "set page zero", raw: `{"type":"set_page","data":{"page":0}}`, want: shared.ErrInvalidPage},
		{name: "set page fraction", raw: `{"type":"set_page","data":{"page":1.5}}`, want: shared.ErrInvalidPage},
		{name: "set page missing", raw: `{"type":"set_page"}`, want: shared.ErrInvalidPage},
		{name: "update without user", raw: `{"type":"update_user","data":{"fullName":"x"}}`, want: shared.ErrUserIDRequired},
		{name: "update without data", raw: `{"type":"update_user","user_id":"u1"}`, want: shared.ErrInvalidPayload},
		{name: "toggle without user", raw: `{"type":"toggle_suspend"}`, want: shared.ErrUserIDRequired},
		{name: "toggle", raw: `{"type":"toggle_suspend","user_id":"u1"}`},
		{name: "unknown", raw: `{"type":"place_bid"}`, want: shared.ErrUnknownMessageType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := ParseClientMessage([]byte(tc.raw))
			require.NoError(t, err)

			err = msg.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClientMessage_UserUpdate(t *testing.T) {
	msg, err := ParseClientMessage([]byte(`{"type":"update_user","user_id":"u1","data":{
		"fullName":"Ann","email":"ann@example.com","role":"admin","isEmailVerified":true,"password":""}}`))
	require.NoError(t, err)

	update, err := msg.UserUpdate()
	require.NoError(t, err)
	assert.Equal(t, user.Update{FullName: "Ann", Email: "ann@example.com", Role: user.RoleAdmin, IsEmailVerified: true}, update)

	msg.Data["isPhoneVerified"] = "yes"
	_, err = msg.UserUpdate()
	assert.ErrorIs(t, err, shared.ErrInvalidPayload)
}
