package register_push_token

// RegisterPushTokenRequest HTTP request model.
type RegisterPushTokenRequest struct {
	DeviceID string `json:"deviceId"`
	Token    string `json:"token"`
}
