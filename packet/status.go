package packet

// @gen
type StatusRequest struct{}

// @gen
type StatusPing struct {
	Payload int64 `field:"Long"`
}

// StatusResponse carries the server list JSON document.
//
// @gen
type StatusResponse struct {
	Response string `field:"String"`
}
