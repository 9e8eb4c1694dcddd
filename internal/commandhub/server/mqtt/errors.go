package mqtt

import "errors"

var errNotConnected = errors.New("mqtt broker not connected")
