package infirmary

import (
	"errors"
)

var (
	ErrURLRequired  = errors.New(MsgURLRequired)
	ErrInvalidRow   = errors.New(MsgInvalidRow)
	ErrInvalidToken = errors.New(MsgInvalidToken)
)

const (
	MsgURLRequired     = "`url` is required."
	MsgInvalidRow      = "invalid lab result row"
	MsgInvalidToken    = "invalid access token"
	MsgUnableToConnect = "Unable to connect to the REST API server."

	MsgRequestFailed         = "request to the REST API failed"
	MsgRequestSucceeded      = "request to the REST API succeeded"
	MsgDecodeResponseFailed  = "can not decode response body"
	MsgSkippingInvalidRow    = "skipping invalid lab result row"
	MsgInvalidDiagnosticDate = "can not parse diagnostic date"
)
