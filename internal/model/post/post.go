// Package post holds the request and response payloads of the post procedures.
package post

import "github.com/deppfellow/go-postrpc/internal/validation"

// SecretMessage is the fixed payload of getSecretMessage.
const SecretMessage = "you can now see this secret message!"

// HelloRequest is the input of the hello procedure.
//
// Text is a pointer so a missing field can be told apart from "".
type HelloRequest struct {
	Text *string `json:"text" validate:"required"`
}

func (r *HelloRequest) Validate() error {
	return validation.Struct(r)
}

// HelloResponse is the output of the hello procedure.
type HelloResponse struct {
	Greeting string `json:"greeting"`
}

// GetSecretMessageRequest is the (empty) input of getSecretMessage.
type GetSecretMessageRequest struct{}

func (r *GetSecretMessageRequest) Validate() error {
	return nil
}
