// Package apiconnect wires the api messages to Connect handlers and clients.
//
// The services exchange plain Go structs, so every handler and client is
// built with Codec, a JSON codec that replaces Connect's protobuf-only
// default "json" codec.
package apiconnect

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Package is the protocol package that prefixes every procedure.
const Package = "tutorbook.v1"

// Codec marshals messages with encoding/json under the "json" name.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return data, nil
}

func (Codec) Unmarshal(data []byte, msg any) error {
	// Empty bodies decode to the zero message.
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}

func handlerOptions(opts []connect.HandlerOption) connect.HandlerOption {
	all := append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	return connect.WithHandlerOptions(all...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

func procedure(service, method string) string {
	return "/" + Package + "." + service + "/" + method
}

// mount dispatches requests under the service prefix by exact procedure path.
func mount(service string, routes map[string]http.Handler) (string, http.Handler) {
	prefix := "/" + Package + "." + service + "/"
	return prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// IsProcedure reports whether path addresses a tutorbook service.
func IsProcedure(path string) bool {
	return strings.HasPrefix(path, "/"+Package+".")
}
