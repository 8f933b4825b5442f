// Package spruthub implements the client side of the Sprut.hub JSON-RPC API.
//
// The hub is reached over a single WebSocket connection. Every request carries
// a UUID request ID, and responses are correlated back to the waiting caller by
// that ID, so one connection can serve concurrent tool invocations.
//
// The connection is established lazily on the first call and re-established
// after a transport failure. Credentials come from [Config]; a Config that
// lacks required connection parameters fails validation with a
// [*MissingConfigError] naming the missing settings.
//
// # Usage
//
//	client, err := spruthub.NewWSClient(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	accessories, err := client.ListAccessories(ctx)
package spruthub
