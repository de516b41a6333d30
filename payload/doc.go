/*
Package payload provides the plain key/value documents that apibind maps
models from and to.

A Payload is an ordinary map[string]any. The helpers here build one from the
usual external encodings: JSON and YAML API responses, payload files on disk,
and DynamoDB items.

	resp, err := payload.FromJSON(body)
	user, err := apibind.New[User](ctx, resp)
*/
package payload
