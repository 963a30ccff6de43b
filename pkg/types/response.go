package types

// Envelope is the top-level JSON shape for every API response. Payload keys
// ("items", "recommendations", "quick_sets", ...) sit next to the success flag.
type Envelope map[string]any

// Success builds an envelope with success=true plus the given payload keys.
func Success(payload Envelope) Envelope {
	out := Envelope{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	return out
}

// Failure builds an envelope with success=false and the public error message.
func Failure(message string) Envelope {
	return Envelope{"success": false, "error": message}
}
