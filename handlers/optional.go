package handlers

import "encoding/json"

// optionalString distinguishes a JSON key that was absent from one that was
// present with a null or string value. Match updates need the distinction:
// {"result": null} clears a result, while omitting the key leaves it alone.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
