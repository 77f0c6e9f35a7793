package channel

import "encoding/json"

// viewCount decodes the total_live_views field, which the API reports as
// either an integer or the boolean false meaning zero.
type viewCount int

func (v *viewCount) UnmarshalJSON(data []byte) error {
	if string(data) == "false" {
		*v = 0
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*v = viewCount(n)
	return nil
}
