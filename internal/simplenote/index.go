package simplenote

import (
	"fmt"
	"strconv"
)

// IndexEntry is one element of the index listing. Its shape is defined by the
// service, so it is kept as a generic JSON object.
type IndexEntry map[string]any

func (e IndexEntry) Key() string {
	return e.stringField("key")
}

func (e IndexEntry) Modify() string {
	return e.stringField("modify")
}

// Deleted accepts both JSON booleans and the "true"/"false" strings older
// versions of the service emitted.
func (e IndexEntry) Deleted() bool {
	switch v := e["deleted"].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "True" || v == "1"
	case float64:
		return v != 0
	default:
		return false
	}
}

func (e IndexEntry) stringField(name string) string {
	switch v := e[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
