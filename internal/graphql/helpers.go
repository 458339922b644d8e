package graphql

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/tournevent/shipit/pkg/shipit"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func shippingRequests(inputs []map[string]any) ([]*shipit.ShippingRequest, error) {
	reqs := make([]*shipit.ShippingRequest, 0, len(inputs))
	for i, in := range inputs {
		req, err := shipit.NewShippingRequest(in)
		if err != nil {
			return nil, fmt.Errorf("inputs[%d]: %w", i, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// stringArg returns args[name] as a string. Numbers are formatted without
// exponent so numeric ids survive a JSON round trip.
func stringArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func objectArg(args map[string]any, name string) (map[string]any, error) {
	switch v := args[name].(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	default:
		return nil, fmt.Errorf("argument %q must be an object", name)
	}
}

func objectListArg(args map[string]any, name string) ([]map[string]any, error) {
	raw, ok := args[name].([]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be a list of objects", name)
	}
	out := make([]map[string]any, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("argument %q[%d] must be an object", name, i)
		}
		out = append(out, m)
	}
	return out, nil
}
