package canvasbridge

import "github.com/designfabric/canvasbridge-go/document"

// Parameter extraction helpers. Schemas guarantee presence and type of
// required fields before a handler runs, so these stay permissive: a missing
// or mistyped optional simply yields the zero value.

func strParam(params map[string]interface{}, key string) string {
	s, _ := params[key].(string)
	return s
}

func floatParam(params map[string]interface{}, key string) (float64, bool) {
	switch v := params[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func floatOrDefault(params map[string]interface{}, key string, def float64) float64 {
	if v, ok := floatParam(params, key); ok {
		return v
	}
	return def
}

func optFloat(params map[string]interface{}, key string) *float64 {
	if v, ok := floatParam(params, key); ok {
		return &v
	}
	return nil
}

func intOrDefault(params map[string]interface{}, key string, def int) int {
	if v, ok := floatParam(params, key); ok {
		return int(v)
	}
	return def
}

func boolParam(params map[string]interface{}, key string) bool {
	b, _ := params[key].(bool)
	return b
}

func strSlice(params map[string]interface{}, key string) []string {
	raw, ok := params[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func mapSlice(params map[string]interface{}, key string) []map[string]interface{} {
	raw, ok := params[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

// colorParam decodes a {r,g,b,a} object; alpha defaults to 1 when absent.
func colorParam(params map[string]interface{}, key string) (document.Color, bool) {
	raw, ok := params[key].(map[string]interface{})
	if !ok {
		return document.Color{}, false
	}
	c := document.Color{A: 1}
	if v, ok := floatParam(raw, "r"); ok {
		c.R = v
	}
	if v, ok := floatParam(raw, "g"); ok {
		c.G = v
	}
	if v, ok := floatParam(raw, "b"); ok {
		c.B = v
	}
	if v, ok := floatParam(raw, "a"); ok {
		c.A = v
	}
	return c, true
}
