// Package annotation собирает OpenAPI-документ из аннотированных комментариев (@openapi / @swagger)
// в исходниках API-роутов и из YAML-фрагментов.
package annotation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Document — OpenAPI-документ в виде JSON-совместимого дерева (map[string]any, []any, скаляры).
type Document map[string]any

// порядок ключей верхнего уровня при сериализации; остальные — по алфавиту
var topLevelOrder = []string{
	"openapi", "swagger", "info", "servers", "host", "basePath", "schemes",
	"consumes", "produces", "paths", "webhooks", "components", "definitions",
	"parameters", "responses", "securityDefinitions", "security", "tags", "externalDocs",
}

// MarshalJSON пишет известные ключи верхнего уровня в каноническом порядке OpenAPI.
func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	keys := make([]string, 0, len(d))
	known := make(map[string]bool, len(topLevelOrder))
	for _, k := range topLevelOrder {
		known[k] = true
		if _, ok := d[k]; ok {
			keys = append(keys, k)
		}
	}
	rest := make([]string, 0, len(d))
	for k := range d {
		if !known[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(d[k])
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", k, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Clone возвращает глубокую копию документа.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(cloneValue(map[string]any(d)).(map[string]any))
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case Document:
		return cloneValue(map[string]any(val))
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}

// normalize приводит результат yaml.v3 к JSON-совместимому виду:
// ключи map[any]any становятся строками, даты — RFC 3339.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case time.Time:
		return val.Format(time.RFC3339)
	case []byte:
		return string(val)
	default:
		return val
	}
}
