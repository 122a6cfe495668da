package annotation

import (
	"sort"
	"strings"
)

// разделы, которые сливаются поимённо (по ключам второго уровня)
var commonProperties = map[string]bool{
	"components":          true,
	"consumes":            true,
	"produces":            true,
	"paths":               true,
	"schemas":             true,
	"securityDefinitions": true,
	"responses":           true,
	"parameters":          true,
	"definitions":         true,
	"webhooks":            true,
	"x-webhooks":          true,
}

// пустые разделы удаляются из итогового документа
var droppedWhenEmpty = []string{
	"components", "tags", "definitions", "parameters", "responses", "securityDefinitions",
}

// organize вливает один разобранный фрагмент в документ.
func organize(doc Document, fragment map[string]any) {
	keys := make([]string, 0, len(fragment))
	for k := range fragment {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := fragment[key]
		switch {
		case commonProperties[key]:
			defs, ok := value.(map[string]any)
			if !ok {
				continue
			}
			section := sectionOf(doc, key)
			for name, def := range defs {
				section[name] = mergeDeep(section[name], def)
			}
		case strings.HasPrefix(key, "x-"):
			doc[key] = value
		case key == "tags":
			appendTags(doc, value)
		default:
			// "/users:" без обёртки paths
			paths := sectionOf(doc, "paths")
			paths[key] = mergeDeep(paths[key], value)
		}
	}
}

func sectionOf(doc Document, key string) map[string]any {
	section, ok := doc[key].(map[string]any)
	if !ok {
		section = make(map[string]any)
		doc[key] = section
	}
	return section
}

// mergeDeep сливает map рекурсивно; скаляры и массивы из src заменяют dst.
func mergeDeep(dst, src any) any {
	srcMap, ok := src.(map[string]any)
	if !ok {
		return src
	}
	dstMap, ok := dst.(map[string]any)
	if !ok {
		dstMap = make(map[string]any, len(srcMap))
	}
	for k, v := range srcMap {
		dstMap[k] = mergeDeep(dstMap[k], v)
	}
	return dstMap
}

func appendTags(doc Document, value any) {
	var incoming []any
	switch v := value.(type) {
	case []any:
		incoming = v
	case map[string]any:
		incoming = []any{v}
	default:
		return
	}
	tags, _ := doc["tags"].([]any)
	for _, tag := range incoming {
		if !hasTag(tags, tag) {
			tags = append(tags, tag)
		}
	}
	doc["tags"] = tags
}

func hasTag(tags []any, tag any) bool {
	name := tagName(tag)
	for _, t := range tags {
		if tagName(t) == name {
			return true
		}
	}
	return false
}

func tagName(tag any) any {
	if m, ok := tag.(map[string]any); ok {
		return m["name"]
	}
	return tag
}

// finalize гарантирует наличие paths и убирает пустые разделы.
func finalize(doc Document) {
	if _, ok := doc["paths"].(map[string]any); !ok {
		doc["paths"] = map[string]any{}
	}
	for _, key := range droppedWhenEmpty {
		v, ok := doc[key]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case map[string]any:
			if len(val) == 0 {
				delete(doc, key)
			}
		case []any:
			if len(val) == 0 {
				delete(doc, key)
			}
		case nil:
			delete(doc, key)
		}
	}
}
