package normalize

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/onrcanogul/prod-analyzer/internal/model"
)

// flattenTree walks a parsed object tree and appends one entry per scalar
// leaf, building dot-notation keys as it descends. Array elements get
// bracket-indexed sub-keys (list[0].field). Null leaves are skipped on
// purpose: an absent key cannot violate a value-based rule.
//
// lowerKeys is false only for JSON, whose key casing must survive because
// some target ecosystems (.NET configuration) treat keys case-sensitively.
func flattenTree(prefix string, node interface{}, sourcePath string, lowerKeys bool, out *[]model.Entry) {
	switch v := node.(type) {
	case nil:
		return
	case map[string]interface{}:
		// Sorted key order keeps the entry sequence, and therefore every
		// downstream ordering tie-break, identical across runs.
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			flattenTree(joinKey(prefix, key, lowerKeys), v[key], sourcePath, lowerKeys, out)
		}
	case map[interface{}]interface{}:
		// Non-string mapping keys (numeric YAML keys) are stringified.
		keys := make([]string, 0, len(v))
		children := make(map[string]interface{}, len(v))
		for key, child := range v {
			name := fmt.Sprint(key)
			keys = append(keys, name)
			children[name] = child
		}
		sort.Strings(keys)
		for _, key := range keys {
			flattenTree(joinKey(prefix, key, lowerKeys), children[key], sourcePath, lowerKeys, out)
		}
	case []interface{}:
		for i, child := range v {
			flattenTree(prefix+"["+strconv.Itoa(i)+"]", child, sourcePath, lowerKeys, out)
		}
	default:
		*out = append(*out, model.Entry{
			Key:        prefix,
			Value:      stringifyScalar(v),
			SourceFile: sourcePath,
		})
	}
}

func joinKey(prefix, key string, lower bool) string {
	if lower {
		key = strings.ToLower(key)
	}
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// stringifyScalar discards source-format type information: booleans and
// numbers become their literal text.
func stringifyScalar(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	}
	return fmt.Sprint(v)
}
