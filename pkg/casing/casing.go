// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package casing converts identifiers between the storage naming convention
(snake_case columns) and the API naming convention (camelCase JSON fields).

Key Functions:
  - ToCamel / ToSnake: Convert a single identifier.
  - ToCamelKeys: Rename the top-level keys of a row map.
  - ToCamelDeep: Same as ToCamelKeys, and also rename the keys of every
    element of the named array-valued fields.

All functions are pure and total. Identifiers without separators are returned
unchanged, and keys that are already camelCase pass through untouched.
*/
package casing

import (
	"strings"
	"unicode"
)

// ToCamel upper-cases every lowercase ASCII letter that follows a '_' or '-'
// and drops that separator.
//
// Example:
//
//	casing.ToCamel("vote_average") // "voteAverage"
//	casing.ToCamel("en-abstract")  // "enAbstract"
func ToCamel(key string) string {
	if !strings.ContainsAny(key, "_-") {
		return key
	}

	var builder strings.Builder
	builder.Grow(len(key))

	for index := 0; index < len(key); index++ {
		current := key[index]
		isSeparator := current == '_' || current == '-'

		// Only a separator followed by a lowercase letter is folded.
		if isSeparator && index+1 < len(key) && key[index+1] >= 'a' && key[index+1] <= 'z' {
			builder.WriteByte(key[index+1] - ('a' - 'A'))
			index++
			continue
		}

		builder.WriteByte(current)
	}

	return builder.String()
}

// ToSnake is the inverse of [ToCamel] for identifiers built from lowercase words.
//
// Example:
//
//	casing.ToSnake("youtubeTrailerKey") // "youtube_trailer_key"
func ToSnake(key string) string {
	var builder strings.Builder
	builder.Grow(len(key) + 4)

	for index, r := range key {
		if unicode.IsUpper(r) {
			if index > 0 {
				builder.WriteByte('_')
			}
			builder.WriteRune(unicode.ToLower(r))
			continue
		}
		builder.WriteRune(r)
	}

	return builder.String()
}

// ToCamelKeys returns a copy of row whose top-level keys are converted with [ToCamel].
// Values are not inspected.
func ToCamelKeys(row map[string]any) map[string]any {
	if row == nil {
		return nil
	}

	converted := make(map[string]any, len(row))
	for key, value := range row {
		converted[ToCamel(key)] = value
	}

	return converted
}

// ToCamelDeep behaves like [ToCamelKeys] and additionally converts the keys of
// each element of the named nested fields. The nested names may be given in
// either convention. Elements that are not maps are left untouched.
func ToCamelDeep(row map[string]any, nestedKeys ...string) map[string]any {
	converted := ToCamelKeys(row)

	for _, nestedKey := range nestedKeys {
		field := ToCamel(nestedKey)

		switch value := converted[field].(type) {
		case []map[string]any:
			items := make([]map[string]any, len(value))
			for index, item := range value {
				items[index] = ToCamelKeys(item)
			}
			converted[field] = items

		case []any:
			items := make([]any, len(value))
			for index, item := range value {
				if nested, ok := item.(map[string]any); ok {
					items[index] = ToCamelKeys(nested)
					continue
				}
				items[index] = item
			}
			converted[field] = items

		case map[string]any:
			converted[field] = ToCamelKeys(value)
		}
	}

	return converted
}
