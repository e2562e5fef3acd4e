package document

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// CoerceQueryValue converts a raw query-string value into the richest type it
// parses as, trying bool, integer and float in that order before keeping the
// string. The identifier field is exempt, see BuildFilter.
func CoerceQueryValue(rawValue string) interface{} {
	switch strings.ToLower(rawValue) {
	case "true":
		return true
	case "false":
		return false
	}

	if isDigits(rawValue) {
		integerValue, err := strconv.ParseInt(rawValue, 10, 64)
		if err == nil {
			return integerValue
		}
	}

	floatValue, err := strconv.ParseFloat(rawValue, 64)
	if err == nil {
		return floatValue
	}

	return rawValue
}

// BuildFilter turns query parameters into a field-equality filter. The
// identifier field is always compared as a string: parsing it as an ObjectID
// would reject well-formed-looking values with a hard failure instead of
// matching nothing.
func BuildFilter(queryParams map[string]string) bson.M {
	filter := bson.M{}
	for fieldName, rawValue := range queryParams {
		if fieldName == IdentifierField {
			filter[fieldName] = rawValue
			continue
		}

		filter[fieldName] = CoerceQueryValue(rawValue)
	}

	return filter
}

func isDigits(rawValue string) bool {
	if rawValue == "" {
		return false
	}

	for _, character := range rawValue {
		if character < '0' || character > '9' {
			return false
		}
	}

	return true
}
