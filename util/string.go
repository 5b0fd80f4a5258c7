package util

import (
	"fmt"
	"strings"
)

// JoinString renders each element with fmt.Sprint and joins them with sep
func JoinString[S any](elems []S, sep string) string {
	sb := strings.Builder{}
	for i, elem := range elems {
		if i != 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(fmt.Sprint(elem))
	}
	return sb.String()
}

// JoinErrorsWith renders each error on its own line, each prefixed with prefix
func JoinErrorsWith[E error](prefix string, errs []E, sep string) string {
	sb := strings.Builder{}
	for i, err := range errs {
		if i != 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(prefix)
		sb.WriteString(err.Error())
	}
	return sb.String()
}
