package common

import "strings"

func RemoveSingleQuotesIfAny(str string) string {
	// Terminals quote dragged-and-dropped paths as "'/tmp/my car.jpg'"
	if len(str) >= 2 && str[0] == '\'' && str[len(str)-1] == '\'' {
		str = str[1 : len(str)-1]
	}
	return str
}

func RemoveDoubleQuotesIfAny(str string) string {
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	return str
}

// CleanInputPath trims whitespace and the quotes a terminal may add around a pasted path.
func CleanInputPath(str string) string {
	str = strings.TrimSpace(str)
	str = RemoveDoubleQuotesIfAny(str)
	str = RemoveSingleQuotesIfAny(str)
	return str
}
