// Package controllers file: controllers/template_funcs.go
package controllers

import (
	"errors"
	"html/template"
)

// TemplateFuncs are the helpers the HTML templates rely on. Register them
// with SetFuncMap before loading templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{"dict": dict}
}

// dict builds a map from alternating keys and values, for passing several
// values to a sub-template.
func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	out := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict: keys must be strings")
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}
