package infer

import (
	"regexp"
	"strings"
)

// attributePattern matches attr="${expr}" and attr='${expr}'. Attribute
// names may contain hyphens.
var attributePattern = regexp.MustCompile(`([\w-]+)=["']\s*\$\{\s*([^}]+)\s*\}\s*["']`)

// Contexts records, for each known variable, the attribute names it is the
// whole value of, in first-seen order. Every variable gets an entry.
func Contexts(body string, variables []string) map[string][]string {
	contexts := make(map[string][]string, len(variables))
	for _, v := range variables {
		contexts[v] = []string{}
	}

	for _, m := range attributePattern.FindAllStringSubmatch(body, -1) {
		expr := strings.TrimSpace(m[2])
		attrs, known := contexts[expr]
		if expr == "" || !known {
			continue
		}
		if !containsString(attrs, m[1]) {
			contexts[expr] = append(attrs, m[1])
		}
	}

	return contexts
}

// Defaults classifies every variable of a template body and returns its
// default value.
func Defaults(body string, variables []string) map[string]string {
	contexts := Contexts(body, variables)
	values := make(map[string]string, len(variables))
	for _, v := range variables {
		values[v] = DefaultValue(v, contexts[v])
	}
	return values
}

// Classes is like Defaults but keeps the full classification.
func Classes(body string, variables []string) map[string]Class {
	contexts := Contexts(body, variables)
	classes := make(map[string]Class, len(variables))
	for _, v := range variables {
		classes[v] = Classify(v, contexts[v])
	}
	return classes
}

func containsString(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}
