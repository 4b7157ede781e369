package common

import "strings"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// InNamespace reports whether ns is root itself or one of its sub-namespaces.
// InNamespace("System.Collections", "System") is true,
// InNamespace("SystemX", "System") is false.
func InNamespace(ns, root string) bool {
	if root == "" {
		return false
	}

	if ns == root {
		return true
	}

	return strings.HasPrefix(ns, root+".")
}

// InAnyNamespace reports whether ns belongs to one of roots.
func InAnyNamespace(ns string, roots []string) bool {
	for _, root := range roots {
		if InNamespace(ns, root) {
			return true
		}
	}

	return false
}
