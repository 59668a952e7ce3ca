// Package binding expands ${name} placeholders in face texts.
//
// Variables come from the "vars" section of the configuration file and may
// be nested maps; a dotted path such as ${station.call} walks into them.
package binding

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Vars 是插值用的变量表。值可以是标量，也可以是嵌套的 map（YAML 解码结果）。
type Vars map[string]any

// Lookup 按点号路径查找变量。
func (v Vars) Lookup(path string) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "" || v == nil {
		return nil, false
	}
	var current any = map[string]any(v)
	for _, segment := range strings.Split(path, ".") {
		next, ok := descend(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func descend(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case Vars:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

// Interpolate 将 text 中的 ${path} 替换为变量值，未知变量保留原样。
func Interpolate(text string, vars Vars) string {
	out, _ := expand(text, vars)
	return out
}

// Strict 与 Interpolate 相同，但存在未知变量时返回错误。
func Strict(text string, vars Vars) (string, error) {
	out, missing := expand(text, vars)
	if len(missing) > 0 {
		return out, fmt.Errorf("文本 %q 引用了未定义的变量: %s", text, strings.Join(missing, ", "))
	}
	return out, nil
}

func expand(text string, vars Vars) (string, []string) {
	if !strings.Contains(text, "${") {
		return text, nil
	}
	seen := map[string]bool{}
	out := exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if val, ok := vars.Lookup(path); ok {
			if _, nested := val.(map[string]any); !nested {
				return fmt.Sprint(val)
			}
		}
		seen[path] = true
		return match
	})
	var missing []string
	for name := range seen {
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return out, missing
}

// ErrNoVars is returned by ExpandAll when texts reference variables but no
// variables are defined at all.
var ErrNoVars = errors.New("没有定义任何变量")

// ExpandAll 依次严格展开多个文本字段（指针原地替换）。
func ExpandAll(vars Vars, texts ...*string) error {
	var errs []error
	for _, t := range texts {
		if t == nil {
			continue
		}
		out, err := Strict(*t, vars)
		if err != nil {
			if len(vars) == 0 {
				err = fmt.Errorf("%w: %v", ErrNoVars, err)
			}
			errs = append(errs, err)
			continue
		}
		*t = out
	}
	return errors.Join(errs...)
}
