package validation

import (
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

var defaultMessages = map[string]string{
	"required": "The :attribute field is required.",
	"string":   "The :attribute field must be a string.",
	"numeric":  "The :attribute field must be a number.",
	"integer":  "The :attribute field must be an integer.",
	"boolean":  "The :attribute field must be true or false.",
	"email":    "The :attribute field must be a valid email address.",
	"url":      "The :attribute field must be a valid URL.",
	"min":      "The :attribute field must be at least :min.",
	"max":      "The :attribute field must not be greater than :max.",
	"in":       "The selected :attribute is invalid.",
	"regex":    "The :attribute field format is invalid.",
	"array":    "The :attribute field must be a list.",
}

func builtinCheckers() map[string]Checker {
	return map[string]Checker{
		"required": func(in Input) bool { return in.Present && !isEmpty(in.Value) },
		"string": func(in Input) bool {
			_, ok := in.Value.(string)
			return ok
		},
		"numeric": func(in Input) bool {
			_, ok := toFloat(in.Value)
			return ok
		},
		"integer": func(in Input) bool {
			f, ok := toFloat(in.Value)
			return ok && f == math.Trunc(f)
		},
		"boolean": isBoolean,
		"email": func(in Input) bool {
			str, ok := in.Value.(string)
			if !ok {
				return false
			}
			addr, err := mail.ParseAddress(str)
			return err == nil && addr.Address == str
		},
		"url": func(in Input) bool {
			str, ok := in.Value.(string)
			if !ok {
				return false
			}
			parsed, err := url.ParseRequestURI(str)
			return err == nil && parsed.Scheme != "" && parsed.Host != ""
		},
		"min": func(in Input) bool {
			limit, size, ok := sizes(in)
			return ok && size >= limit
		},
		"max": func(in Input) bool {
			limit, size, ok := sizes(in)
			return ok && size <= limit
		},
		"in": func(in Input) bool {
			got := fmt.Sprint(in.Value)
			for _, allowed := range strings.Split(in.Param, ",") {
				if strings.TrimSpace(allowed) == got {
					return true
				}
			}
			return false
		},
		"regex": func(in Input) bool {
			str, ok := in.Value.(string)
			if !ok {
				return false
			}
			re, err := compilePattern(in.Param)
			return err == nil && re.MatchString(str)
		},
		"array": func(in Input) bool {
			switch in.Value.(type) {
			case []any, []map[string]any, []string, map[string]any:
				return true
			}
			return false
		},
	}
}

func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case []any:
		return len(typed) == 0
	case []map[string]any:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	case map[string]any:
		return len(typed) == 0
	}
	return false
}

func isBlank(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	}
	return false
}

func isBoolean(in Input) bool {
	switch typed := in.Value.(type) {
	case bool:
		return true
	case string:
		switch strings.ToLower(typed) {
		case "0", "1", "true", "false":
			return true
		}
	default:
		if f, ok := toFloat(typed); ok {
			return f == 0 || f == 1
		}
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case int8:
		return float64(typed), true
	case int16:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint8:
		return float64(typed), true
	case uint16:
		return float64(typed), true
	case uint32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case float32:
		return float64(typed), true
	case float64:
		return typed, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return f, err == nil
	}
	return 0, false
}

// sizes returns the rule limit and the measured size of the value: the
// number itself for numeric fields, the item count for lists and the rune
// count for strings.
func sizes(in Input) (limit, size float64, ok bool) {
	limit, err := strconv.ParseFloat(strings.TrimSpace(in.Param), 64)
	if err != nil {
		return 0, 0, false
	}
	switch typed := in.Value.(type) {
	case []any:
		return limit, float64(len(typed)), true
	case []map[string]any:
		return limit, float64(len(typed)), true
	case []string:
		return limit, float64(len(typed)), true
	case map[string]any:
		return limit, float64(len(typed)), true
	case string:
		if in.Numeric {
			f, ok := toFloat(typed)
			return limit, f, ok
		}
		return limit, float64(utf8.RuneCountInString(typed)), true
	}
	f, ok := toFloat(in.Value)
	return limit, f, ok
}

var (
	patternMu    sync.RWMutex
	patternCache = map[string]*regexp.Regexp{}
)

// compilePattern accepts "/pattern/flags" or a bare pattern. The i, m and s
// flags are honoured.
func compilePattern(param string) (*regexp.Regexp, error) {
	patternMu.RLock()
	re, ok := patternCache[param]
	patternMu.RUnlock()
	if ok {
		return re, nil
	}

	pattern := param
	if len(param) >= 2 && param[0] == '/' {
		if end := strings.LastIndex(param, "/"); end > 0 {
			pattern = param[1:end]
			if flags := strings.Trim(param[end+1:], " "); flags != "" {
				clean := strings.Map(func(r rune) rune {
					if strings.ContainsRune("ims", r) {
						return r
					}
					return -1
				}, flags)
				if clean != "" {
					pattern = "(?" + clean + ")" + pattern
				}
			}
		}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("validation: regex %q: %w", param, err)
	}

	patternMu.Lock()
	patternCache[param] = re
	patternMu.Unlock()
	return re, nil
}
