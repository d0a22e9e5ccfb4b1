package structured

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind 字段类型
type Kind int

const (
	String Kind = iota
	StringArray
	Enum
	Int
	Bool
	ObjectArray
)

// Field 输出字段约束。模型输出按约束做尽力归一化，只有缺失必填字段或类型无法转换时才报错
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Hint     string

	MaxLen   int // String 与 StringArray 的单项字符上限
	MaxItems int // 数组长度上限

	Options []string // Enum 取值
	Default any      // Enum/Int/Bool 缺省值

	Min, Max int
	// Percent 为 true 时 0~1 的小数视为比例并换算成百分数
	Percent bool

	Item *Schema // ObjectArray 元素结构
}

type Schema struct {
	Fields []Field
}

// Object 归一化后的结果：string / []string / int / bool / []Object
type Object map[string]any

// Normalize 按字段约束归一化；输入可以是 JSON 解码结果，也可以是 Go 原生值
func (s *Schema) Normalize(raw map[string]any) (Object, error) {
	out := make(Object, len(s.Fields))
	for _, f := range s.Fields {
		v, present := raw[f.Name]
		if v == nil {
			present = false
		}
		if !present && f.Required {
			return nil, fmt.Errorf("missing required field %q", f.Name)
		}
		nv, err := f.normalize(v, present)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		out[f.Name] = nv
	}
	return out, nil
}

func (f *Field) normalize(v any, present bool) (any, error) {
	switch f.Kind {
	case String:
		if !present {
			return "", nil
		}
		str, ok := scalarString(v)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		str = truncate(str, f.MaxLen)
		if f.Required && str == "" {
			return nil, fmt.Errorf("empty value")
		}
		return str, nil

	case StringArray:
		if !present {
			return []string{}, nil
		}
		items, err := stringItems(v)
		if err != nil {
			return nil, err
		}
		items = cleanItems(items, f.MaxLen, f.MaxItems)
		if f.Required && len(items) == 0 {
			return nil, fmt.Errorf("empty array")
		}
		return items, nil

	case Enum:
		def, _ := f.Default.(string)
		if !present {
			return def, nil
		}
		str, _ := scalarString(v)
		for _, opt := range f.Options {
			if strings.EqualFold(str, opt) {
				return opt, nil
			}
		}
		return def, nil

	case Int:
		if !present {
			def, _ := f.Default.(int)
			return f.clamp(float64(def)), nil
		}
		n, frac, err := number(v)
		if err != nil {
			return nil, err
		}
		if f.Percent && frac && n >= 0 && n <= 1 {
			n *= 100
		}
		return f.clamp(n), nil

	case Bool:
		if !present {
			def, _ := f.Default.(bool)
			return def, nil
		}
		b, err := boolean(v)
		if err != nil {
			return nil, err
		}
		return b, nil

	case ObjectArray:
		if !present {
			return []Object{}, nil
		}
		list, err := objectItems(v)
		if err != nil {
			return nil, err
		}
		items := make([]Object, 0, len(list))
		for _, raw := range list {
			obj, err := f.Item.Normalize(raw)
			if err != nil {
				continue
			}
			items = append(items, obj)
			if f.MaxItems > 0 && len(items) == f.MaxItems {
				break
			}
		}
		if f.Required && len(items) == 0 {
			return nil, fmt.Errorf("no valid items")
		}
		return items, nil
	}
	return nil, fmt.Errorf("unsupported kind %d", f.Kind)
}

// clamp 在 float64 上先收敛到区间再取整，超出 int 的值不会回绕
func (f *Field) clamp(n float64) int {
	lo, hi := float64(math.MinInt), float64(math.MaxInt)
	if f.Min != 0 || f.Max != 0 {
		lo, hi = float64(f.Min), float64(f.Max)
	}
	n = math.Round(n)
	switch {
	case n <= lo:
		if lo == float64(math.MinInt) {
			return math.MinInt
		}
		return f.Min
	case n >= hi:
		if hi == float64(math.MaxInt) {
			return math.MaxInt
		}
		return f.Max
	}
	return int(n)
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case json.Number:
		return t.String(), true
	case bool, int, int64, float64:
		return fmt.Sprint(t), true
	}
	return "", false
}

func stringItems(v any) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return t, nil
	case string:
		// 模型偶尔把数组写成逗号分隔的字符串
		return strings.FieldsFunc(t, func(r rune) bool { return r == ',' || r == '\n' }), nil
	case []any:
		items := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := scalarString(e); ok {
				items = append(items, s)
			}
		}
		return items, nil
	}
	return nil, fmt.Errorf("expected array of strings, got %T", v)
}

func objectItems(v any) ([]map[string]any, error) {
	switch t := v.(type) {
	case []Object:
		out := make([]map[string]any, 0, len(t))
		for _, o := range t {
			out = append(out, o)
		}
		return out, nil
	case []map[string]any:
		return t, nil
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, e := range t {
			switch m := e.(type) {
			case map[string]any:
				out = append(out, m)
			case Object:
				out = append(out, m)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected array of objects, got %T", v)
}

// cleanItems 去空、忽略大小写去重、截断、限长
func cleanItems(items []string, maxLen int, maxItems int) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		it = truncate(it, maxLen)
		key := strings.ToLower(it)
		if it == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
		if maxItems > 0 && len(out) == maxItems {
			break
		}
	}
	return out
}

// number 返回数值以及字面量是否带小数部分
func number(v any) (float64, bool, error) {
	switch t := v.(type) {
	case int:
		return float64(t), false, nil
	case int64:
		return float64(t), false, nil
	case float64:
		return t, t != math.Trunc(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false, fmt.Errorf("invalid number %q", t.String())
		}
		return f, strings.ContainsAny(t.String(), ".eE"), nil
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(t), "%")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false, fmt.Errorf("invalid number %q", t)
		}
		return f, strings.Contains(s, "."), nil
	}
	return 0, false, fmt.Errorf("expected number, got %T", v)
}

func boolean(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1":
			return true, nil
		case "false", "no", "0", "":
			return false, nil
		}
	case json.Number:
		f, err := t.Float64()
		if err == nil {
			return f != 0, nil
		}
	case int:
		return t != 0, nil
	case float64:
		return t != 0, nil
	}
	return false, fmt.Errorf("expected boolean, got %v", v)
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:max]))
}

// Describe 生成写入 prompt 的输出格式说明
func (s *Schema) Describe() string {
	var b strings.Builder
	s.describe(&b, "")
	return b.String()
}

func (s *Schema) describe(b *strings.Builder, indent string) {
	for _, f := range s.Fields {
		fmt.Fprintf(b, "%s- %q: %s", indent, f.Name, f.typeText())
		if f.Required {
			b.WriteString(", required")
		}
		if f.Hint != "" {
			b.WriteString(". " + f.Hint)
		}
		b.WriteByte('\n')
		if f.Kind == ObjectArray && f.Item != nil {
			f.Item.describe(b, indent+"  ")
		}
	}
}

func (f *Field) typeText() string {
	switch f.Kind {
	case String:
		return fmt.Sprintf("string (at most %d characters)", f.MaxLen)
	case StringArray:
		return fmt.Sprintf("array of up to %d strings (each at most %d characters)", f.MaxItems, f.MaxLen)
	case Enum:
		quoted := make([]string, 0, len(f.Options))
		for _, o := range f.Options {
			quoted = append(quoted, strconv.Quote(o))
		}
		return "one of " + strings.Join(quoted, ", ")
	case Int:
		return fmt.Sprintf("integer from %d to %d", f.Min, f.Max)
	case Bool:
		return "boolean"
	case ObjectArray:
		return fmt.Sprintf("array of up to %d objects with fields", f.MaxItems)
	}
	return "value"
}

// Str 等访问器用于读取 Normalize 的结果
func (o Object) Str(name string) string {
	v, _ := o[name].(string)
	return v
}

func (o Object) Strs(name string) []string {
	v, _ := o[name].([]string)
	return v
}

func (o Object) Int(name string) int {
	v, _ := o[name].(int)
	return v
}

func (o Object) Bool(name string) bool {
	v, _ := o[name].(bool)
	return v
}

func (o Object) Objects(name string) []Object {
	v, _ := o[name].([]Object)
	return v
}
