package interpreter

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"
)

const (
	trueString  = "true"
	falseString = "false"
	nullString  = "null"
)

// Stringify renders a context value as template output.
func Stringify(value any) string {
	if value == nil {
		return nullString
	}

	switch v := value.(type) {
	case string:
		return v
	case *string:
		if v == nil {
			return nullString
		}

		return *v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	case decimal.Decimal:
		return v.String()
	case *decimal.Decimal:
		if v == nil {
			return nullString
		}

		return v.String()
	case time.Time:
		return v.Format(time.RFC3339)
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nullString
		}

		return Stringify(rv.Elem().Interface())
	case reflect.Array, reflect.Slice:
		parts := make([]string, rv.Len())
		for i := range rv.Len() {
			parts[i] = Stringify(rv.Index(i).Interface())
		}

		return strings.Join(parts, ",")
	case reflect.Map, reflect.Struct:
		out, err := yaml.MarshalWithOptions(value, yaml.Flow(true))
		if err != nil {
			return fmt.Sprintf("%v", value)
		}

		return strings.TrimSpace(string(out))
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// formatFloat renders finite floats in shortest decimal form.
// NaN and infinities have no decimal form and use strconv's spelling.
func formatFloat(f float64, bitSize int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}

	if bitSize == 32 {
		return decimal.NewFromFloat32(float32(f)).String()
	}

	return decimal.NewFromFloat(f).String()
}
