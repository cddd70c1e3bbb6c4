package relayhelper

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// StringInSlice check if string in slice
func StringInSlice(str string, list []string) bool {
	for _, v := range list {
		if v == str {
			return true
		}
	}
	return false
}

// MustParseEnv set target struct field from environment by "env" tag, panic
// when a tagged key is missing or malformed
func MustParseEnv(target interface{}) {
	pValue := reflect.ValueOf(target).Elem()
	pType := reflect.TypeOf(target).Elem()
	mErrs := NewMultiError()
	for i := 0; i < pValue.NumField(); i++ {
		field := pValue.Field(i)
		if !field.CanSet() { // skip if field cannot set a value (usually an unexported field in struct), to avoid a panic
			continue
		}

		typ := pType.Field(i)
		if typ.Anonymous ||
			(typ.Type.Kind() == reflect.Struct && !reflect.DeepEqual(field.Interface(), time.Time{})) { // embedded struct or struct field
			MustParseEnv(field.Addr().Interface())
			continue
		}

		key := typ.Tag.Get("env")
		if key == "" || key == "-" {
			continue
		}

		val, ok := os.LookupEnv(key)
		if !ok {
			mErrs.Append(key, fmt.Errorf("missing %s environment", key))
			continue
		}

		switch field.Interface().(type) {
		case time.Duration:
			dur, err := time.ParseDuration(val)
			if err != nil {
				mErrs.Append(key, fmt.Errorf("env '%s': %v", key, err))
				continue
			}
			field.Set(reflect.ValueOf(dur))
		case int32, int, int64:
			vInt, err := strconv.Atoi(val)
			if err != nil {
				mErrs.Append(key, fmt.Errorf("env '%s': %v", key, err))
				continue
			}
			field.SetInt(int64(vInt))
		case uint16, uint, uint64:
			vInt, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				mErrs.Append(key, fmt.Errorf("env '%s': %v", key, err))
				continue
			}
			field.SetUint(vInt)
		case bool:
			vBool, err := strconv.ParseBool(val)
			if err != nil {
				mErrs.Append(key, fmt.Errorf("env '%s': %v", key, err))
				continue
			}
			field.SetBool(vBool)
		case string:
			field.SetString(val)
		case []string:
			var list []string
			for _, item := range strings.Split(val, ",") {
				if item = strings.TrimSpace(item); item != "" {
					list = append(list, item)
				}
			}
			field.Set(reflect.ValueOf(list))
		}
	}

	if mErrs.HasError() {
		panic("Environment error: \n" + mErrs.Error())
	}
}
