package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/shared/apperr"
)

const MsgInvalidForm = "Dữ liệu gửi lên không hợp lệ."

type FieldErrors map[string]string

// FromBindError turns a gin bind error into field -> message. dst is the
// struct pointer that was bound; its json/form tags name the fields.
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fieldKey(dst, fe.StructField())] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	// malformed body or type mismatch
	out["_"] = MsgInvalidForm
	return out
}

// Error wraps a bind error as an invalid AppError carrying the field map.
func Error(err error, dst any) error {
	fields := FromBindError(err, dst)
	msg := MsgInvalidForm
	if len(fields) == 1 {
		for _, m := range fields {
			msg = m
		}
	}
	return &apperr.AppError{Kind: apperr.Invalid, PublicMsg: msg, Fields: fields, Err: err}
}

func fieldKey(dst any, structField string) string {
	t := reflect.TypeOf(dst)
	if t == nil {
		return strings.ToLower(structField)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	for _, key := range []string{"json", "form"} {
		tag, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return strings.ToLower(structField)
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "Trường này là bắt buộc."
	case "email":
		return "Vui lòng nhập địa chỉ email hợp lệ."
	case "min":
		return "Phải có ít nhất " + param + " ký tự."
	case "max":
		return "Không được vượt quá " + param + " ký tự."
	case "len":
		return "Phải có đúng " + param + " ký tự."
	case "gte", "gt":
		return "Giá trị phải lớn hơn hoặc bằng " + param + "."
	case "lte", "lt":
		return "Giá trị phải nhỏ hơn hoặc bằng " + param + "."
	case "oneof":
		return "Giá trị phải là một trong: " + strings.ReplaceAll(param, " ", ", ") + "."
	case "numeric":
		return "Chỉ được nhập chữ số."
	case "eqfield":
		return "Giá trị xác nhận không khớp."
	default:
		return "Giá trị không hợp lệ."
	}
}
