package requests

import (
	"strings"

	"admin-console/internal/apperr"
	"admin-console/internal/models"
)

const (
	KeyAvatar      = "avatar"
	KeyEmail       = "email"
	KeyPhoneNumber = "phonenumber"
	KeyPostalCode  = "postalcode"
	KeyAddress     = "address"
	KeyDistrict    = "district"
	KeyProvince    = "province"
)

var requiredKeys = []string{KeyEmail, KeyPhoneNumber, KeyPostalCode, KeyAddress, KeyDistrict, KeyProvince}

var knownKeys = map[string]bool{
	KeyAvatar:      true,
	KeyEmail:       true,
	KeyPhoneNumber: true,
	KeyPostalCode:  true,
	KeyAddress:     true,
	KeyDistrict:    true,
	KeyProvince:    true,
}

// SubmittedInfo — новые значения профиля из заявки сотрудника.
type SubmittedInfo struct {
	Avatar      string `json:"avatar,omitempty"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
	PostalCode  string `json:"postalcode"`
	Address     string `json:"address"`
	District    string `json:"district"`
	Province    string `json:"province"`
}

// ParseSubmittedInfo разбирает строку "key:value, key:value, ...".
// Пары делятся по ", ", ключ от значения — по первому ":" (в avatar бывает URL).
// Ключи приводятся к нижнему регистру, пробелы по краям ключа и значения срезаются. Пара без двоеточия, пустой, повторный
// или неизвестный ключ, а также нехватка обязательного — apperr.ErrMalformedRequest.
func ParseSubmittedInfo(raw string) (map[string]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, apperr.Malformed("submitted info is empty")
	}

	out := make(map[string]string, len(knownKeys))
	for _, pair := range strings.Split(raw, ", ") {
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, apperr.Malformed("pair %q has no ':'", pair)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return nil, apperr.Malformed("pair %q has an empty key", pair)
		}
		if !knownKeys[key] {
			return nil, apperr.Malformed("unknown key %q", key)
		}
		if _, dup := out[key]; dup {
			return nil, apperr.Malformed("duplicate key %q", key)
		}
		out[key] = strings.TrimSpace(value)
	}

	for _, k := range requiredKeys {
		if _, ok := out[k]; !ok {
			return nil, apperr.Malformed("missing key %q", k)
		}
	}
	return out, nil
}

func infoFromMap(m map[string]string) SubmittedInfo {
	return SubmittedInfo{
		Avatar:      m[KeyAvatar],
		Email:       m[KeyEmail],
		PhoneNumber: m[KeyPhoneNumber],
		PostalCode:  m[KeyPostalCode],
		Address:     m[KeyAddress],
		District:    m[KeyDistrict],
		Province:    m[KeyProvince],
	}
}

// Fields — заявка в виде объекта ключ/значение; пустой avatar не передаётся.
func (i SubmittedInfo) Fields() map[string]string {
	out := map[string]string{
		KeyEmail:       i.Email,
		KeyPhoneNumber: i.PhoneNumber,
		KeyPostalCode:  i.PostalCode,
		KeyAddress:     i.Address,
		KeyDistrict:    i.District,
		KeyProvince:    i.Province,
	}
	if i.Avatar != "" {
		out[KeyAvatar] = i.Avatar
	}
	return out
}

// Apply переносит поля заявки на копию сотрудника. Avatar — только если прислан.
func (i SubmittedInfo) Apply(e models.Employee) models.Employee {
	if i.Avatar != "" {
		e.Avatar = i.Avatar
	}
	e.Email = i.Email
	e.PhoneNumber = i.PhoneNumber
	e.PostalCode = i.PostalCode
	e.Address = i.Address
	e.District = i.District
	e.Province = i.Province
	return e
}
