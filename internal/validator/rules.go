package validator

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"tfl_backend/internal/models"
)

// registerCustomRules adds the portal's validation tags
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'profile_emoji': one of the allowed avatars
	mustRegister("profile_emoji", validateProfileEmoji)

	// 'iso_date': YYYY-MM-DD
	mustRegister("iso_date", validateISODate)

	// 'id_list': "1,2,3" as posted by the bulk forms
	mustRegister("id_list", validateIDList)
}

func validateProfileEmoji(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	return models.IsAllowedProfileEmoji(value)
}

func validateISODate(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	_, err := time.Parse(models.EventDateLayout, value)
	return err == nil
}

func validateIDList(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	_, ok := ParseIDList(value)
	return ok
}

// ParseIDList parses "1, 2,3" into ids. Blank entries are skipped.
func ParseIDList(raw string) ([]uint, bool) {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil || n == 0 {
			return nil, false
		}
		ids = append(ids, uint(n))
	}
	return ids, true
}
