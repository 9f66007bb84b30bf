package service

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/OpenNSW/tonban/internal/tonban/model"
	"github.com/OpenNSW/tonban/utils"
)

// MinKeywordLength is the shortest keyword accepted by search, in characters.
const MinKeywordLength = 2

// ValidateCode trims a 統番 and rejects it when blank.
func ValidateCode(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "", model.NewRequestError(model.ErrMissingParameter, "code パラメータを指定してください")
	}
	return code, nil
}

// ValidateKeyword trims a search keyword and rejects it when shorter than MinKeywordLength.
func ValidateKeyword(raw string) (string, error) {
	keyword := strings.TrimSpace(raw)
	if utf8.RuneCountInString(keyword) < MinKeywordLength {
		return "", model.NewRequestError(model.ErrInvalidParameter, "q パラメータを2文字以上で指定してください")
	}
	return keyword, nil
}

// ParseLimit parses the optional limit parameter and clamps it into range.
// A nil raw means the parameter was absent and selects the default; a
// present value must be an integer, so an empty one is rejected.
func ParseLimit(raw *string) (int, error) {
	if raw == nil {
		return utils.ClampLimit(nil), nil
	}

	limit, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		// Out-of-range integers are still integers; Atoi saturates them.
		if !errors.Is(err, strconv.ErrRange) {
			return 0, model.NewRequestError(model.ErrInvalidParameter, "limit パラメータは整数で指定してください")
		}
	}
	return utils.ClampLimit(&limit), nil
}
