package service

import (
	"strings"
	"unicode/utf8"

	"filecrate/internal/config"
	"filecrate/internal/domain"
)

// ValidateName checks a folder or file name against the shared naming
// rules. Pure and deterministic; kind only flavors the resulting error.
func ValidateName(name string, maxLength int, kind string) error {
	if strings.TrimSpace(name) == "" {
		return &domain.EmptyNameError{Kind: kind}
	}

	if length := utf8.RuneCountInString(name); length > maxLength {
		return &domain.NameTooLongError{Kind: kind, Length: length, MaxLength: maxLength}
	}

	if strings.ContainsAny(name, config.InvalidNameCharacters) {
		return &domain.InvalidCharactersError{Kind: kind, Name: name}
	}

	return nil
}
