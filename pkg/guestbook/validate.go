package guestbook

import "unicode/utf8"

const (
	maxNameLen     = 10
	maxContentLen  = 100
	minPasswordLen = 4
	maxPasswordLen = 20
)

// User-facing validation messages. Each violation gets its own text so the
// form can point at the exact field.
const (
	MsgNameRequired     = "이름을 입력해 주세요."
	MsgNameTooLong      = "이름은 10자 이내로 입력해 주세요."
	MsgContentRequired  = "메시지를 입력해 주세요."
	MsgContentTooLong   = "메시지는 100자 이내로 입력해 주세요."
	MsgPasswordTooShort = "비밀번호는 4자 이상이어야 합니다."
	MsgPasswordTooLong  = "비밀번호는 20자 이내로 입력해 주세요."
)

// ValidationError blocks a submission before any backend call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateEntry checks a new entry before submission. Checks run in a fixed
// order and the first failure wins. Lengths count characters, not bytes.
func ValidateEntry(name, content, password string) error {
	if name == "" {
		return &ValidationError{MsgNameRequired}
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return &ValidationError{MsgNameTooLong}
	}
	if content == "" {
		return &ValidationError{MsgContentRequired}
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return &ValidationError{MsgContentTooLong}
	}
	return ValidatePassword(password)
}

// ValidatePassword checks a deletion password before any backend call.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return &ValidationError{MsgPasswordTooShort}
	}
	if utf8.RuneCountInString(password) > maxPasswordLen {
		return &ValidationError{MsgPasswordTooLong}
	}
	return nil
}
