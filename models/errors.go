package models

import (
	"github.com/pkg/errors"
)

// типизированные ошибки движка жизненного цикла заявок.
// Обработчики не восстанавливаются сами - каждая нарушенная предпосылка
// возвращается вызывающему как одна из этих ошибок (через errors.Wrap,
// чтобы сохранить текст нарушенного условия).
var (
	ErrNotFound             = errors.New("запись не найдена")
	ErrInvalidState         = errors.New("операция недопустима в текущем статусе заявки")
	ErrAttemptLimitExceeded = errors.New("исчерпан лимит подач заявки")
	ErrUnauthorized         = errors.New("операция недоступна для этого пользователя")
	ErrPersistence          = errors.New("ошибка сохранения данных")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

func IsAttemptLimitExceeded(err error) bool {
	return errors.Is(err, ErrAttemptLimitExceeded)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}
