package database

import (
	"errors"

	"gorm.io/gorm"
)

// IsDuplicateKey сообщает, является ли ошибка нарушением уникального
// индекса. Работает для любого драйвера за счет TranslateError.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
