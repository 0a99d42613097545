package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Семантические: приватность
	SemaPrivateField        Code = 3201
	SemaPrivateMethod       Code = 3202
	SemaPrivateVariantDeref Code = 3203

	// Загрузка снапшотов
	IOLoadSnapshot  Code = 4001
	IOSchemaVersion Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	SemaPrivateField:        "Private field accessed outside its scope",
	SemaPrivateMethod:       "Private method called outside its scope",
	SemaPrivateVariantDeref: "Dereference of a union whose single variant is not public",
	IOLoadSnapshot:          "Failed to load resolved-program snapshot",
	IOSchemaVersion:         "Snapshot schema version mismatch",
}

// ID returns the stable textual identifier, e.g. SEM3201.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
