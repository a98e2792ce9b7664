package saves

import (
	dnderr "github.com/KirkDiggler/skirmish/internal/errors"
)

var (
	errSaveNil           = dnderr.InvalidArgument("save cannot be nil")
	errOwnerRequired     = dnderr.InvalidArgument("save owner is required")
	errCharacterRequired = dnderr.InvalidArgument("save needs a character")
	errInventoryRequired = dnderr.InvalidArgument("save needs an inventory")
	errIDRequired        = dnderr.InvalidArgument("save id is required")
)

func notFound(id string) error {
	return dnderr.NotFoundf("save %s not found", id).
		WithMeta("save_id", id)
}

func alreadyExists(id string) error {
	return dnderr.AlreadyExistsf("save %s already exists", id).
		WithMeta("save_id", id)
}
