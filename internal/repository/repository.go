package repository

import "gorm.io/gorm"

type Repository struct {
	DB          *gorm.DB
	Users       UserRepo
	Tokens      TokenRepo
	Products    ProductRepo
	Variants    VariantRepo
	Inventories InventoryRepo
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		DB:          db,
		Users:       NewUserRepo(db),
		Tokens:      NewTokenRepo(db),
		Products:    NewProductRepo(db),
		Variants:    NewVariantRepo(db),
		Inventories: NewInventoryRepo(db),
	}
}

// WithTx runs fn against a repository set bound to a single transaction.
func (r *Repository) WithTx(fn func(tx *Repository) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
