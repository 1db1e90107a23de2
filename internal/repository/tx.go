package repository

import "gorm.io/gorm"

// TxManager runs a unit of work inside one database transaction. Callbacks
// receive the transactional handle and re-bind repositories to it via WithTx.
type TxManager struct {
	DB *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{DB: db}
}

func (m *TxManager) Do(fn func(tx *gorm.DB) error) error {
	return m.DB.Transaction(fn)
}
