package domain

import "context"

// OrderRepository persists production orders.
type OrderRepository interface {
	// Save inserts a new order. ErrOrderExists is returned when the order
	// number is already registered.
	Save(ctx context.Context, order *Order) error
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAll(ctx context.Context) ([]*Order, error)
}

// BarcodeRepository persists unit identity documents.
type BarcodeRepository interface {
	SaveAll(ctx context.Context, barcodes []*Barcode) error
	FindByNumber(ctx context.Context, barcodeNumber string) (*Barcode, error)
	FindByOrder(ctx context.Context, orderNumber string) ([]*Barcode, error)
}

// StageRecordRepository persists the append-only stage transition records.
type StageRecordRepository interface {
	// InsertIfAbsent commits the record unless one already exists for the
	// same (barcode, stage) pair, in which case an AlreadyInStageError is
	// returned. The check and the insert are a single atomic operation.
	InsertIfAbsent(ctx context.Context, record *StageRecord) error
	FindByBarcodeAndStage(ctx context.Context, barcodeNumber string, stage Stage) (*StageRecord, error)
	FindByBarcode(ctx context.Context, barcodeNumber string) ([]*StageRecord, error)
	FindByOrder(ctx context.Context, orderNumber string) ([]*StageRecord, error)
}

// UserRepository persists operator accounts and login activity.
type UserRepository interface {
	// Save inserts a new user. ErrUserExists is returned when the username
	// is already taken.
	Save(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	RecordLogin(ctx context.Context, activity *LoginActivity) error
}
