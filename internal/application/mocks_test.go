package application

import (
	"context"
	"fmt"

	"github.com/mes-platform/production-tracker/internal/domain"
)

type mockOrderRepository struct {
	orders  map[string]*domain.Order
	saveErr error
	findErr error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[string]*domain.Order)}
}

func (m *mockOrderRepository) Save(_ context.Context, order *domain.Order) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.orders[order.OrderNumber]; ok {
		return domain.ErrOrderExists
	}
	m.orders[order.OrderNumber] = order
	return nil
}

func (m *mockOrderRepository) FindByNumber(_ context.Context, orderNumber string) (*domain.Order, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	order, ok := m.orders[orderNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (m *mockOrderRepository) FindAll(_ context.Context) ([]*domain.Order, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := make([]*domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		out = append(out, order)
	}
	return out, nil
}

type mockBarcodeRepository struct {
	barcodes map[string]*domain.Barcode
	saveErr  error
}

func newMockBarcodeRepository() *mockBarcodeRepository {
	return &mockBarcodeRepository{barcodes: make(map[string]*domain.Barcode)}
}

func (m *mockBarcodeRepository) SaveAll(_ context.Context, docs []*domain.Barcode) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	for _, doc := range docs {
		m.barcodes[doc.BarcodeNumber] = doc
	}
	return nil
}

func (m *mockBarcodeRepository) FindByNumber(_ context.Context, barcodeNumber string) (*domain.Barcode, error) {
	doc, ok := m.barcodes[barcodeNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *mockBarcodeRepository) FindByOrder(_ context.Context, orderNumber string) ([]*domain.Barcode, error) {
	var out []*domain.Barcode
	for _, doc := range m.barcodes {
		if doc.OrderNumber == orderNumber {
			out = append(out, doc)
		}
	}
	return out, nil
}

type mockStageRecordRepository struct {
	records   map[string]*domain.StageRecord
	insertErr error
}

func newMockStageRecordRepository() *mockStageRecordRepository {
	return &mockStageRecordRepository{records: make(map[string]*domain.StageRecord)}
}

func recordKey(barcodeNumber string, stage domain.Stage) string {
	return fmt.Sprintf("%s|%s", barcodeNumber, stage)
}

func (m *mockStageRecordRepository) InsertIfAbsent(_ context.Context, record *domain.StageRecord) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	key := recordKey(record.BarcodeNumber, record.Stage)
	if _, ok := m.records[key]; ok {
		return &domain.AlreadyInStageError{BarcodeNumber: record.BarcodeNumber, Stage: record.Stage}
	}
	m.records[key] = record
	return nil
}

func (m *mockStageRecordRepository) FindByBarcodeAndStage(_ context.Context, barcodeNumber string, stage domain.Stage) (*domain.StageRecord, error) {
	record, ok := m.records[recordKey(barcodeNumber, stage)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func (m *mockStageRecordRepository) FindByBarcode(_ context.Context, barcodeNumber string) ([]*domain.StageRecord, error) {
	var out []*domain.StageRecord
	for _, record := range m.records {
		if record.BarcodeNumber == barcodeNumber {
			out = append(out, record)
		}
	}
	return out, nil
}

func (m *mockStageRecordRepository) FindByOrder(_ context.Context, orderNumber string) ([]*domain.StageRecord, error) {
	var out []*domain.StageRecord
	for _, record := range m.records {
		if record.OrderNumber == orderNumber {
			out = append(out, record)
		}
	}
	return out, nil
}

type mockPublisher struct {
	events []domain.DomainEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, event domain.DomainEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

type mockRenderer struct {
	encodeErr error
	sheetErr  error
}

func (m *mockRenderer) EncodePNG(barcodeNumber string) ([]byte, error) {
	if m.encodeErr != nil {
		return nil, m.encodeErr
	}
	return []byte("png:" + barcodeNumber), nil
}

func (m *mockRenderer) BuildSheet(labels []Label) ([]byte, error) {
	if m.sheetErr != nil {
		return nil, m.sheetErr
	}
	return []byte(fmt.Sprintf("sheet:%d", len(labels))), nil
}
