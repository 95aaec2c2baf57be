// Package repository implements per-entity CRUD over the relational store.
// Each operation runs in its own transaction and reports failures as
// domain.NotFoundError or domain.ConstraintViolationError.
package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pharmstore/m/domain"
)

// Store is the store client shared by all handlers. Build it once at startup.
type Store struct {
	db *sqlx.DB

	Drugs      *Table[domain.Drug, domain.DrugCreate]
	Pharmacies *Table[domain.Pharmacy, domain.PharmacyCreate]
	Requests   *Table[domain.Request, domain.RequestCreate]
	Purchases  *Table[domain.Purchase, domain.PurchaseCreate]
}

// New constructs a Store over db. The schema must already exist.
func New(db *sqlx.DB) *Store {
	return &Store{
		db: db,
		Drugs: newTable[domain.Drug](db, "Drug", "drugs",
			[]string{"code", "name", "manufacturer", "price"},
			func(in domain.DrugCreate) []any {
				return []any{in.Code, in.Name, in.Manufacturer, in.Price}
			}),
		Pharmacies: newTable[domain.Pharmacy](db, "Pharmacy", "pharmacies",
			[]string{"number", "name", "address", "phone_number"},
			func(in domain.PharmacyCreate) []any {
				return []any{in.Number, in.Name, in.Address, in.PhoneNumber}
			}),
		Requests: newTable[domain.Request](db, "Request", "requests",
			[]string{"date", "pharmacy_id", "fulfillment_date"},
			func(in domain.RequestCreate) []any {
				return []any{in.Date, in.PharmacyID, in.FulfillmentDate}
			}),
		Purchases: newTable[domain.Purchase](db, "Purchase", "purchases",
			[]string{"request_id", "drug_id", "quantity"},
			func(in domain.PurchaseCreate) []any {
				return []any{in.RequestID, in.DrugID, in.Quantity}
			}),
	}
}

// DB exposes the underlying handle for health checks and metrics.
func (s *Store) DB() *sqlx.DB { return s.db }

// Ping checks that the store is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// RequestsOfPharmacy pages the requests placed by a pharmacy.
func (s *Store) RequestsOfPharmacy(ctx context.Context, pharmacyID int64, page Page) ([]domain.Request, error) {
	return s.Requests.listBy(ctx, "pharmacy_id", s.Pharmacies.parent(), pharmacyID, page)
}

// PurchasesOfRequest pages the line items of a request.
func (s *Store) PurchasesOfRequest(ctx context.Context, requestID int64, page Page) ([]domain.Purchase, error) {
	return s.Purchases.listBy(ctx, "request_id", s.Requests.parent(), requestID, page)
}

// PurchasesOfDrug pages the line items that reference a drug.
func (s *Store) PurchasesOfDrug(ctx context.Context, drugID int64, page Page) ([]domain.Purchase, error) {
	return s.Purchases.listBy(ctx, "drug_id", s.Drugs.parent(), drugID, page)
}
