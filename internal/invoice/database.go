package invoice

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	invoiceBucketName = "invoices"
	profileBucketName = "profile"
	counterBucketName = "counter"

	profileKey = "profile"
	counterKey = "invoice_number"
)

// DB defines the interface for database operations
type DB interface {
	// SaveInvoice saves an invoice to the database
	SaveInvoice(invoice *Invoice) error

	// GetInvoice retrieves an invoice by number
	GetInvoice(number string) (*Invoice, error)

	// ListInvoices returns all invoices
	ListInvoices() ([]*Invoice, error)

	// DeleteInvoice removes an invoice from the database
	DeleteInvoice(number string) error

	// NextInvoiceNumber atomically increments and returns the invoice counter
	NextInvoiceNumber() (uint64, error)

	// GetProfile retrieves the saved business profile, nil when none saved
	GetProfile() (*BusinessProfile, error)

	// SaveProfile saves the business profile
	SaveProfile(profile *BusinessProfile) error

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	// Create buckets if they don't exist
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{invoiceBucketName, profileBucketName, counterBucketName} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveInvoice saves an invoice to the database
func (b *BoltDB) SaveInvoice(invoice *Invoice) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(invoiceBucketName))
		data, err := json.Marshal(invoice)
		if err != nil {
			return fmt.Errorf("marshaling invoice: %w", err)
		}
		return bucket.Put([]byte(invoice.Number), data)
	})
}

// GetInvoice retrieves an invoice by number
func (b *BoltDB) GetInvoice(number string) (*Invoice, error) {
	var invoice *Invoice
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(invoiceBucketName))
		data := bucket.Get([]byte(number))
		if data == nil {
			return fmt.Errorf("invoice not found: %s", number)
		}
		return json.Unmarshal(data, &invoice)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListInvoices returns all invoices
func (b *BoltDB) ListInvoices() ([]*Invoice, error) {
	invoices := make([]*Invoice, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(invoiceBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var invoice Invoice
			if err := json.Unmarshal(v, &invoice); err != nil {
				return fmt.Errorf("unmarshaling invoice: %w", err)
			}
			invoices = append(invoices, &invoice)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// DeleteInvoice removes an invoice from the database
func (b *BoltDB) DeleteInvoice(number string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(invoiceBucketName))
		return bucket.Delete([]byte(number))
	})
}

// NextInvoiceNumber atomically increments and returns the invoice counter.
// The increment happens inside a single write transaction, so concurrent
// callers never observe the same number.
func (b *BoltDB) NextInvoiceNumber() (uint64, error) {
	var next uint64
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(counterBucketName))
		current := uint64(0)
		if data := bucket.Get([]byte(counterKey)); len(data) == 8 {
			current = binary.BigEndian.Uint64(data)
		}
		next = current + 1
		data := make([]byte, 8)
		binary.BigEndian.PutUint64(data, next)
		return bucket.Put([]byte(counterKey), data)
	})
	if err != nil {
		return 0, fmt.Errorf("incrementing invoice counter: %w", err)
	}
	return next, nil
}

// GetProfile retrieves the saved business profile, nil when none saved
func (b *BoltDB) GetProfile() (*BusinessProfile, error) {
	var profile *BusinessProfile
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(profileBucketName))
		data := bucket.Get([]byte(profileKey))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &profile)
	})
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return profile, nil
}

// SaveProfile saves the business profile
func (b *BoltDB) SaveProfile(profile *BusinessProfile) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(profileBucketName))
		data, err := json.Marshal(profile)
		if err != nil {
			return fmt.Errorf("marshaling profile: %w", err)
		}
		return bucket.Put([]byte(profileKey), data)
	})
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
