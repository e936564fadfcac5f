package invoice

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/chat-invoice/internal/extraction"
)

var _ = Describe("BoltDB", func() {
	var (
		tmpDir string
		dbPath string
		db     *BoltDB
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("SaveInvoice", func() {
		var (
			invoice *Invoice
			err     error
		)

		BeforeEach(func() {
			invoice = &Invoice{
				Number:       "INV-0001",
				Date:         "30 Aug 2026",
				CustomerName: "John Doe",
				UPIID:        "merchant@paytm",
				Items: []extraction.LineItem{
					{Name: "Pizza", Quantity: 2, UnitPrice: 250},
				},
				Totals:    Totals{Subtotal: 500, TaxRate: 0.18, TaxPercent: 18, TaxAmount: 90, GrandTotal: 590},
				Filename:  "invoice_INV-0001.pdf",
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
		})

		JustBeforeEach(func() {
			err = db.SaveInvoice(invoice)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should be retrievable by number", func() {
				saved, err := db.GetInvoice("INV-0001")
				Expect(err).NotTo(HaveOccurred())
				Expect(saved.CustomerName).To(Equal("John Doe"))
				Expect(saved.Items).To(HaveLen(1))
				Expect(saved.Totals.GrandTotal).To(Equal(590.0))
			})
		})
	})

	Describe("GetInvoice", func() {
		When("the invoice does not exist", func() {
			It("should return an error", func() {
				_, err := db.GetInvoice("INV-9999")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("ListInvoices", func() {
		When("the database is empty", func() {
			It("should return an empty slice", func() {
				invoices, err := db.ListInvoices()
				Expect(err).NotTo(HaveOccurred())
				Expect(invoices).To(BeEmpty())
			})
		})

		When("invoices exist", func() {
			BeforeEach(func() {
				Expect(db.SaveInvoice(&Invoice{Number: "INV-0001"})).To(Succeed())
				Expect(db.SaveInvoice(&Invoice{Number: "INV-0002"})).To(Succeed())
			})

			It("should return all of them", func() {
				invoices, err := db.ListInvoices()
				Expect(err).NotTo(HaveOccurred())
				Expect(invoices).To(HaveLen(2))
			})
		})
	})

	Describe("DeleteInvoice", func() {
		BeforeEach(func() {
			Expect(db.SaveInvoice(&Invoice{Number: "INV-0001"})).To(Succeed())
		})

		It("should remove the invoice", func() {
			Expect(db.DeleteInvoice("INV-0001")).To(Succeed())
			_, err := db.GetInvoice("INV-0001")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("NextInvoiceNumber", func() {
		It("should start at one", func() {
			number, err := db.NextInvoiceNumber()
			Expect(err).NotTo(HaveOccurred())
			Expect(number).To(Equal(uint64(1)))
		})

		It("should increment monotonically", func() {
			first, err := db.NextInvoiceNumber()
			Expect(err).NotTo(HaveOccurred())
			second, err := db.NextInvoiceNumber()
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first + 1))
		})

		It("should survive reopening the database", func() {
			_, err := db.NextInvoiceNumber()
			Expect(err).NotTo(HaveOccurred())
			Expect(db.Close()).To(Succeed())

			db, err = NewBoltDB(dbPath)
			Expect(err).NotTo(HaveOccurred())
			number, err := db.NextInvoiceNumber()
			Expect(err).NotTo(HaveOccurred())
			Expect(number).To(Equal(uint64(2)))
		})
	})

	Describe("Profile", func() {
		When("no profile has been saved", func() {
			It("should return nil", func() {
				profile, err := db.GetProfile()
				Expect(err).NotTo(HaveOccurred())
				Expect(profile).To(BeNil())
			})
		})

		When("a profile has been saved", func() {
			BeforeEach(func() {
				Expect(db.SaveProfile(&BusinessProfile{
					BusinessName: "Pizza Palace",
					DefaultUPIID: "palace@upi",
				})).To(Succeed())
			})

			It("should round-trip the profile", func() {
				profile, err := db.GetProfile()
				Expect(err).NotTo(HaveOccurred())
				Expect(profile.BusinessName).To(Equal("Pizza Palace"))
				Expect(profile.DefaultUPIID).To(Equal("palace@upi"))
			})
		})
	})
})
