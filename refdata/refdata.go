// Package refdata exposes the bundled reference catalogs: the customers seed
// list, the products/sub-products catalog and the four-layer GL chart. The
// fixtures are compiled into the binary, parsed once at startup and never
// mutated afterwards; accessors hand out copies so callers cannot corrupt the
// catalog.
package refdata

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"sdms-server/shared"
)

//go:embed fixtures/customers.json fixtures/products.json fixtures/gl.json
var fixtures embed.FS

// GLChart is the general-ledger hierarchy. Products reference layer 3,
// sub-products reference layer 4.
type GLChart struct {
	Layer1 []shared.GLEntry `json:"layer1"`
	Layer2 []shared.GLEntry `json:"layer2"`
	Layer3 []shared.GLEntry `json:"layer3"`
	Layer4 []shared.GLEntry `json:"layer4"`
}

type Catalog struct {
	customers   []shared.Customer
	products    []shared.Product
	subProducts []shared.SubProduct
	gl          GLChart
}

// Load parses the bundled fixtures. Unlike runtime collections, a fixture
// that fails to decode is a build defect, so this is the one place a decode
// error propagates.
func Load() (*Catalog, error) {
	var c Catalog

	var customerFile struct {
		Customers []shared.Customer `json:"customers"`
	}
	if err := readFixture("fixtures/customers.json", &customerFile); err != nil {
		return nil, err
	}
	c.customers = customerFile.Customers

	var productFile struct {
		Products    []shared.Product    `json:"products"`
		SubProducts []shared.SubProduct `json:"subProducts"`
	}
	if err := readFixture("fixtures/products.json", &productFile); err != nil {
		return nil, err
	}
	c.products = productFile.Products
	c.subProducts = productFile.SubProducts

	if err := readFixture("fixtures/gl.json", &c.gl); err != nil {
		return nil, err
	}

	return &c, nil
}

func readFixture(name string, out any) error {
	raw, err := fixtures.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse fixture %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) Customers() []shared.Customer {
	return append([]shared.Customer(nil), c.customers...)
}

func (c *Catalog) Products() []shared.Product {
	return append([]shared.Product(nil), c.products...)
}

func (c *Catalog) SubProducts() []shared.SubProduct {
	return append([]shared.SubProduct(nil), c.subProducts...)
}

// SubProductsOf returns the sub-products belonging to productId, or all of
// them when productId is empty.
func (c *Catalog) SubProductsOf(productId string) []shared.SubProduct {
	if productId == "" {
		return c.SubProducts()
	}
	return lo.Filter(c.subProducts, func(sp shared.SubProduct, _ int) bool {
		return sp.ProductId == productId
	})
}

func (c *Catalog) GL() GLChart {
	return GLChart{
		Layer1: append([]shared.GLEntry(nil), c.gl.Layer1...),
		Layer2: append([]shared.GLEntry(nil), c.gl.Layer2...),
		Layer3: append([]shared.GLEntry(nil), c.gl.Layer3...),
		Layer4: append([]shared.GLEntry(nil), c.gl.Layer4...),
	}
}

func (c *Catalog) FindProduct(id string) (shared.Product, bool) {
	return lo.Find(c.products, func(p shared.Product) bool { return p.Id == id })
}

func (c *Catalog) FindSubProduct(id string) (shared.SubProduct, bool) {
	return lo.Find(c.subProducts, func(sp shared.SubProduct) bool { return sp.Id == id })
}
