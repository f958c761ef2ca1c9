package shared

import (
	"math/rand"
	"strings"
	"time"
)

// Keys in the durable key-value medium. Every key except SessionKey holds a
// JSON-encoded array of records; SessionKey holds a single session object or
// is absent.
const (
	CustomersKey      = "customers"
	AccountsKey       = "accounts"
	ProductsKey       = "products"
	SubProductsKey    = "subProducts"
	OfficeAccountsKey = "officeAccounts"
	SessionKey        = "user"
)

const (
	CustTypeIndividual = "Individual"
	CustTypeCorporate  = "Corporate"
	CustTypeBank       = "Bank"
)

const (
	StatusActive      = "Active"
	StatusInactive    = "Inactive"
	StatusDeactivated = "Deactivated"
	StatusPending     = "Pending"
)

type Customer struct {
	Id          string `json:"id"`
	CustType    string `json:"custType"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	TradeName   string `json:"tradeName,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	ExternalCif string `json:"externalCif,omitempty"`
	FatherName  string `json:"fatherName,omitempty"`
	MotherName  string `json:"motherName,omitempty"`
	NidNumber   string `json:"nidNumber,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// DisplayName is first + last name for individuals, trade name otherwise.
func (c Customer) DisplayName() string {
	if c.FirstName != "" {
		return c.FirstName + " " + c.LastName
	}
	return c.TradeName
}

// DocumentMeta describes an uploaded account document. Only the metadata is
// kept; the bytes themselves are never persisted.
type DocumentMeta struct {
	Name       string `json:"name"`
	Size       string `json:"size"`
	UploadDate string `json:"uploadDate"`
}

type Account struct {
	Id           string        `json:"id"`
	CustId       string        `json:"custId,omitempty"`
	ProductId    string        `json:"productId,omitempty"`
	SubProductId string        `json:"subProductId,omitempty"`
	AccountNo    string        `json:"accountNo,omitempty"`
	Tenor        string        `json:"tenor,omitempty"`
	Maturity     string        `json:"maturity,omitempty"`
	GlNum        string        `json:"glNum,omitempty"`
	CifNo        string        `json:"cifNo,omitempty"`
	CustomerName string        `json:"customerName,omitempty"`
	AccountName  string        `json:"accountName,omitempty"`
	BranchCode   string        `json:"branchCode,omitempty"`
	OpenedOn     string        `json:"openedOn,omitempty"`
	Status       string        `json:"status,omitempty"`
	Balance      float64       `json:"balance"`
	Currency     string        `json:"currency,omitempty"`
	CreatedAt    string        `json:"createdAt,omitempty"`
	Document     *DocumentMeta `json:"document,omitempty"`
}

type Product struct {
	Id       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Rate     string `json:"rate,omitempty"`
	CumGlNum string `json:"cumGlNum,omitempty"`
}

type SubProduct struct {
	Id        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	ProductId string `json:"productId"`
	CumGlNum  string `json:"cumGlNum"`
}

type OfficeAccount struct {
	Id      string  `json:"id"`
	GlNum   string  `json:"glNum,omitempty"`
	Name    string  `json:"name,omitempty"`
	Balance float64 `json:"balance"`
}

// GLEntry is one node of the general-ledger chart.
type GLEntry struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// Session is the single optional record under SessionKey. Its presence is the
// sole authentication signal.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

const (
	LegDebit  = "Debit"
	LegCredit = "Credit"
)

// TransactionLeg is one debit or credit line of a multi-leg entry.
type TransactionLeg struct {
	Account   string  `json:"account"`
	Leg       string  `json:"leg"`
	Amount    float64 `json:"amount"`
	Narration string  `json:"narration,omitempty"`
}

type Transaction struct {
	Id        string  `json:"id"`
	AccountNo string  `json:"accountNo"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
	Date      string  `json:"date"`
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewRecordID returns prefix + "-" + 6 random base-36 characters, uppercased,
// e.g. "CIF-9K2X0A". Collisions are possible and accepted; nothing checks the
// token against existing records.
func NewRecordID(prefix string) string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return prefix + "-" + strings.ToUpper(string(b))
}

// NowISO is the creation timestamp format used on every record.
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// Today is the date-only format used for openedOn and similar fields.
func Today() string {
	return time.Now().Format("2006-01-02")
}
