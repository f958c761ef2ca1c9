package console

import (
	"sort"

	"github.com/samber/lo"

	"sdms-server/data"
	"sdms-server/refdata"
	"sdms-server/shared"
)

// DashboardService derives aggregate counts and recent-record listings from
// the merged collections. It never writes.
type DashboardService struct {
	store data.Store
	ref   *refdata.Catalog
}

func NewDashboardService(store data.Store, ref *refdata.Catalog) *DashboardService {
	return &DashboardService{store: store, ref: ref}
}

type Summary struct {
	TotalCustomers  int               `json:"totalCustomers"`
	TotalAccounts   int               `json:"totalAccounts"`
	ActiveAccounts  int               `json:"activeAccounts"`
	CustomerTypes   map[string]int    `json:"customerTypes"`
	RecentCustomers []shared.Customer `json:"recentCustomers"`
	RecentAccounts  []shared.Account  `json:"recentAccounts"`
}

// Records without a creation stamp sort as if created on this date, the
// sentinel the original dashboard used.
const missingCreatedAt = "2023-01-01"

func (s *DashboardService) Summarize() Summary {
	customers := append(s.ref.Customers(), data.GetList[shared.Customer](s.store, shared.CustomersKey)...)
	accounts := data.GetList[shared.Account](s.store, shared.AccountsKey)

	return Summary{
		TotalCustomers: len(customers),
		TotalAccounts:  len(accounts),
		ActiveAccounts: lo.CountBy(accounts, func(a shared.Account) bool {
			return a.Status == shared.StatusActive
		}),
		CustomerTypes: lo.CountValuesBy(customers, func(c shared.Customer) string {
			return c.CustType
		}),
		RecentCustomers: recentN(customers, 5, func(c shared.Customer) string { return c.CreatedAt }),
		RecentAccounts:  recentN(accounts, 5, func(a shared.Account) string { return a.CreatedAt }),
	}
}

// recentN returns the n newest records by creation timestamp. ISO-8601
// strings order lexicographically, so a string sort is a time sort.
func recentN[T any](records []T, n int, createdAt func(T) string) []T {
	out := append([]T(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return stampOf(createdAt(out[i])) > stampOf(createdAt(out[j]))
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func stampOf(s string) string {
	if s == "" {
		return missingCreatedAt
	}
	return s
}
