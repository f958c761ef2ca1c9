package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sdms-server/alerts"
	"sdms-server/api"
	"sdms-server/auth"
	"sdms-server/console"
	"sdms-server/data"
	"sdms-server/refdata"
	"sdms-server/shared"
)

type LoginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LookupRequestDTO struct {
	CustId       string `json:"custId"`
	SubProductId string `json:"subProductId"`
}

type UploadRequestDTO struct {
	Name   string  `json:"name"`
	SizeKB float64 `json:"sizeKB"`
}

type TransactionRequestDTO struct {
	Legs []shared.TransactionLeg `json:"legs"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func readBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func main() {
	envFiles := []string{".env", "../.env"}
	envs := map[string]string{}

	for _, envFile := range envFiles {
		if _, err := os.ReadFile(envFile); err == nil {
			loaded, err := godotenv.Read(envFile)
			if err == nil {
				envs = loaded
			}
			break
		}
	}

	env := func(key, fallback string) string {
		if v, ok := envs[key]; ok && v != "" {
			return v
		}
		return fallback
	}

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var (
		serverPort    = env("SERVER_PORT", "8080")
		storePath     = env("STORE_PATH", "sdms-store.json")
		adminUser     = env("ADMIN_USER", auth.DefaultUsername)
		adminPass     = env("ADMIN_PASS", auth.DefaultPassword)
		couchbaseURL  = env("CB_URL", "")
		couchbaseDB   = env("CB_DB", "sdms")
		couchbaseUser = env("CB_USER", "")
		couchbasePass = env("CB_PASS", "")
	)

	var store data.Store
	if couchbaseURL != "" {
		store = data.NewCouchbaseStore(couchbaseURL, couchbaseDB, couchbaseUser, couchbasePass, logger)
		logger.Info("using couchbase store", zap.String("bucket", couchbaseDB))
	} else {
		fileStore, err := data.NewFileStore(storePath)
		if err != nil {
			logger.Fatal("could not open store", zap.String("path", storePath), zap.Error(err))
		}
		store = fileStore
		logger.Info("using file store", zap.String("path", storePath))
	}

	catalog, err := refdata.Load()
	if err != nil {
		logger.Fatal("could not load reference data", zap.Error(err))
	}

	alertCh := alerts.NewChannel(alerts.DefaultTTL, logger)
	defer alertCh.Close()

	authService := auth.NewService(store, adminUser, adminPass, logger)
	gateway := api.NewService(api.DefaultLatency, logger)
	customers := console.NewCustomerService(store, catalog, alertCh, logger)
	accounts := console.NewAccountService(store, catalog, alertCh, logger)
	products := console.NewProductService(store, catalog, alertCh, logger)
	subProducts := console.NewSubProductService(store, catalog, alertCh, logger)
	officeAccounts := console.NewOfficeAccountService(store, alertCh, logger)
	transactions := console.NewTransactionService(alertCh, gateway, logger)
	dashboard := console.NewDashboardService(store, catalog)

	// Unauthenticated requests on guarded routes get a 401; the UI treats
	// that as a redirect to the login screen.
	requireAuth := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !authService.IsAuthenticated() {
				writeError(w, "authentication required", http.StatusUnauthorized)
				return
			}
			h(w, r)
		}
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("SDMS Back Office Server"))
	})

	http.HandleFunc("/api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req LoginRequestDTO
		if !readBody(w, r, &req) {
			return
		}
		if !authService.Login(req.Username, req.Password) {
			writeError(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}
		sess, _ := authService.CurrentUser()
		writeJSON(w, http.StatusOK, sess)
	})

	http.HandleFunc("/api/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		authService.Logout()
		w.WriteHeader(http.StatusNoContent)
	})

	http.HandleFunc("/api/v1/session", func(w http.ResponseWriter, r *http.Request) {
		sess, ok := authService.CurrentUser()
		if !ok {
			writeError(w, "not signed in", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	})

	http.HandleFunc("/api/v1/dashboard", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, dashboard.Summarize())
	}))

	http.HandleFunc("/api/v1/alerts", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, alertCh.List())
		case http.MethodDelete:
			alertCh.Remove(r.URL.Query().Get("id"))
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	http.HandleFunc("/api/v1/customers", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, customers.All())
		case http.MethodPost:
			var draft shared.Customer
			if !readBody(w, r, &draft) {
				return
			}
			record, err := customers.Save(draft)
			if err != nil {
				writeError(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			writeJSON(w, http.StatusCreated, record)
		case http.MethodPut:
			var edited shared.Customer
			if !readBody(w, r, &edited) {
				return
			}
			if err := customers.Update(edited); err != nil {
				writeError(w, err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, edited)
		default:
			writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	http.HandleFunc("/api/v1/customers/search", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if cif := r.URL.Query().Get("cif"); cif != "" {
			found, ok, err := customers.SearchByCIF(r.Context(), cif)
			if err != nil {
				writeError(w, err.Error(), http.StatusRequestTimeout)
				return
			}
			if !ok {
				writeError(w, "no customer found", http.StatusNotFound)
				return
			}
			writeJSON(w, http.StatusOK, found)
			return
		}
		if id := r.URL.Query().Get("id"); id != "" {
			found, ok := customers.SearchByID(id)
			if !ok {
				writeError(w, "no customer found", http.StatusNotFound)
				return
			}
			writeJSON(w, http.StatusOK, found)
			return
		}
		writeError(w, "cif or id query parameter required", http.StatusBadRequest)
	}))

	http.HandleFunc("/api/v1/accounts", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, accounts.All())
		case http.MethodPost:
			var draft shared.Account
			if !readBody(w, r, &draft) {
				return
			}
			record, err := accounts.Create(draft)
			if err != nil {
				writeError(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			writeJSON(w, http.StatusCreated, record)
		case http.MethodPut:
			var edited shared.Account
			if !readBody(w, r, &edited) {
				return
			}
			if err := accounts.Update(edited); err != nil {
				writeError(w, err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, edited)
		default:
			writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	http.HandleFunc("/api/v1/accounts/draft", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, accounts.NewDraft())
	}))

	http.HandleFunc("/api/v1/accounts/search", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		found, ok := accounts.SearchByAccountNo(r.URL.Query().Get("accountNo"))
		if !ok {
			writeError(w, "no account found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, found)
	}))

	http.HandleFunc("/api/v1/accounts/lookup-customer", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		var req LookupRequestDTO
		if !readBody(w, r, &req) {
			return
		}
		customer, ok := accounts.LookupCustomer(req.CustId)
		if !ok {
			writeError(w, "customer not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, customer)
	}))

	http.HandleFunc("/api/v1/accounts/generate-number", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		var req LookupRequestDTO
		if !readBody(w, r, &req) {
			return
		}
		accountNo, err := accounts.GenerateAccountNumber(req.CustId, req.SubProductId)
		if err != nil {
			writeError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"accountNo": accountNo})
	}))

	http.HandleFunc("/api/v1/accounts/documents", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		var req UploadRequestDTO
		if !readBody(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusCreated, accounts.UploadDocument(req.Name, req.SizeKB))
	}))

	http.HandleFunc("/api/v1/products", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, products.All())
		case http.MethodPost:
			var draft shared.Product
			if !readBody(w, r, &draft) {
				return
			}
			record, err := products.Save(draft)
			if err != nil {
				writeError(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			writeJSON(w, http.StatusCreated, record)
		case http.MethodPut:
			var edited shared.Product
			if !readBody(w, r, &edited) {
				return
			}
			if err := products.Update(edited); err != nil {
				writeError(w, err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, edited)
		default:
			writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	http.HandleFunc("/api/v1/subproducts", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, subProducts.All())
		case http.MethodPost:
			var draft shared.SubProduct
			if !readBody(w, r, &draft) {
				return
			}
			record, err := subProducts.Save(draft)
			if err != nil {
				writeError(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			writeJSON(w, http.StatusCreated, record)
		case http.MethodPut:
			var edited shared.SubProduct
			if !readBody(w, r, &edited) {
				return
			}
			if err := subProducts.Update(edited); err != nil {
				writeError(w, err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, edited)
		default:
			writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	http.HandleFunc("/api/v1/office-accounts", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, officeAccounts.All())
		case http.MethodPost:
			var draft shared.OfficeAccount
			if !readBody(w, r, &draft) {
				return
			}
			record, err := officeAccounts.Create(draft)
			if err != nil {
				writeError(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			writeJSON(w, http.StatusCreated, record)
		default:
			writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	http.HandleFunc("/api/v1/transactions", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req TransactionRequestDTO
		if !readBody(w, r, &req) {
			return
		}
		id, err := transactions.Post(r.Context(), req.Legs)
		if err != nil {
			writeError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}))

	http.HandleFunc("/api/v1/refdata/gl", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.GL())
	}))

	logger.Info("server started", zap.String("port", serverPort))
	if err := http.ListenAndServe(":"+serverPort, nil); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
