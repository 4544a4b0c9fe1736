package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/minarae/accountbook-backend/internal/auth"
	database "github.com/minarae/accountbook-backend/internal/db"
	"github.com/minarae/accountbook-backend/internal/ledger/application"
	"github.com/minarae/accountbook-backend/internal/ledger/infrastructure"
	"github.com/minarae/accountbook-backend/internal/ledger/interfaces"
	"github.com/minarae/accountbook-backend/internal/member"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router             *http.ServeMux
	jwtManager         auth.JWTManagerInterface
	memberHandler      *member.Handler
	categoryHandler    *interfaces.CategoryHandler
	transactionHandler *interfaces.TransactionHandler
}

func NewServer(
	jwtManager auth.JWTManagerInterface,
	memberHandler *member.Handler,
	categoryHandler *interfaces.CategoryHandler,
	transactionHandler *interfaces.TransactionHandler,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		jwtManager:         jwtManager,
		memberHandler:      memberHandler,
		categoryHandler:    categoryHandler,
		transactionHandler: transactionHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	protect := s.jwtManager.AccessTokenMiddleware()
	refresh := s.jwtManager.RefreshTokenMiddleware()

	router := http.NewServeMux()

	// Public routes
	router.Handle("POST /api/members/create", http.HandlerFunc(s.memberHandler.HandleRegister))
	router.Handle("POST /api/members/login", http.HandlerFunc(s.memberHandler.HandleLogin))
	router.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Refresh token route
	router.Handle("PUT /api/refresh/token", refresh(http.HandlerFunc(s.memberHandler.HandleRefreshToken)))

	// Member routes
	router.Handle("PUT /api/members/modify", protect(http.HandlerFunc(s.memberHandler.HandleModify)))
	router.Handle("POST /api/members/unsubscribing", protect(http.HandlerFunc(s.memberHandler.HandleUnsubscribe)))

	// Category routes
	router.Handle("GET /api/category/list", protect(http.HandlerFunc(s.categoryHandler.GetCategoryList)))
	router.Handle("POST /api/category/create", protect(http.HandlerFunc(s.categoryHandler.CreateCategory)))
	router.Handle("PUT /api/category/modify/{categoryNo}", protect(http.HandlerFunc(s.categoryHandler.UpdateCategory)))
	router.Handle("DELETE /api/category/delete/{categoryNo}", protect(http.HandlerFunc(s.categoryHandler.DeleteCategory)))

	// Account log routes
	router.Handle("POST /api/account/create", protect(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	router.Handle("PUT /api/account/modify/{accountNo}", protect(http.HandlerFunc(s.transactionHandler.UpdateTransaction)))
	router.Handle("GET /api/account/{accountNo}", protect(http.HandlerFunc(s.transactionHandler.GetTransaction)))
	router.Handle("DELETE /api/account/{accountNo}", protect(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))

	router.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = router
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := database.EnsureSchema(dbService.DB); err != nil {
		log.Fatalf("Could not prepare database schema: %v", err)
	}

	jwtManager := auth.NewJWTManager()

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	categoryService := application.NewCategoryService(categoryRepo)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	transactionService := application.NewTransactionService(transactionRepo, categoryService)

	memberRepo := member.NewMemberRepository(dbService.DB)
	memberService := member.NewMemberService(memberRepo, categoryService)
	memberHandler := member.NewHandler(memberService, jwtManager)

	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)
	transactionHandler := interfaces.NewTransactionHandler(transactionService, respondJSON, respondError)

	server := NewServer(jwtManager, memberHandler, categoryHandler, transactionHandler)
	server.RegisterRoutes()

	handler := loggingMiddleware(server.router)
	log.Println("Server starting on port 8080...")
	if err := http.ListenAndServe(":8080", handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
