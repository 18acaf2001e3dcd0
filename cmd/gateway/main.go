package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/zarifin2103/ExamSphere/internal/api/http"
	"github.com/zarifin2103/ExamSphere/internal/auth"
	"github.com/zarifin2103/ExamSphere/internal/bank"
	"github.com/zarifin2103/ExamSphere/internal/config"
	"github.com/zarifin2103/ExamSphere/internal/db"
	"github.com/zarifin2103/ExamSphere/internal/exam"
	"github.com/zarifin2103/ExamSphere/internal/examconfig"
	"github.com/zarifin2103/ExamSphere/internal/rbac"
	"github.com/zarifin2103/ExamSphere/internal/result"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	exams := exam.NewSQLStore(dbh)
	banks := bank.NewService(bank.NewSQLStore(dbh))
	configs := examconfig.NewService(examconfig.NewSQLStore(dbh, cfg.DBDriver), exams, banks.Store())
	results := result.NewSQLStore(dbh)
	users := auth.NewSQLUserStore(dbh)

	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.TokenTTL)

	// Background repair of drifted question counters.
	go bank.NewReconciler(banks.Store()).Run(context.Background(), cfg.ReconcileEvery)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/register", auth.RegisterHandler(users, authSvc))
	r.Post("/auth/login", auth.LoginHandler(users, authSvc))

	// Protected API (JWT → subject+role in context → RBAC per route)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Get("/me", auth.MeHandler(users))
		pr.With(rbac.Require("user:view")).Get("/users", auth.ListUsersHandler(users))

		// Exams
		pr.With(rbac.Require("exam:create")).Post("/exams", api.CreateExamHandler(exams))
		pr.With(rbac.Require("exam:view")).Get("/exams", api.ListExamsHandler(exams))
		pr.With(rbac.Require("exam:view")).Get("/exams/{examID}", api.GetExamHandler(exams))
		pr.With(rbac.Require("exam:edit")).Put("/exams/{examID}", api.UpdateExamHandler(exams))
		pr.With(rbac.Require("exam:delete")).Delete("/exams/{examID}", api.DeleteExamHandler(exams))

		// Question banks and their questions
		pr.With(rbac.Require("bank:create")).Post("/question-banks", api.CreateBankHandler(banks))
		pr.With(rbac.Require("bank:view")).Get("/question-banks", api.ListBanksHandler(banks))
		pr.With(rbac.Require("bank:view")).Get("/question-banks/{bankID}", api.GetBankHandler(banks))
		pr.With(rbac.Require("bank:edit")).Put("/question-banks/{bankID}", api.UpdateBankHandler(banks))
		pr.With(rbac.Require("bank:delete")).Delete("/question-banks/{bankID}", api.DeleteBankHandler(banks))

		pr.With(rbac.Require("question:create")).Post("/question-banks/{bankID}/questions", api.CreateQuestionHandler(banks))
		pr.With(rbac.Require("question:view")).Get("/question-banks/{bankID}/questions", api.ListBankQuestionsHandler(banks))
		pr.With(rbac.Require("question:view")).Get("/questions", api.ListQuestionsHandler(banks))
		pr.With(rbac.Require("question:view")).Get("/questions/{questionID}", api.GetQuestionHandler(banks))
		pr.With(rbac.Require("question:edit")).Put("/questions/{questionID}", api.UpdateQuestionHandler(banks))
		pr.With(rbac.Require("question:delete")).Delete("/questions/{questionID}", api.DeleteQuestionHandler(banks))

		// Exam configuration
		pr.With(rbac.Require("config:view")).Get("/exams/{examID}/config", api.GetExamConfigHandler(configs))
		pr.With(rbac.Require("config:edit")).Post("/exams/{examID}/config/banks", api.LinkBankHandler(configs))
		pr.With(rbac.Require("config:edit")).Delete("/exams/{examID}/config/banks/{bankID}", api.UnlinkBankHandler(configs))
		pr.With(rbac.Require("config:edit")).Put("/exams/{examID}/config/banks/{bankID}", api.UpdateScoringRuleHandler(configs))
		pr.With(rbac.Require("config:view")).Get("/config/overview", api.ConfigOverviewHandler(configs))

		// Results
		pr.With(rbac.Require("result:submit")).Post("/results", api.SubmitResultHandler(results))
		pr.With(rbac.RequireAny("result:view-own", "result:view-all")).Get("/results", api.ListResultsHandler(results))
		pr.With(rbac.RequireAny("result:view-own", "result:view-all")).Get("/results/{resultID}", api.GetResultHandler(results))
		pr.With(rbac.RequireAny("result:view-own", "result:view-all")).Get("/exams/{examID}/results/latest", api.LatestResultHandler(results))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
