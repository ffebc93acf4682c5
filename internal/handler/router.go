package handler

import (
	"net/http"

	"github.com/Dan9191/crypto-companion/internal/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires every route. Routes under the protected subrouter need a
// bearer token.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	for _, mw := range middleware.Chain(h.log) {
		r.Use(mw)
	}

	// Public routes
	r.HandleFunc("/auth/signup", h.SignUp).Methods("POST")
	r.HandleFunc("/auth/signin", h.SignIn).Methods("POST")
	r.HandleFunc("/auth/reset", h.ResetPassword).Methods("POST")
	r.HandleFunc("/auth/recover", h.Recover).Methods("POST")
	r.HandleFunc("/auth/oauth/{provider}", h.OAuthStart).Methods("GET")
	r.HandleFunc("/auth/oauth/{provider}/callback", h.OAuthCallback).Methods("GET")
	r.Handle("/session", middleware.OptionalAuth(h.svc)(http.HandlerFunc(h.Session))).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(h.svc, h.log))
	authRouter.HandleFunc("/auth/signout", h.SignOut).Methods("POST")
	authRouter.HandleFunc("/auth/user", h.UpdateUser).Methods("PUT")

	authRouter.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	authRouter.HandleFunc("/portfolio", h.Portfolio).Methods("GET")
	authRouter.HandleFunc("/portfolio", h.AddHolding).Methods("POST")
	authRouter.HandleFunc("/portfolio", h.ResetPortfolio).Methods("DELETE")
	authRouter.HandleFunc("/portfolio/{coinID}/toggle", h.ToggleHolding).Methods("POST")

	authRouter.HandleFunc("/calculators/compounding", h.Compounding).Methods("POST")
	authRouter.HandleFunc("/calculators/position", h.Position).Methods("POST")

	authRouter.HandleFunc("/todos/plan", h.ExportPlan).Methods("POST")
	authRouter.HandleFunc("/todos/plan", h.PlanItems).Methods("GET")
	authRouter.HandleFunc("/todos/plan", h.ResetPlan).Methods("DELETE")
	authRouter.HandleFunc("/todos/plan/{index}/toggle", h.TogglePlanItem).Methods("POST")
	authRouter.HandleFunc("/todos/custom", h.CustomItems).Methods("GET")
	authRouter.HandleFunc("/todos/custom", h.AddCustom).Methods("POST")
	authRouter.HandleFunc("/todos/custom/{id}/toggle", h.ToggleCustom).Methods("POST")
	authRouter.HandleFunc("/todos/custom/{id}", h.DeleteCustom).Methods("DELETE")

	authRouter.HandleFunc("/converter/assets", h.ConverterAssets).Methods("GET")
	authRouter.HandleFunc("/converter/convert", h.Convert).Methods("GET")

	return r
}
