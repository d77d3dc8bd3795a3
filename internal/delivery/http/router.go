package http

import (
	"net/http"

	"dawrni-api/internal/delivery/http/handler"
	"dawrni-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	profileHandler      *handler.ProfileHandler
	companyHandler      *handler.CompanyHandler
	clientHandler       *handler.ClientHandler
	appointmentHandler  *handler.AppointmentHandler
	favoriteHandler     *handler.FavoriteHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	recoverMiddleware   *middleware.RecoverMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	companyHandler *handler.CompanyHandler,
	clientHandler *handler.ClientHandler,
	appointmentHandler *handler.AppointmentHandler,
	favoriteHandler *handler.FavoriteHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	recoverMiddleware *middleware.RecoverMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		profileHandler:      profileHandler,
		companyHandler:      companyHandler,
		clientHandler:       clientHandler,
		appointmentHandler:  appointmentHandler,
		favoriteHandler:     favoriteHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		recoverMiddleware:   recoverMiddleware,
		loggingMiddleware:   loggingMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(r.recoverMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(middleware.Locale)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public, rate limited)
	public := api.NewRoute().Subrouter()
	public.Use(r.rateLimitMiddleware.Handle)
	public.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/verify", r.authHandler.VerifyAccount).Methods(http.MethodPost)
	public.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Any authenticated user
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/user", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/profile", r.profileHandler.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/companies", r.companyHandler.ListCompanies).Methods(http.MethodGet)
	protected.HandleFunc("/companies/{id:[0-9]+}", r.companyHandler.GetCompany).Methods(http.MethodGet)
	protected.HandleFunc("/categories", r.companyHandler.GetCategories).Methods(http.MethodGet)
	protected.HandleFunc("/clients", r.clientHandler.ListClients).Methods(http.MethodGet)

	// Company routes
	company := api.NewRoute().Subrouter()
	company.Use(r.authMiddleware.Authenticate)
	company.Use(middleware.RequireCompany)
	company.HandleFunc("/update_company", r.companyHandler.UpdateCompany).Methods(http.MethodPut)
	company.HandleFunc("/company_profile", r.companyHandler.DeleteCompanyImage).Methods(http.MethodDelete)
	company.HandleFunc("/company_photos", r.companyHandler.AddPhoto).Methods(http.MethodPost)
	company.HandleFunc("/company_photos/{photo_id:[0-9]+}", r.companyHandler.DeletePhoto).Methods(http.MethodDelete)
	company.HandleFunc("/status_appointment/{appointment_id:[0-9]+}", r.appointmentHandler.ChangeStatus).Methods(http.MethodPost)
	company.HandleFunc("/company_appointments", r.appointmentHandler.CompanyAppointments).Methods(http.MethodGet)

	// Client routes
	client := api.NewRoute().Subrouter()
	client.Use(r.authMiddleware.Authenticate)
	client.Use(middleware.RequireClient)
	client.HandleFunc("/client_image", r.clientHandler.UpdateClient).Methods(http.MethodPut)
	client.HandleFunc("/book_appointment/{company_id:[0-9]+}", r.appointmentHandler.Book).Methods(http.MethodPost)
	client.HandleFunc("/delete_appointment/{appointment_id:[0-9]+}", r.appointmentHandler.Cancel).Methods(http.MethodDelete)
	client.HandleFunc("/client_appointments", r.appointmentHandler.ClientAppointments).Methods(http.MethodGet)
	client.HandleFunc("/favorite/{company_id:[0-9]+}", r.favoriteHandler.Add).Methods(http.MethodPost)
	client.HandleFunc("/favorite/{company_id:[0-9]+}", r.favoriteHandler.Remove).Methods(http.MethodDelete)
	client.HandleFunc("/favorite/{company_id}", r.favoriteHandler.List).Methods(http.MethodGet)
	client.HandleFunc("/favorite_list", r.favoriteHandler.ListPage).Methods(http.MethodGet)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
