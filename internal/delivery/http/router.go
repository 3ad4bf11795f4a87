package http

import (
	"net/http"

	"health-connect-api/internal/delivery/http/handler"
	"health-connect-api/internal/delivery/http/middleware"
	"health-connect-api/pkg/response"

	"github.com/gorilla/mux"
)

// uuidPattern keeps detail routes from shadowing the named profile actions.
const uuidPattern = "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}"

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	userHandler       *handler.UserHandler
	patientHandler    *handler.PatientHandler
	doctorHandler     *handler.DoctorHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	mediaMiddleware   *middleware.MediaMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	mediaMiddleware *middleware.MediaMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter().StrictSlash(true),
		authHandler:       authHandler,
		userHandler:       userHandler,
		patientHandler:    patientHandler,
		doctorHandler:     doctorHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		mediaMiddleware:   mediaMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes
	api.HandleFunc("/signup/", r.authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/login/", r.authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/patients/", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	api.HandleFunc("/doctors/", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)

	// The directory decides between 401 and 403 itself.
	directory := api.PathPrefix("/users").Subrouter()
	directory.Use(r.authMiddleware.OptionalAuthenticate)
	directory.HandleFunc("/", r.userHandler.ListUsers).Methods(http.MethodGet)

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/users/current_user/", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	protected.HandleFunc("/patients/", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	protected.HandleFunc("/patients/my_profile/", r.patientHandler.MyProfile).Methods(http.MethodGet)
	protected.HandleFunc("/patients/update_profile/", r.patientHandler.UpdateProfile).Methods(http.MethodPut, http.MethodPatch)
	protected.HandleFunc("/patients/{id:"+uuidPattern+"}/", r.patientHandler.GetPatient).Methods(http.MethodGet)

	protected.HandleFunc("/doctors/", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/my_profile/", r.doctorHandler.MyProfile).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/update_profile/", r.doctorHandler.UpdateProfile).Methods(http.MethodPut, http.MethodPatch)
	protected.HandleFunc("/doctors/verified_doctors/", r.doctorHandler.GetVerifiedDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id:"+uuidPattern+"}/", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	r.router.Use(r.mediaMiddleware.Handle)

	return r.router
}

// Handler wraps the routes with middleware that must also see unmatched
// requests, such as CORS preflights.
func (r *Router) Handler() http.Handler {
	return r.loggingMiddleware.Handle(r.corsMiddleware.Handle(r.Setup()))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, map[string]string{"status": "ok"})
}
