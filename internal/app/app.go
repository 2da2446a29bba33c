package app

import (
	"fmt"
	"medremind/internal/app/deps"
	"medremind/internal/app/services"
	"medremind/internal/http/handlers/auth"
	login "medremind/internal/http/handlers/auth/log_in"
	"medremind/internal/http/handlers/auth/me"
	"medremind/internal/http/handlers/auth/register"
	updateme "medremind/internal/http/handlers/auth/update_me"
	"medremind/internal/http/handlers/events"
	"medremind/internal/http/handlers/health"
	createmedication "medremind/internal/http/handlers/medications/create_medication"
	deletemedication "medremind/internal/http/handlers/medications/delete_medication"
	getmedication "medremind/internal/http/handlers/medications/get_medication"
	listusermedications "medremind/internal/http/handlers/medications/list_user_medications"
	updatemedication "medremind/internal/http/handlers/medications/update_medication"
	recognizebase64 "medremind/internal/http/handlers/recognize/recognize_base64"
	recognizeupload "medremind/internal/http/handlers/recognize/recognize_upload"
	createreminder "medremind/internal/http/handlers/reminders/create_reminder"
	deletereminder "medremind/internal/http/handlers/reminders/delete_reminder"
	listuserreminders "medremind/internal/http/handlers/reminders/list_user_reminders"
	updatereminder "medremind/internal/http/handlers/reminders/update_reminder"
	"medremind/internal/http/handlers/tts"
	imagestorage "medremind/internal/implementations/image_storage"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	authRouter := chi.NewRouter()
	if deps.Config.AuthEnabled {
		authRouter.Method(http.MethodPost, "/register", register.New(s.SignUp))
		authRouter.Method(http.MethodPost, "/login", login.New(s.LogIn))
	}
	authRouter.Method(http.MethodGet, "/me", me.New(s.GetCurrentUser))
	authRouter.Method(http.MethodPut, "/me", updateme.New(s.UpdateUser))

	medicationRouter := chi.NewRouter()
	medicationRouter.Method(http.MethodGet, "/", listusermedications.New(s.ListUserMedications, deps.Now))
	medicationRouter.Method(http.MethodPost, "/", createmedication.New(s.CreateMedication, deps.Now))
	medicationRouter.Method(
		http.MethodGet,
		"/{medicationID:[0-9]+}",
		getmedication.New(s.GetMedication, deps.Now),
	)
	medicationRouter.Method(
		http.MethodPut,
		"/{medicationID:[0-9]+}",
		updatemedication.New(s.UpdateMedication, deps.Now),
	)
	medicationRouter.Method(http.MethodDelete, "/{medicationID:[0-9]+}", deletemedication.New(s.DeleteMedication))

	reminderRouter := chi.NewRouter()
	reminderRouter.Method(http.MethodGet, "/", listuserreminders.New(s.ListUserReminders))
	reminderRouter.Method(http.MethodPost, "/", createreminder.New(s.CreateReminder))
	reminderRouter.Method(http.MethodPut, "/{reminderID:[0-9]+}", updatereminder.New(s.UpdateReminder))
	reminderRouter.Method(http.MethodDelete, "/{reminderID:[0-9]+}", deletereminder.New(s.DeleteReminder))

	apiRouter := chi.NewRouter()
	apiRouter.Use(auth.SetAuthTokenToContext)
	apiRouter.Method(http.MethodGet, "/health", health.New(deps.Now))
	apiRouter.Mount("/auth", authRouter)
	apiRouter.Mount("/medications", medicationRouter)
	apiRouter.Mount("/reminders", reminderRouter)
	apiRouter.Method(http.MethodPost, "/recognize", recognizeupload.New(s.RecognizeMedicine))
	apiRouter.Method(http.MethodPost, "/recognize/base64", recognizebase64.New(s.RecognizeMedicine))
	apiRouter.Method(http.MethodPost, "/tts", tts.New(s.SynthesizeSpeech))
	apiRouter.Method(
		http.MethodGet,
		"/events",
		events.New(deps.Logger, deps.SseServer, deps.EventStreams, s.GetCurrentUser),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/api", apiRouter)
	if deps.UploadsDir != "" {
		prefix := imagestorage.UPLOADS_URL_PREFIX
		uploads := http.StripPrefix(prefix, http.FileServer(http.Dir(deps.UploadsDir)))
		router.Method(http.MethodGet, prefix+"*", uploads)
	}

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
