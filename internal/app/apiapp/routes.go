package apiapp

import (
	"github.com/go-chi/chi/v5"

	candidatesvc "github.com/MadeInMinsk96/loveblr/internal/services/candidates"
	likessvc "github.com/MadeInMinsk96/loveblr/internal/services/likes"
	mediasvc "github.com/MadeInMinsk96/loveblr/internal/services/media"
	profilesvc "github.com/MadeInMinsk96/loveblr/internal/services/profiles"
	"github.com/MadeInMinsk96/loveblr/internal/transport/http/handlers"
)

type Dependencies struct {
	ProfileService   *profilesvc.Service
	CandidateService *candidatesvc.Service
	LikeService      *likessvc.Service
	MediaService     *mediasvc.Service
	MaxPhotoBytes    int64
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	registerHandler := handlers.NewRegisterHandler(deps.ProfileService)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService)
	photoHandler := handlers.NewPhotoHandler(deps.MediaService, deps.ProfileService, deps.MaxPhotoBytes)
	candidateHandler := handlers.NewCandidateHandler(deps.CandidateService)
	likeHandler := handlers.NewLikeHandler(deps.LikeService)

	r.Get("/healthz", healthHandler.Handle)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", registerHandler.Handle)
		r.Get("/profile/{userID}", profileHandler.Get)
		r.Put("/profile/{userID}", profileHandler.Update)
		r.Post("/profile/{userID}/photo", photoHandler.Upload)
		r.Get("/candidate/{userID}", candidateHandler.Handle)
		r.Post("/like", likeHandler.Handle)
	})
}
