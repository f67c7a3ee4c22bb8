package movie

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/kurgu/movielog/internal/platform/request"
	"github.com/kurgu/movielog/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listMovies)
	router.Get("/{id}", handler.getMovie)
	router.Post("/", handler.createMovie)
	router.Put("/{id}", handler.updateMovie)
	router.Delete("/{id}", handler.deleteMovie)

	return router
}

func (handler *Handler) listMovies(writer http.ResponseWriter, request *http.Request) {
	movies, err := handler.service.ListMovies(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, movies)
}

func (handler *Handler) getMovie(writer http.ResponseWriter, request *http.Request) {
	movieID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	m, err := handler.service.GetMovie(request.Context(), movieID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, m)
}

func (handler *Handler) createMovie(writer http.ResponseWriter, request *http.Request) {
	var input Movie
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateMovie(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateMovie(writer http.ResponseWriter, request *http.Request) {
	movieID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateMovie(request.Context(), movieID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteMovie(writer http.ResponseWriter, request *http.Request) {
	movieID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteMovie(request.Context(), movieID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
