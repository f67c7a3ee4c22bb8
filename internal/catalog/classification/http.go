package classification

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

	router.Get("/", handler.listClassifications)
	router.Get("/{id}", handler.getClassification)
	router.Post("/", handler.createClassification)
	router.Put("/{id}", handler.updateClassification)
	router.Delete("/{id}", handler.deleteClassification)

	return router
}

func (handler *Handler) listClassifications(writer http.ResponseWriter, request *http.Request) {
	classifications, err := handler.service.ListClassifications(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, classifications)
}

func (handler *Handler) getClassification(writer http.ResponseWriter, request *http.Request) {
	classificationID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	enriched, err := handler.service.GetClassification(request.Context(), classificationID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, enriched)
}

func (handler *Handler) createClassification(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	enriched, err := handler.service.CreateClassification(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, enriched)
}

func (handler *Handler) updateClassification(writer http.ResponseWriter, request *http.Request) {
	classificationID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	enriched, err := handler.service.UpdateClassification(request.Context(), classificationID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, enriched)
}

func (handler *Handler) deleteClassification(writer http.ResponseWriter, request *http.Request) {
	classificationID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteClassification(request.Context(), classificationID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
