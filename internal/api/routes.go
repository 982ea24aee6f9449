package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/genieai/rag-eval-agent/internal/api/middleware"
	"github.com/genieai/rag-eval-agent/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/runs").
			To(handler.Run).
			Doc("Trigger a batch evaluation run").
			Metadata(restfulspec.KeyOpenAPITags, []string{"runs"}).
			Reads(RunRequest{}).
			Writes(models.RunSummary{}).
			Returns(200, "OK", models.RunSummary{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/evaluations").
			To(handler.ReEvaluate).
			Doc("Re-evaluate a single stored conversation turn").
			Metadata(restfulspec.KeyOpenAPITags, []string{"evaluations"}).
			Reads(ReEvaluateRequest{}).
			Writes(models.EvaluationRecord{}).
			Returns(200, "OK", models.EvaluationRecord{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Turn Not Found", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
