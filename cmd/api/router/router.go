package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"legal-timeline/cmd/api/dto"
	"legal-timeline/cmd/api/handlers"
	"legal-timeline/cmd/api/middleware"
	"legal-timeline/cmd/api/services"
	_ "legal-timeline/docs"
)

func New(caseSvc *services.CaseService) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		middleware.RequestTrace(),
		middleware.RequestErrorLogging(),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponseDTO{
				Error:   "Internal server error",
				Message: fmt.Sprint(recovered),
			})
		}),
	)
	r.NoMethod(handlers.MethodNotAllowedHandler)

	// Health check
	r.GET("/health", handlers.HealthHandler(caseSvc))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/extractTimeline", handlers.ExtractTimelineHandler(caseSvc))
	r.POST("/processFiles", handlers.ProcessFilesHandler(caseSvc))
	r.GET("/getRecentCases", handlers.GetRecentCasesHandler(caseSvc))
	r.GET("/getCase", handlers.GetCaseHandler(caseSvc))
	r.DELETE("/deleteCase", handlers.DeleteCaseHandler(caseSvc))

	// CORS preflight 가 아닌 OPTIONS 요청도 빈 200 으로 응답한다.
	for _, path := range []string{"/extractTimeline", "/processFiles", "/getRecentCases", "/getCase", "/deleteCase"} {
		r.OPTIONS(path, func(c *gin.Context) { c.Status(http.StatusOK) })
	}

	return r
}

// Handler 는 엔진을 CORS 와 요청 본문 크기 제한으로 감싼다.
// 모든 origin 을 허용하고 preflight 는 빈 200 으로 응답한다.
func Handler(engine http.Handler, maxBodyBytes int64) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", "Authorization"},
		OptionsSuccessStatus: http.StatusOK,
	})

	return c.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if maxBodyBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}
		engine.ServeHTTP(w, r)
	}))
}
