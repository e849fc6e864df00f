package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/flightinventory/api"
	"github.com/Domenick1991/flightinventory/config"
	"github.com/Domenick1991/flightinventory/internal/service/flights"
	"github.com/Domenick1991/flightinventory/internal/service/schedules"
	"github.com/Domenick1991/flightinventory/internal/service/tickets"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, scheduleSvc schedules.ScheduleUseCase, ticketSvc tickets.TicketUseCase) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(flightSvc, scheduleSvc, ticketSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(flightSvc flights.FlightUseCase, scheduleSvc schedules.ScheduleUseCase, ticketSvc tickets.TicketUseCase) *gin.Engine {
	router := gin.Default()

	api.NewFlightHandler(flightSvc).Register(router.Group("/flights"))
	api.NewScheduleHandler(scheduleSvc).Register(router.Group("/schedules"))
	api.NewTicketHandler(ticketSvc).Register(router.Group("/tickets"))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
