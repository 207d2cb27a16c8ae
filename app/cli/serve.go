package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"icando-go/app/controllers"
	"icando-go/app/routes"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mission tree over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}

			// Initialize the controller layer
			missionController := controllers.NewMissionController(a.svc, a.log)

			// Setup HTTP server
			router := mux.NewRouter()
			routes.RegisterRoutes(router, missionController)
			srv := &http.Server{Addr: addr, Handler: router}

			errc := make(chan error, 1)
			go func() {
				a.log.WithField("addr", addr).Info("server is running")
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				a.log.Info("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
