package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terralab/lst-cli/internal/coefficients"
	"github.com/terralab/lst-cli/internal/splitwindow"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for LST estimation requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tables, err := coefficients.Load()
		if err != nil {
			return eris.Wrap(err, "serve: load coefficient tables")
		}
		policy, err := splitwindow.ParseTiePolicy(cfg.LST.TiePolicy)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newServeMux(tables, policy),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// lstRequest is the estimation request body for POST /v1/lst.
type lstRequest struct {
	T10           float64 `json:"t10"`
	T11           float64 `json:"t11"`
	EmissivityB10 float64 `json:"emissivity_b10"`
	EmissivityB11 float64 `json:"emissivity_b11"`
	CWV           float64 `json:"cwv"`
}

func newServeMux(tables *coefficients.Tables, policy splitwindow.TiePolicy) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /v1/lst", func(w http.ResponseWriter, r *http.Request) {
		var req lstRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		est, err := splitwindow.New(req.EmissivityB10, req.EmissivityB11,
			req.CWV, tables.ColumnWaterVapour(), splitwindow.WithTiePolicy(policy))
		if err != nil {
			writeEstimationError(w, err)
			return
		}
		lst, err := est.ComputeLST(req.T10, req.T11)
		if err != nil {
			writeEstimationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(computeResult{
			LST:      lst,
			RMSE:     est.RMSE(),
			Subrange: est.Subrange().Key,
			CWV:      req.CWV,
		})
	})

	return mux
}

// writeEstimationError maps estimation failures onto 422 (bad physical
// inputs) and logs everything else as a 500.
func writeEstimationError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case eris.Is(err, splitwindow.ErrOutOfRangeInput),
		eris.Is(err, splitwindow.ErrInvalidEmissivity),
		eris.Is(err, splitwindow.ErrNoMatchingSubrange),
		eris.Is(err, splitwindow.ErrAmbiguousSubrange):
		w.WriteHeader(http.StatusUnprocessableEntity)
	default:
		zap.L().Error("serve: estimation failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
