package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MeKo-Tech/shiproute/internal/orchestrator"
	"github.com/MeKo-Tech/shiproute/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a thin JSON HTTP wrapper over plan/hazard, for local manual testing",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (host:port)")
	serveCmd.Flags().Duration("plan-timeout", 30*time.Second, "Per-request planning timeout")

	mustBind := func(key string, name string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag: %v", err))
		}
	}
	mustBind("serve.addr", "addr")
	mustBind("serve.plan_timeout", "plan-timeout")
}

// planRequestBody is the JSON request body for POST /plan.
type planRequestBody struct {
	Start            types.Coordinate `json:"start"`
	Goal             types.Coordinate `json:"goal"`
	Vessel           string           `json:"vessel"`
	OperatingSpeedKn float64          `json:"operating_speed_kn"`
	LoadFactor       float64          `json:"load_factor"`
	Month            int              `json:"month"`
}

type hazardPointRequestBody struct {
	Point types.Coordinate `json:"point"`
	Month int              `json:"month"`
}

type hazardRouteRequestBody struct {
	Waypoints []types.Coordinate `json:"waypoints"`
	Month     int                `json:"month"`
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	addr := viper.GetString("serve.addr")
	planTimeout := viper.GetDuration("serve.plan_timeout")
	if planTimeout <= 0 {
		planTimeout = 30 * time.Second
	}

	o := buildOrchestrator()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/plan", func(w http.ResponseWriter, r *http.Request) {
		var body planRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		vessel, err := parseVessel(body.Vessel)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), planTimeout)
		defer cancel()

		route, err := o.PlanRoute(ctx, orchestrator.PlanRequest{
			Start:            body.Start,
			Goal:             body.Goal,
			Vessel:           vessel,
			OperatingSpeedKn: body.OperatingSpeedKn,
			LoadFactor:       body.LoadFactor,
			Month:            body.Month,
		})
		if err != nil {
			writeJSONError(w, statusForEngineError(err), err)
			return
		}

		writeJSON(w, http.StatusOK, route)
	})

	mux.HandleFunc("/hazard/point", func(w http.ResponseWriter, r *http.Request) {
		var body hazardPointRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, o.EvaluateWaypointHazard(body.Point, body.Month))
	})

	mux.HandleFunc("/hazard/route", func(w http.ResponseWriter, r *http.Request) {
		var body hazardRouteRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		if len(body.Waypoints) < 2 {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("need at least two waypoints"))
			return
		}
		writeJSON(w, http.StatusOK, o.EvaluateRouteHazards(body.Waypoints, body.Month))
	})

	logger.Info("shiproute HTTP API listening", "addr", addr)
	fmt.Printf("\n  -> http://%s/healthz\n\n", addr)

	srv := &http.Server{Addr: addr, Handler: withCORS(mux), ReadHeaderTimeout: 5 * time.Second}
	return srv.ListenAndServe()
}

func statusForEngineError(err error) int {
	var engErr *types.EngineError
	if errors.As(err, &engErr) {
		switch engErr.Kind {
		case types.ErrInvalidInput, types.ErrUnknownVessel:
			return http.StatusBadRequest
		case types.ErrNoPathFound, types.ErrLandLocked:
			return http.StatusUnprocessableEntity
		case types.ErrPlannerTimeout:
			return http.StatusGatewayTimeout
		}
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
