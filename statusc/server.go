package statusc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Handler responds to any request with the current value of f encoded as JSON.
func Handler[T any](f func(ctx context.Context) (T, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stat, err := f(r.Context())
		if err == nil {
			w.Header().Add("Content-Type", "application/json")
			enc := json.NewEncoder(w)
			err = enc.Encode(stat)
		}
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "server error: %v", err.Error())
		}
	})
}

// Run serves the status of f at addr until ctx is canceled.
func Run[T any](ctx context.Context, addr string, f func(ctx context.Context) (T, error)) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: Handler(f),
	}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
